// Package output 提供命令行结果的格式化输出
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatJSON JSON格式（默认）
	FormatJSON Format = "json"
	// FormatPretty 终端表格
	FormatPretty Format = "pretty"
	// FormatText 纯文本，只输出主结果，便于管道处理
	FormatText Format = "text"
)

// ParseFormat 解析输出格式
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatPretty, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (json|pretty|text)", s)
	}
}

// Field 结果字段
type Field struct {
	Key   string
	Value string
}

// Result 命令结果，第一个字段为主结果
type Result []Field

// Formatter 输出格式化器
type Formatter struct {
	format    Format
	writer    io.Writer // 数据输出
	logWriter io.Writer // 提示信息输出，避免污染数据
	silent    bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Formatter{
		format:    format,
		writer:    writer,
		logWriter: os.Stderr,
	}
}

// SetLogWriter 设置提示信息输出目标（默认 stderr）
func (f *Formatter) SetLogWriter(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	f.logWriter = writer
}

// SetSilent 设置静默模式，只影响提示信息
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// Print 打印结果
func (f *Formatter) Print(r Result) error {
	switch f.format {
	case FormatText:
		return f.printText(r)
	case FormatPretty:
		return f.printPretty(r)
	default:
		return f.printJSON(r)
	}
}

func (f *Formatter) printJSON(r Result) error {
	obj := make(map[string]string, len(r))
	for _, field := range r {
		obj[field.Key] = field.Value
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, string(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (f *Formatter) printText(r Result) error {
	if len(r) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(f.writer, r[0].Value); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (f *Formatter) printPretty(r Result) error {
	data := pterm.TableData{{"Key", "Value"}}
	for _, field := range r {
		data = append(data, []string{field.Key, field.Value})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, table); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintSuccess 打印成功消息
func (f *Formatter) PrintSuccess(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintln(f.logWriter, pterm.Success.Sprint(message))
}

// PrintWarning 打印警告消息
func (f *Formatter) PrintWarning(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintln(f.logWriter, pterm.Warning.Sprint(message))
}

// PrintError 打印错误消息，静默模式下同样输出
func (f *Formatter) PrintError(err error) {
	_, _ = fmt.Fprintln(f.logWriter, pterm.Error.Sprint(err.Error()))
}
