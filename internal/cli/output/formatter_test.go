package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Result{
	{Key: "public_key", Value: "ab12"},
	{Key: "path", Value: "m/1852'/1815'/0'/0/0"},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "pretty": FormatPretty, "text": FormatText} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("table")
	assert.Error(t, err)
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Print(sample))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ab12", got["public_key"])
	assert.Equal(t, "m/1852'/1815'/0'/0/0", got["path"])
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)
	require.NoError(t, f.Print(sample))
	assert.Equal(t, "ab12\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Print(nil))
	assert.Empty(t, buf.String())
}

func TestPrintPretty(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatPretty, &buf).Print(sample))
	assert.Contains(t, buf.String(), "public_key")
	assert.Contains(t, buf.String(), "ab12")
}

func TestMessages(t *testing.T) {
	var data, logs bytes.Buffer
	f := NewFormatter(FormatJSON, &data)
	f.SetLogWriter(&logs)

	f.PrintSuccess("done")
	f.PrintWarning("careful")
	assert.Contains(t, logs.String(), "done")
	assert.Contains(t, logs.String(), "careful")

	logs.Reset()
	f.SetSilent(true)
	f.PrintSuccess("hidden")
	f.PrintError(errors.New("boom"))
	assert.NotContains(t, logs.String(), "hidden")
	assert.Contains(t, logs.String(), "boom")
	assert.Empty(t, data.String())
}
