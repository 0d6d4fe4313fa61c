package wallet

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// 见证集合中 vkey 见证的键
const vkeyWitnessKey uint64 = 0

// Conway 时代集合的 CBOR tag 258，编码为 d9 0102
var setTagPrefix = []byte{0xd9, 0x01, 0x02}

// vkeyWitness [vkey, signature]
type vkeyWitness struct {
	_         struct{} `cbor:",toarray"`
	VKey      []byte
	Signature []byte
}

var canonicalEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// TxBodyHash 计算交易体哈希 blake2b-256(body)
func TxBodyHash(body []byte) [32]byte {
	return blake2b.Sum256(body)
}

// SignTransaction 对交易签名
//
// 输入为十六进制 CBOR 交易 [body, witness_set, is_valid?, auxiliary_data]，
// 返回在见证集合中追加了本账户 vkey 见证的交易（小写十六进制）。
// body 及其余元素保持原始字节不变。
func (a *Account) SignTransaction(txHex string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(txHex))
	if err != nil {
		return "", fmt.Errorf("%w: not hex", ErrInvalidTransaction)
	}

	var parts []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	if len(parts) != 3 && len(parts) != 4 {
		return "", fmt.Errorf("%w: expected 3 or 4 elements, got %d", ErrInvalidTransaction, len(parts))
	}
	if len(parts[0]) == 0 || parts[0][0]>>5 != 5 {
		return "", fmt.Errorf("%w: body is not a map", ErrInvalidTransaction)
	}

	hash := TxBodyHash(parts[0])
	witnessSet, err := addVKeyWitness(parts[1], a.publicKey, a.key.sign(hash[:]))
	if err != nil {
		return "", err
	}
	parts[1] = witnessSet

	out, err := cbor.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	return hex.EncodeToString(out), nil
}

// addVKeyWitness 向见证集合追加 vkey 见证，已存在同一公钥的见证时原样返回
func addVKeyWitness(rawSet cbor.RawMessage, vkey, signature []byte) (cbor.RawMessage, error) {
	set := map[uint64]cbor.RawMessage{}
	if err := cbor.Unmarshal(rawSet, &set); err != nil {
		return nil, fmt.Errorf("%w: witness set: %v", ErrInvalidTransaction, err)
	}

	existing := set[vkeyWitnessKey]
	tagged := bytes.HasPrefix(existing, setTagPrefix)
	if tagged {
		existing = existing[len(setTagPrefix):]
	}

	var witnesses []cbor.RawMessage
	if len(existing) > 0 {
		if err := cbor.Unmarshal(existing, &witnesses); err != nil {
			return nil, fmt.Errorf("%w: vkey witnesses: %v", ErrInvalidTransaction, err)
		}
	}
	for _, w := range witnesses {
		var decoded vkeyWitness
		if err := cbor.Unmarshal(w, &decoded); err != nil {
			return nil, fmt.Errorf("%w: vkey witness: %v", ErrInvalidTransaction, err)
		}
		if bytes.Equal(decoded.VKey, vkey) {
			return rawSet, nil
		}
	}

	encoded, err := cbor.Marshal(vkeyWitness{VKey: vkey, Signature: signature})
	if err != nil {
		return nil, fmt.Errorf("encode vkey witness: %w", err)
	}
	witnesses = append(witnesses, encoded)

	var list cbor.RawMessage
	if tagged {
		list, err = cbor.Marshal(cbor.Tag{Number: 258, Content: witnesses})
	} else {
		list, err = cbor.Marshal(witnesses)
	}
	if err != nil {
		return nil, fmt.Errorf("encode vkey witnesses: %w", err)
	}
	set[vkeyWitnessKey] = list

	out, err := canonicalEncMode.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encode witness set: %w", err)
	}
	return out, nil
}
