package wallet

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestTx 构造最小交易 [body, witness_set, true, null]
func buildTestTx(t *testing.T, witnessSet interface{}) (string, []byte) {
	t.Helper()
	body, err := canonicalEncMode.Marshal(map[uint64]interface{}{
		0: []interface{}{},
		1: []interface{}{},
		2: uint64(170000),
	})
	require.NoError(t, err)

	tx, err := cbor.Marshal([]interface{}{cbor.RawMessage(body), witnessSet, true, nil})
	require.NoError(t, err)
	return hex.EncodeToString(tx), body
}

func decodeWitnesses(t *testing.T, signedHex string) ([]cbor.RawMessage, map[uint64]cbor.RawMessage) {
	t.Helper()
	raw, err := hex.DecodeString(signedHex)
	require.NoError(t, err)
	var parts []cbor.RawMessage
	require.NoError(t, cbor.Unmarshal(raw, &parts))
	set := map[uint64]cbor.RawMessage{}
	require.NoError(t, cbor.Unmarshal(parts[1], &set))
	return parts, set
}

func TestSignTransaction(t *testing.T) {
	acct, err := NewAccount(MnemonicParams{Phrase: testMnemonic, Path: DefaultPath})
	require.NoError(t, err)

	txHex, body := buildTestTx(t, map[uint64]interface{}{})
	signed, err := acct.SignTransaction(txHex)
	require.NoError(t, err)

	parts, set := decodeWitnesses(t, signed)
	require.Len(t, parts, 4)
	assert.Equal(t, body, []byte(parts[0]), "body bytes must be preserved")

	var witnesses []vkeyWitness
	require.NoError(t, cbor.Unmarshal(set[0], &witnesses))
	require.Len(t, witnesses, 1)
	assert.Equal(t, acct.PublicKey(), witnesses[0].VKey)

	hash := TxBodyHash(body)
	assert.True(t, ed25519.Verify(acct.PublicKey(), hash[:], witnesses[0].Signature))

	// 确定性：同一输入得到同一输出；重复签名不追加重复见证
	again, err := acct.SignTransaction(txHex)
	require.NoError(t, err)
	assert.Equal(t, signed, again)

	twice, err := acct.SignTransaction(signed)
	require.NoError(t, err)
	assert.Equal(t, signed, twice)
}

func TestSignTransactionAppendsToExisting(t *testing.T) {
	first, err := NewAccount(MnemonicParams{Phrase: testMnemonic, Path: DefaultPath})
	require.NoError(t, err)
	second, err := NewAccount(MnemonicParams{Phrase: testMnemonic, Path: "m/1852'/1815'/0'/2/0"})
	require.NoError(t, err)

	txHex, _ := buildTestTx(t, map[uint64]interface{}{})
	signed, err := first.SignTransaction(txHex)
	require.NoError(t, err)
	signed, err = second.SignTransaction(signed)
	require.NoError(t, err)

	_, set := decodeWitnesses(t, signed)
	var witnesses []vkeyWitness
	require.NoError(t, cbor.Unmarshal(set[0], &witnesses))
	require.Len(t, witnesses, 2)
	assert.Equal(t, first.PublicKey(), witnesses[0].VKey)
	assert.Equal(t, second.PublicKey(), witnesses[1].VKey)
}

func TestSignTransactionPreservesSetTagAndOtherKeys(t *testing.T) {
	acct, err := NewAccount(MnemonicParams{Phrase: testMnemonic, Path: DefaultPath})
	require.NoError(t, err)

	plutus := cbor.RawMessage{0x81, 0x41, 0x01} // [h'01']
	txHex, _ := buildTestTx(t, map[uint64]interface{}{
		0: cbor.Tag{Number: 258, Content: []interface{}{}},
		3: plutus,
	})
	signed, err := acct.SignTransaction(txHex)
	require.NoError(t, err)

	_, set := decodeWitnesses(t, signed)
	assert.Equal(t, plutus, set[3])
	require.True(t, len(set[0]) > 3)
	assert.Equal(t, setTagPrefix, []byte(set[0][:3]))

	var witnesses []vkeyWitness
	require.NoError(t, cbor.Unmarshal(set[0][3:], &witnesses))
	require.Len(t, witnesses, 1)
}

func TestSignTransactionInvalid(t *testing.T) {
	acct, err := NewAccount(MnemonicParams{Phrase: testMnemonic, Path: DefaultPath})
	require.NoError(t, err)

	notArray, err := cbor.Marshal(map[uint64]int{0: 1})
	require.NoError(t, err)
	twoElems, err := cbor.Marshal([]interface{}{map[uint64]int{}, map[uint64]int{}})
	require.NoError(t, err)
	bodyNotMap, err := cbor.Marshal([]interface{}{1, map[uint64]int{}, true, nil})
	require.NoError(t, err)
	setNotMap, err := cbor.Marshal([]interface{}{map[uint64]int{}, 1, true, nil})
	require.NoError(t, err)
	badWitnesses, err := cbor.Marshal([]interface{}{map[uint64]int{}, map[uint64]interface{}{0: 5}, true, nil})
	require.NoError(t, err)

	for name, tx := range map[string]string{
		"empty":          "",
		"not hex":        "xyz",
		"not array":      hex.EncodeToString(notArray),
		"too short":      hex.EncodeToString(twoElems),
		"body not map":   hex.EncodeToString(bodyNotMap),
		"set not map":    hex.EncodeToString(setNotMap),
		"bad witnesses":  hex.EncodeToString(badWitnesses),
		"trailing bytes": hex.EncodeToString(append(notArray, 0x00)),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := acct.SignTransaction(tx)
			require.ErrorIs(t, err, ErrInvalidTransaction)
			assert.Empty(t, out)
		})
	}
}
