package wallet

import (
	"crypto/ed25519"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

func testMasterKey() *extendedKey {
	entropy := make([]byte, 16)
	for i := range entropy {
		entropy[i] = byte(i)
	}
	return masterKeyFromEntropy(entropy, nil)
}

func TestMasterKeyClamped(t *testing.T) {
	k := testMasterKey()
	assert.Zero(t, k.kL[0]&0x07)
	assert.Equal(t, byte(0x40), k.kL[31]&0xE0)
	require.NoError(t, checkScalarBits(k.kL[:]))
}

func TestAdd28Mul8(t *testing.T) {
	var kL, out [32]byte
	kL[0], kL[27], kL[31] = 0xf8, 0xff, 0x40
	zL := make([]byte, 28)
	for i := range zL {
		zL[i] = byte(0xff - i)
	}
	add28Mul8(&out, &kL, zL)

	want := new(big.Int).Mul(leToInt(zL), big.NewInt(8))
	want.Add(want, leToInt(kL[:]))
	assert.Zero(t, want.Cmp(leToInt(out[:])))
}

func TestAdd256Wraps(t *testing.T) {
	var kR, out [32]byte
	zR := make([]byte, 32)
	for i := range kR {
		kR[i] = 0xff
	}
	zR[0] = 2
	add256(&out, &kR, zR)

	var want [32]byte
	want[0] = 1
	assert.Equal(t, want, out)
}

func TestDeriveDeterministicAndDistinct(t *testing.T) {
	root := testMasterKey()

	a := root.derivePath(CIP1852Path(0, 0, 0))
	b := testMasterKey().derivePath(CIP1852Path(0, 0, 0))
	assert.Equal(t, a.publicKey(), b.publicKey())
	assert.Equal(t, a.chainCode, b.chainCode)

	soft := root.derive(1)
	hard := root.derive(1 + HardenedOffset)
	assert.NotEqual(t, soft.publicKey(), hard.publicKey())

	// V2 派生后 kL 最高位保持为 0
	for i := uint32(0); i < 32; i++ {
		require.NoError(t, checkScalarBits(root.derive(i).kL[:]))
	}
}

func TestExtendedKeySignVerifies(t *testing.T) {
	key := testMasterKey().derivePath(CIP1852Path(0, 0, 0))
	msg := []byte("cardano")

	sig := key.sign(msg)
	require.Len(t, sig, ed25519.SignatureSize)
	assert.True(t, ed25519.Verify(key.publicKey(), msg, sig))
	assert.False(t, ed25519.Verify(key.publicKey(), []byte("other"), sig))
	assert.Equal(t, sig, key.sign(msg))
}

func TestWipe(t *testing.T) {
	k := testMasterKey()
	k.wipe()
	assert.Equal(t, [32]byte{}, k.kL)
	assert.Equal(t, [32]byte{}, k.kR)
	assert.Equal(t, [32]byte{}, k.chainCode)
}
