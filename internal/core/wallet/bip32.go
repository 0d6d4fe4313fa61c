package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"filippo.io/edwards25519"
)

// extendedKey BIP32-Ed25519 扩展私钥 (kL || kR || chainCode)
type extendedKey struct {
	kL        [32]byte
	kR        [32]byte
	chainCode [32]byte
}

// scalar 返回 kL mod l
// kL 不一定满足 RFC 8032 的 clamp 形式，因此不能用 SetBytesWithClamping
func (k *extendedKey) scalar() *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:32], k.kL[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// 输入长度固定为 64，不会出错
		panic("wallet: scalar from kL: " + err.Error())
	}
	return s
}

// publicKey 计算 A = kL·B
func (k *extendedKey) publicKey() []byte {
	return new(edwards25519.Point).ScalarBaseMult(k.scalar()).Bytes()
}

// derive 按 V2 方案派生子密钥
func (k *extendedKey) derive(index uint32) *extendedKey {
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	zMac := hmac.New(sha512.New, k.chainCode[:])
	ccMac := hmac.New(sha512.New, k.chainCode[:])
	if index >= HardenedOffset {
		zMac.Write([]byte{0x00})
		zMac.Write(k.kL[:])
		zMac.Write(k.kR[:])
		ccMac.Write([]byte{0x01})
		ccMac.Write(k.kL[:])
		ccMac.Write(k.kR[:])
	} else {
		pub := k.publicKey()
		zMac.Write([]byte{0x02})
		zMac.Write(pub)
		ccMac.Write([]byte{0x03})
		ccMac.Write(pub)
	}
	zMac.Write(idx[:])
	ccMac.Write(idx[:])

	z := zMac.Sum(nil)
	cc := ccMac.Sum(nil)
	defer zeroBytes(z)

	child := &extendedKey{}
	add28Mul8(&child.kL, &k.kL, z[:28])
	add256(&child.kR, &k.kR, z[32:64])
	copy(child.chainCode[:], cc[32:64])
	return child
}

// derivePath 沿路径逐级派生
func (k *extendedKey) derivePath(path DerivationPath) *extendedKey {
	key := k
	for _, index := range path {
		next := key.derive(index)
		if key != k {
			key.wipe()
		}
		key = next
	}
	return key
}

// sign 扩展私钥签名（BIP32-Ed25519）
//
//	r = H(kR || M) mod l, R = r·B
//	S = (r + H(R || A || M)·kL) mod l
func (k *extendedKey) sign(message []byte) []byte {
	pub := k.publicKey()

	h := sha512.New()
	h.Write(k.kR[:])
	h.Write(message)
	r, _ := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(R)
	h.Write(pub)
	h.Write(message)
	c, _ := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))

	s := edwards25519.NewScalar().MultiplyAdd(c, k.scalar(), r)

	sig := make([]byte, 0, 64)
	sig = append(sig, R...)
	return append(sig, s.Bytes()...)
}

func (k *extendedKey) wipe() {
	zeroBytes(k.kL[:])
	zeroBytes(k.kR[:])
	zeroBytes(k.chainCode[:])
}

// add28Mul8 out = kL + 8*zL（小端，zL 取 28 字节）
func add28Mul8(out, kL *[32]byte, zL []byte) {
	var carry uint16
	for i := 0; i < 28; i++ {
		r := uint16(kL[i]) + uint16(zL[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	for i := 28; i < 32; i++ {
		r := uint16(kL[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
}

// add256 out = kR + zR mod 2^256（小端）
func add256(out, kR *[32]byte, zR []byte) {
	var carry uint16
	for i := 0; i < 32; i++ {
		r := uint16(kR[i]) + uint16(zR[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
}
