package boundary

import (
	"bytes"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	logpkg "github.com/sidan-lab/cardano-golang-signing-module/internal/core/infrastructure/log"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	// [ {0: [], 1: [], 2: 170000}, {}, true, null ]
	testTxHex = "84a300800180021a00029810a0f5f6"
)

var testCLIKey = "5820" + strings.Repeat("01", 32)

func str(s string) *string { return &s }

func newTestService() *Service {
	return NewService(logpkg.NewNop())
}

func testRootKey(t *testing.T) string {
	t.Helper()
	raw := bytes.Repeat([]byte{0x10}, 96)
	conv, err := bech32.ConvertBits(raw, 8, 5, true)
	require.NoError(t, err)
	encoded, err := bech32.Encode("xprv", conv)
	require.NoError(t, err)
	return encoded
}

func TestConstructFromMnemonic(t *testing.T) {
	s := newTestService()

	id, err := s.NewFromMnemonic(str(testMnemonic), str(wallet.DefaultPath))
	require.NoError(t, err)
	require.NotEqual(t, handle.Invalid, id)
	defer s.Release(id)

	pub, err := s.PublicKey(id)
	require.NoError(t, err)
	assert.Len(t, pub, 64)
	_, err = hex.DecodeString(pub)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(pub), pub)

	// 同样的输入派生出同样的公钥
	id2, err := s.NewFromMnemonic(str(testMnemonic), str(wallet.DefaultPath))
	require.NoError(t, err)
	defer s.Release(id2)
	pub2, err := s.PublicKey(id2)
	require.NoError(t, err)
	assert.Equal(t, pub, pub2)
	assert.NotEqual(t, id, id2)
}

func TestConstructFromRootKeyAndCLIKey(t *testing.T) {
	s := newTestService()

	id, err := s.NewFromRootKey(str(testRootKey(t)), str(wallet.DefaultPath))
	require.NoError(t, err)
	pub, err := s.PublicKey(id)
	require.NoError(t, err)
	assert.Len(t, pub, 64)
	assert.True(t, s.Release(id))

	id, err = s.NewFromCLIKey(str(testCLIKey))
	require.NoError(t, err)
	pub, err = s.PublicKey(id)
	require.NoError(t, err)
	assert.Len(t, pub, 64)
	assert.True(t, s.Release(id))
	assert.Equal(t, 0, s.Len())
}

func TestConstructFailures(t *testing.T) {
	s := newTestService()
	root := testRootKey(t)

	tests := []struct {
		name  string
		build func() (handle.ID, error)
		kind  Kind
	}{
		{"mnemonic absent phrase", func() (handle.ID, error) { return s.NewFromMnemonic(nil, str(wallet.DefaultPath)) }, KindMissingInput},
		{"mnemonic absent path", func() (handle.ID, error) { return s.NewFromMnemonic(str(testMnemonic), nil) }, KindMissingInput},
		{"mnemonic invalid utf8", func() (handle.ID, error) { return s.NewFromMnemonic(str("abandon \xff"), str(wallet.DefaultPath)) }, KindInvalidEncoding},
		{"mnemonic bad checksum", func() (handle.ID, error) {
			return s.NewFromMnemonic(str(strings.Repeat("abandon ", 12)), str(wallet.DefaultPath))
		}, KindInvalidKeyMaterial},
		{"mnemonic bad path", func() (handle.ID, error) { return s.NewFromMnemonic(str(testMnemonic), str("m/1852'/abc")) }, KindInvalidDerivationPath},
		{"mnemonic path with NUL", func() (handle.ID, error) { return s.NewFromMnemonic(str(testMnemonic), str("m/0\x00/1")) }, KindInvalidEncoding},
		{"bech32 absent key", func() (handle.ID, error) { return s.NewFromRootKey(nil, str(wallet.DefaultPath)) }, KindMissingInput},
		{"bech32 absent path", func() (handle.ID, error) { return s.NewFromRootKey(str(root), nil) }, KindMissingInput},
		{"bech32 garbage", func() (handle.ID, error) { return s.NewFromRootKey(str("xprv1notakey"), str(wallet.DefaultPath)) }, KindInvalidKeyMaterial},
		{"bech32 bad path", func() (handle.ID, error) { return s.NewFromRootKey(str(root), str("m//0")) }, KindInvalidDerivationPath},
		{"cli absent", func() (handle.ID, error) { return s.NewFromCLIKey(nil) }, KindMissingInput},
		{"cli invalid utf8", func() (handle.ID, error) { return s.NewFromCLIKey(str("5820\xc3\x28")) }, KindInvalidEncoding},
		{"cli not hex", func() (handle.ID, error) { return s.NewFromCLIKey(str("zz")) }, KindInvalidKeyMaterial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.build()
			require.Error(t, err)
			assert.Equal(t, handle.Invalid, id)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
			assert.Equal(t, 0, s.Len(), "failed construction must not register a handle")
			assert.NotContains(t, err.Error(), "abandon")
			assert.NotContains(t, s.LastError(), "abandon")
		})
	}
}

func TestSignAndRecover(t *testing.T) {
	s := newTestService()
	id, err := s.NewFromMnemonic(str(testMnemonic), str(wallet.DefaultPath))
	require.NoError(t, err)
	defer s.Release(id)

	signed, err := s.Sign(id, str(testTxHex))
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEqual(t, testTxHex, signed)

	// 无效编码的输入失败，但句柄仍然可用
	_, err = s.Sign(id, str("84\xff"))
	assert.True(t, IsKind(err, KindInvalidEncoding))
	_, err = s.Sign(id, nil)
	assert.True(t, IsKind(err, KindMissingInput))
	_, err = s.Sign(id, str("not a transaction"))
	assert.True(t, IsKind(err, KindCapabilityFailure))
	assert.ErrorIs(t, err, wallet.ErrInvalidTransaction)

	pub, err := s.PublicKey(id)
	require.NoError(t, err)
	assert.Len(t, pub, 64)

	// 任意顺序重复调用结果不变
	again, err := s.Sign(id, str(testTxHex))
	require.NoError(t, err)
	assert.Equal(t, signed, again)
	pub2, err := s.PublicKey(id)
	require.NoError(t, err)
	assert.Equal(t, pub, pub2)
}

func TestReleaseLifecycle(t *testing.T) {
	s := newTestService()

	// 释放空句柄是空操作
	assert.False(t, s.Release(handle.Invalid))

	id, err := s.NewFromCLIKey(str(testCLIKey))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Release(id))
	assert.Equal(t, 0, s.Len())

	// 重复释放被检测，不会崩溃
	assert.False(t, s.Release(id))
	assert.Equal(t, "invalid handle: free", s.LastError())

	_, err = s.PublicKey(id)
	assert.True(t, IsKind(err, KindInvalidHandle))
	_, err = s.Sign(id, str(testTxHex))
	assert.True(t, IsKind(err, KindInvalidHandle))

	_, err = s.PublicKey(handle.Invalid)
	assert.True(t, IsKind(err, KindInvalidHandle))
}

func TestLastError(t *testing.T) {
	s := newTestService()
	assert.Empty(t, s.LastError())

	_, err := s.NewFromMnemonic(str(testMnemonic), nil)
	require.Error(t, err)
	assert.Equal(t, "missing input: new_mnemonic", s.LastError())
	assert.Equal(t, KindMissingInput, KindOf(err))

	s.ClearLastError()
	assert.Empty(t, s.LastError())
}

func TestConcurrentUse(t *testing.T) {
	s := newTestService()
	id, err := s.NewFromMnemonic(str(testMnemonic), str(wallet.DefaultPath))
	require.NoError(t, err)
	defer s.Release(id)

	want, err := s.Sign(id, str(testTxHex))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Sign(id, str(testTxHex))
			if err == nil && got != want {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestService()

	okBefore := testutil.ToFloat64(boundaryCallsTotal.WithLabelValues(string(OpNewCLI), resultSuccess))
	failBefore := testutil.ToFloat64(boundaryCallsTotal.WithLabelValues(string(OpNewCLI), resultFailure))
	missingBefore := testutil.ToFloat64(boundaryFailuresTotal.WithLabelValues(KindMissingInput.String()))
	liveBefore := testutil.ToFloat64(handlesLive)

	id, err := s.NewFromCLIKey(str(testCLIKey))
	require.NoError(t, err)
	_, err = s.NewFromCLIKey(nil)
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(boundaryCallsTotal.WithLabelValues(string(OpNewCLI), resultSuccess)))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(boundaryCallsTotal.WithLabelValues(string(OpNewCLI), resultFailure)))
	assert.Equal(t, missingBefore+1, testutil.ToFloat64(boundaryFailuresTotal.WithLabelValues(KindMissingInput.String())))
	assert.Equal(t, liveBefore+1, testutil.ToFloat64(handlesLive))

	require.True(t, s.Release(id))
	assert.Equal(t, liveBefore, testutil.ToFloat64(handlesLive))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid derivation path", KindInvalidDerivationPath.String())
	assert.Equal(t, "kind(99)", Kind(99).String())

	e := &Error{Kind: KindOutputEncoding, Op: OpPublicKey}
	assert.Equal(t, "get_public_key: output encoding failure", e.Error())
	assert.Equal(t, "output encoding failure: get_public_key", e.Summary())
}

func TestDefaultShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}
