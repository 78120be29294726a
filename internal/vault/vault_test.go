package vault

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adopr/internal/config"
)

func fixedKey(seed string) func() []byte {
	return func() []byte {
		sum := sha256.Sum256([]byte(seed))
		return []byte(hex.EncodeToString(sum[:])[:32])
	}
}

func testVault(t *testing.T) *Vault {
	t.Helper()
	v := New(config.NewMemStore())
	v.deriveKey = fixedKey("machine-a")
	return v
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	testCases := []struct {
		desc      string
		plaintext string
	}{
		{desc: "typical token", plaintext: "abc123tokenvalue"},
		{desc: "empty string", plaintext: ""},
		{desc: "unicode", plaintext: "pät-töken-日本語"},
		{desc: "long value", plaintext: strings.Repeat("x", 4096)},
	}

	v := testVault(t)

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			encrypted, err := v.Encrypt(tc.plaintext)
			require.NoError(t, err)

			decrypted, err := v.Decrypt(encrypted)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, decrypted)
		})
	}
}

func TestEncryptedEncodingShape(t *testing.T) {
	v := testVault(t)

	encrypted, err := v.Encrypt("secret")
	require.NoError(t, err)

	parts := strings.Split(encrypted, ".")
	require.Len(t, parts, 3, "tag.iv.ciphertext")

	tag, err := base64.StdEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, tag, 16)

	iv, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, iv, 16)

	_, err = base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
}

func TestEncryptUsesFreshIV(t *testing.T) {
	v := testVault(t)

	first, err := v.Encrypt("secret")
	require.NoError(t, err)
	second, err := v.Encrypt("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "IV must never be reused")
}

func TestDecryptFailsClosed(t *testing.T) {
	v := testVault(t)
	encrypted, err := v.Encrypt("secret")
	require.NoError(t, err)
	parts := strings.Split(encrypted, ".")

	corruptedTag := base64.StdEncoding.EncodeToString(make([]byte, 16))

	testCases := []struct {
		desc    string
		encoded string
	}{
		{desc: "corrupted tag", encoded: strings.Join([]string{corruptedTag, parts[1], parts[2]}, ".")},
		{desc: "truncated encoding", encoded: parts[0] + "." + parts[1]},
		{desc: "not base64", encoded: "!!!.???.###"},
		{desc: "empty string", encoded: ""},
		{desc: "plain text value", encoded: "my-plaintext-pat"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			plaintext, err := v.Decrypt(tc.encoded)
			assert.ErrorIs(t, err, ErrDecryptFailed)
			assert.Empty(t, plaintext, "never return garbled plaintext")
		})
	}
}

func TestDecryptOnDifferentMachine(t *testing.T) {
	machineA := testVault(t)
	encrypted, err := machineA.Encrypt("secret")
	require.NoError(t, err)

	machineB := New(config.NewMemStore())
	machineB.deriveKey = fixedKey("machine-b")

	_, err = machineB.Decrypt(encrypted)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestTokenLifecycle(t *testing.T) {
	store := config.NewMemStore()
	v := New(store)
	v.deriveKey = fixedKey("machine-a")

	// No token yet: distinct from decrypt failure.
	_, err := v.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, v.SetToken("first-token"))

	stored, ok := store.Get(config.KeyPAT)
	require.True(t, ok)
	assert.NotContains(t, stored, "first-token", "token is not stored in the clear")

	token, err := v.Token()
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)

	// Re-entry overwrites.
	require.NoError(t, v.SetToken("second-token"))
	token, err = v.Token()
	require.NoError(t, err)
	assert.Equal(t, "second-token", token)

	require.NoError(t, v.ClearToken())
	_, err = v.Token()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenUndecryptableIsNotMissing(t *testing.T) {
	store := config.NewMemStore()
	require.NoError(t, store.Set(config.KeyPAT, "garbage-value"))

	v := New(store)
	v.deriveKey = fixedKey("machine-a")

	_, err := v.Token()
	assert.ErrorIs(t, err, ErrDecryptFailed)
	assert.NotErrorIs(t, err, ErrNoToken)
}

func TestMachineKeyDeterministic(t *testing.T) {
	first := machineKey()
	second := machineKey()

	assert.Equal(t, first, second)
	assert.Len(t, first, 32, "AES-256 key")
}
