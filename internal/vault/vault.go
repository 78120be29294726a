// Package vault stores the personal access token encrypted at rest under a
// machine-derived key, so the settings file is useless on any other host.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/denisbrodbeck/machineid"

	"adopr/internal/config"
)

var (
	// ErrNoToken means no credential is configured at all (first-time setup).
	ErrNoToken = errors.New("no personal access token configured")

	// ErrDecryptFailed means a credential exists but cannot be decrypted:
	// tag mismatch, malformed encoding, or a different machine. Distinct from
	// ErrNoToken; the user must re-enter the token.
	ErrDecryptFailed = errors.New("failed to decrypt stored token")
)

// ivSize is the GCM nonce length. 16 bytes, matching the stored format.
const ivSize = 16

// Vault encrypts and decrypts the PAT with AES-256-GCM under a key derived
// from the host machine's identity. The key is recomputed on every call and
// never persisted.
type Vault struct {
	store config.Store

	// deriveKey is swappable in tests to simulate a foreign machine.
	deriveKey func() []byte
}

// New creates a vault backed by the given settings store.
func New(store config.Store) *Vault {
	return &Vault{store: store, deriveKey: machineKey}
}

// machineKey derives a deterministic 256-bit key from machine identifier,
// hostname, platform and architecture. The combined string is hashed and the
// first 32 hex characters become the AES key bytes.
func machineKey() []byte {
	id, err := machineid.ProtectedID("adopr")
	if err != nil {
		// Degrades to the remaining host characteristics.
		id = ""
	}
	hostname, _ := os.Hostname()

	combined := fmt.Sprintf("%s.%s.%s.%s", id, hostname, runtime.GOOS, runtime.GOARCH)
	sum := sha256.Sum256([]byte(combined))
	return []byte(hex.EncodeToString(sum[:])[:32])
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, ivSize)
}

// Encrypt seals plaintext under the machine key with a fresh random IV and
// returns the encoded form: base64(tag).base64(iv).base64(ciphertext).
func (v *Vault) Encrypt(plaintext string) (string, error) {
	gcm, err := newGCM(v.deriveKey())
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	tagStart := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	enc := base64.StdEncoding
	return strings.Join([]string{
		enc.EncodeToString(tag),
		enc.EncodeToString(iv),
		enc.EncodeToString(ciphertext),
	}, "."), nil
}

// Decrypt opens an encoded secret. Any failure — malformed encoding, tag
// mismatch, wrong machine — yields ErrDecryptFailed. Fails closed: corrupted
// plaintext is never returned.
func (v *Vault) Decrypt(encoded string) (string, error) {
	parts := strings.Split(encoded, ".")
	if len(parts) != 3 {
		return "", ErrDecryptFailed
	}

	enc := base64.StdEncoding
	tag, err := enc.DecodeString(parts[0])
	if err != nil {
		return "", ErrDecryptFailed
	}
	iv, err := enc.DecodeString(parts[1])
	if err != nil || len(iv) != ivSize {
		return "", ErrDecryptFailed
	}
	ciphertext, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", ErrDecryptFailed
	}

	gcm, err := newGCM(v.deriveKey())
	if err != nil {
		return "", ErrDecryptFailed
	}
	if len(tag) != gcm.Overhead() {
		return "", ErrDecryptFailed
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}

// SetToken encrypts and stores the token, overwriting any previous one.
func (v *Vault) SetToken(pat string) error {
	encrypted, err := v.Encrypt(pat)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}
	return v.store.Set(config.KeyPAT, encrypted)
}

// Token retrieves and decrypts the stored token. Returns ErrNoToken when no
// credential is configured, ErrDecryptFailed when one exists but cannot be
// decrypted — callers must treat these differently.
func (v *Vault) Token() (string, error) {
	encrypted, ok := v.store.Get(config.KeyPAT)
	if !ok || encrypted == "" {
		return "", ErrNoToken
	}
	return v.Decrypt(encrypted)
}

// ClearToken removes the stored credential.
func (v *Vault) ClearToken() error {
	return v.store.Delete(config.KeyPAT)
}
