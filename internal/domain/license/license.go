// Package license implements the expiry-gated license blob. A license packs
// the data-source credentials together with an issue and expiry date,
// AES-CBC encrypted under a key derived from a configured keyword.
//
// The scheme is an access gate for distributed client installs, not real
// credential protection: the keyword ships with the deployment.
package license

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"langodata/internal/core/apperror"
)

const (
	dateFormat     = "02-Jan-2006"
	kdfIterations  = 100_000
	kdfKeyLength   = 32
	renewalWarning = 7 * 24 * time.Hour
)

// salt is fixed so independently generated licenses verify against the same
// keyword.
var salt = []byte("some_salt")

// Config holds the license material, injected at construction time.
type Config struct {
	// Key is the keyword the license blob is encrypted under.
	Key string
	// IssueDate is the issue date in DD-MMM-YYYY form.
	IssueDate string
	// ValidityDays is the license term from the issue date.
	ValidityDays int
	// Credentials is the opaque credential string sealed into the blob.
	Credentials string
}

// Details is the decrypted content of a license blob.
type Details struct {
	Credentials string
	IssueDate   time.Time
	ExpireDate  time.Time
}

// Manager validates and issues license blobs.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager creates a license manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("license: key is not configured")
	}
	return &Manager{cfg: cfg, now: time.Now}, nil
}

func deriveKey(keyword string) []byte {
	return pbkdf2.Key([]byte(keyword), salt, kdfIterations, kdfKeyLength, sha256.New)
}

// Generate issues a license blob for the configured credentials and term.
func (m *Manager) Generate() (string, error) {
	issued, err := time.Parse(dateFormat, m.cfg.IssueDate)
	if err != nil {
		return "", fmt.Errorf("license: parse issue date: %w", err)
	}
	expires := issued.AddDate(0, 0, m.cfg.ValidityDays)

	plaintext := strings.Join([]string{
		m.cfg.Credentials,
		issued.Format(dateFormat),
		expires.Format(dateFormat),
	}, ",")

	key := deriveKey(m.cfg.Key)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("license: init cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("license: generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(append(iv, ciphertext...)), nil
}

// Decrypt opens a license blob issued under the same keyword.
func (m *Manager) Decrypt(blob string) (Details, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return Details{}, fmt.Errorf("license: decode blob: %w", err)
	}
	if len(raw) < aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return Details{}, fmt.Errorf("license: malformed blob")
	}

	key := deriveKey(m.cfg.Key)
	block, err := aes.NewCipher(key)
	if err != nil {
		return Details{}, fmt.Errorf("license: init cipher: %w", err)
	}

	iv, ciphertext := raw[:aes.BlockSize], raw[aes.BlockSize:]
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return Details{}, fmt.Errorf("license: %w", err)
	}

	parts := strings.Split(string(plaintext), ",")
	if len(parts) != 3 {
		return Details{}, fmt.Errorf("license: malformed payload")
	}
	issued, err := time.Parse(dateFormat, parts[1])
	if err != nil {
		return Details{}, fmt.Errorf("license: parse issue date: %w", err)
	}
	expires, err := time.Parse(dateFormat, parts[2])
	if err != nil {
		return Details{}, fmt.Errorf("license: parse expire date: %w", err)
	}
	return Details{Credentials: parts[0], IssueDate: issued, ExpireDate: expires}, nil
}

// Validate round-trips the configured license and checks it has not expired.
func (m *Manager) Validate() error {
	blob, err := m.Generate()
	if err != nil {
		return apperror.NewLicenseInvalid(fmt.Sprintf("License validation failed: %v", err))
	}
	details, err := m.Decrypt(blob)
	if err != nil {
		return apperror.NewLicenseInvalid(fmt.Sprintf("License validation failed: %v", err))
	}

	now := m.now()
	if now.After(details.ExpireDate) {
		return apperror.NewLicenseInvalid(
			fmt.Sprintf("License expired on %s.", details.ExpireDate.Format(dateFormat)))
	}
	return nil
}

// Status reports whether the configured license is currently valid.
func (m *Manager) Status() bool {
	return m.Validate() == nil
}

// ExpiresSoon reports whether the license is inside its renewal window, and
// the days remaining.
func (m *Manager) ExpiresSoon() (bool, int) {
	blob, err := m.Generate()
	if err != nil {
		return false, 0
	}
	details, err := m.Decrypt(blob)
	if err != nil {
		return false, 0
	}
	left := details.ExpireDate.Sub(m.now())
	return left > 0 && left < renewalWarning, int(left.Hours() / 24)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
