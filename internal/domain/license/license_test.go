package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Key:          "spectacular",
		IssueDate:    "01-Jan-2024",
		ValidityDays: 365,
		Credentials:  "bsis_user:pw1:edi_user:pw2",
	}
}

func TestGenerateDecryptRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	blob, err := m.Generate()
	require.NoError(t, err)

	details, err := m.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "bsis_user:pw1:edi_user:pw2", details.Credentials)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), details.IssueDate)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), details.ExpireDate)
}

func TestDecryptWrongKeyword(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)
	blob, err := m.Generate()
	require.NoError(t, err)

	other, err := NewManager(Config{Key: "different", IssueDate: "01-Jan-2024", ValidityDays: 1})
	require.NoError(t, err)
	_, err = other.Decrypt(blob)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	m.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	assert.NoError(t, m.Validate())
	assert.True(t, m.Status())

	m.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "License expired on 01-Jan-2025.")
	assert.False(t, m.Status())
}

func TestExpiresSoon(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	m.now = func() time.Time { return time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC) }
	soon, days := m.ExpiresSoon()
	assert.True(t, soon)
	assert.Equal(t, 3, days)

	m.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	soon, _ = m.ExpiresSoon()
	assert.False(t, soon)
}

func TestNewManagerRequiresKey(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}
