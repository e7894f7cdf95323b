package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(createdAt, "mov-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, "mov-1", decodedID)

	// Non-UTC input comes back as the same instant
	local := time.Date(2023, 5, 15, 11, 30, 45, 0, time.FixedZone("BRT", -3*3600))
	decodedAt, _, err = DecodeToken(EncodeToken(local, "mov-2"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedAt), "Instant should survive the round trip")
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separator
	noSep := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSep)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Empty id
	noID := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(noID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Invalid date
	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|mov-1"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
