package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "emp-1", "TECHNICIAN", "test", 5)
	require.NoError(t, err)

	id, role, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", id)
	assert.Equal(t, "TECHNICIAN", role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("s3cret", "emp-1", "OFFICE", "test", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("s3cret", "emp-1", "OFFICE", "test", -1)
	require.NoError(t, err)

	_, _, err = Parse("s3cret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "emp-1", "OFFICE", "test", 5)
	assert.Error(t, err)
}
