package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, exp, err := Generate("secret", "u-1", "Ana", "admin", "medinventory", 15)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "medinventory", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := Generate("secret", "u-1", "Ana", "admin", "medinventory", 15)
	require.NoError(t, err)

	_, err = Parse("other", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, _, err := Generate("secret", "u-1", "Ana", "admin", "medinventory", -1)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, _, err := Generate("", "u-1", "Ana", "admin", "medinventory", 15)
	assert.Error(t, err)
}
