package utils

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("maria", "customer")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "customer", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("maria", "customer")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateJWT("maria", "customer")
	require.NoError(t, err)

	InitJWT("second-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestNewEntityID(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewEntityID("o")
	after := time.Now().UnixMilli()

	require.True(t, strings.HasPrefix(id, "o"))
	ms, err := strconv.ParseInt(strings.TrimPrefix(id, "o"), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)
}
