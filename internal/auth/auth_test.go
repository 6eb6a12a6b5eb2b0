package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	j := NewJWT("secret")

	token, err := j.Sign("user-123")
	require.NoError(t, err)

	uid, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Sign("user-123")
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := NewJWT("secret").Verify("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, ComparePassword(hash, "s3cretpass"))
	assert.False(t, ComparePassword(hash, "wrong"))
}
