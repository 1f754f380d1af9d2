package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePublicKey(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))
	return path
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestTokenReaderVerifiesSignature(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	r, err := NewTokenReader(writePublicKey(t, key))
	require.NoError(t, err)
	assert.True(t, r.Verifies())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims, err := r.Read(sign(t, key, jwt.MapClaims{
		"user_id": "b6f7c1de-3c55-4f3a-9d8a-5a1e2f3b4c5d",
		"role":    "collector",
		"exp":     exp.Unix(),
	}))
	require.NoError(t, err)
	assert.Equal(t, "b6f7c1de-3c55-4f3a-9d8a-5a1e2f3b4c5d", claims.UserID)
	assert.Equal(t, "collector", claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(exp))

	_, err = r.Read(sign(t, other, jwt.MapClaims{"user_id": "x", "exp": exp.Unix()}))
	assert.Error(t, err)
}

func TestTokenReaderDecodeOnly(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	r, err := NewTokenReader("")
	require.NoError(t, err)
	assert.False(t, r.Verifies())

	claims, err := r.Read(sign(t, key, jwt.MapClaims{"user_id": float64(42), "exp": time.Now().Add(time.Minute).Unix()}))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Empty(t, claims.Role)

	claims, err = r.Read(sign(t, key, jwt.MapClaims{"sub": "u-1"}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.ExpiresAt.IsZero())

	_, err = r.Read(sign(t, key, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}))
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = r.Read(sign(t, key, jwt.MapClaims{"role": "admin"}))
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = r.Read("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
