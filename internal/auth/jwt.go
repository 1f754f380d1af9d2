package auth

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingUserID = errors.New("token has no user id")
	ErrTokenExpired  = jwt.ErrTokenExpired
)

// Claims are the parts of an upstream access token the portal relies on.
type Claims struct {
	UserID    string
	Role      string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// TokenReader reads upstream access tokens. With a public key it verifies the RS256
// signature; without one it only decodes the claims and leaves trust to the upstream,
// which rejects bad tokens on the first call.
type TokenReader struct {
	publicKey *rsa.PublicKey
	leeway    time.Duration
	now       func() time.Time
}

// NewTokenReader loads the RS256 public key at publicPath. An empty path yields a
// decode-only reader.
func NewTokenReader(publicPath string) (*TokenReader, error) {
	r := &TokenReader{leeway: 5 * time.Second, now: time.Now}
	if publicPath == "" {
		return r, nil
	}

	pubPem, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPem)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	r.publicKey = pubKey
	return r, nil
}

// Verifies reports whether signatures are checked.
func (r *TokenReader) Verifies() bool { return r.publicKey != nil }

// Read returns the claims of tokenStr, failing for expired tokens and, when a key
// is configured, for bad signatures.
func (r *TokenReader) Read(tokenStr string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if r.publicKey != nil {
		_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodRS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return r.publicKey, nil
		}, jwt.WithLeeway(r.leeway), jwt.WithTimeFunc(r.now))
		if err != nil {
			return nil, err
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
			return nil, err
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && r.now().After(exp.Add(r.leeway)) {
			return nil, ErrTokenExpired
		}
	}
	return fromMap(claims)
}

func fromMap(m jwt.MapClaims) (*Claims, error) {
	c := &Claims{
		UserID: claimString(m, "user_id"),
		Role:   claimString(m, "role"),
		Email:  claimString(m, "email"),
		JTI:    claimString(m, "jti"),
	}
	if c.UserID == "" {
		c.UserID = claimString(m, "sub")
	}
	if c.UserID == "" {
		return nil, ErrMissingUserID
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// claimString reads string or numeric claims; user ids come as either.
func claimString(m jwt.MapClaims, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// HashToken produces the SHA256 hex of a token, so sessions can tell tokens apart
// without keeping them in logs.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
