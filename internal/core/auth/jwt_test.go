package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "storefront-api", TTL: time.Hour}
	tok, err := j.Issue(42, "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.UID)
	assert.Equal(t, "admin", c.Role)
}

func TestParseRejects(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "storefront-api", TTL: time.Hour}

	other := &JWTer{Secret: []byte("other"), Issuer: "storefront-api", TTL: time.Hour}
	tok, err := other.Issue(1, "admin")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := &JWTer{Secret: []byte("s3cret"), Issuer: "storefront-api", TTL: -time.Hour}
	tok, err = expired.Issue(1, "admin")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UID: "1", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "storefront-api"}}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = j.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
