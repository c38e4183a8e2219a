package app

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/config"
	"young-ats/pkg/auth"
)

func TestNewVerifier(t *testing.T) {
	t.Run("JWKS without audience is refused", func(t *testing.T) {
		_, err := newVerifier(&config.Config{IdPJWKSURL: "https://www.googleapis.com/oauth2/v3/certs"})
		assert.ErrorIs(t, err, auth.ErrAudienceRequired)
	})

	t.Run("JWKS with audience", func(t *testing.T) {
		v, err := newVerifier(&config.Config{
			IdPJWKSURL:  "https://www.googleapis.com/oauth2/v3/certs",
			IdPAudience: "young-ats-client",
			IdPIssuers:  auth.GoogleIssuers,
		})
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("dev secret only maps identity", func(t *testing.T) {
		const secret = "local-dev-secret-0123456789"
		v, err := newVerifier(&config.Config{
			IdPJWKSURL:   "https://www.googleapis.com/oauth2/v3/certs",
			IdPDevSecret: secret,
		})
		require.NoError(t, err)

		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.IDTokenClaims{
			Email: "Ana@YoungEmpreendimentos.com.br",
			Name:  "Ana",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "ana-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte(secret))
		require.NoError(t, err)

		id, err := v.Verify(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "ana@youngempreendimentos.com.br", id.Email)
		assert.Equal(t, "Ana", id.Name)
		assert.Equal(t, "ana-1", id.Subject)
	})
}
