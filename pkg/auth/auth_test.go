package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/pkg/auth"
)

const devSecret = "local-dev-secret-0123456789"

func signHS256(t *testing.T, claims auth.IDTokenClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(devSecret))
	require.NoError(t, err)
	return s
}

func TestIDTokenVerifier_DevSecret(t *testing.T) {
	v, err := auth.NewIDTokenVerifier(auth.VerifierOptions{Audience: "young-ats", DevSecret: devSecret})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		raw := signHS256(t, auth.IDTokenClaims{
			Email: "Rodrigo@YoungEmpreendimentos.com.br",
			Name:  "Rodrigo",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "abc",
				Audience:  jwt.ClaimStrings{"young-ats"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		id, err := v.Verify(context.Background(), "Bearer "+raw)

		require.NoError(t, err)
		assert.Equal(t, "rodrigo@youngempreendimentos.com.br", id.Email)
		assert.Equal(t, "Rodrigo", id.Name)
	})

	t.Run("wrong audience", func(t *testing.T) {
		raw := signHS256(t, auth.IDTokenClaims{
			Email: "a@b.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Audience:  jwt.ClaimStrings{"other"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})

	t.Run("expired", func(t *testing.T) {
		raw := signHS256(t, auth.IDTokenClaims{
			Email: "a@b.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Audience:  jwt.ClaimStrings{"young-ats"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})

		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})

	t.Run("HS256 rejected without dev secret", func(t *testing.T) {
		strict, err := auth.NewIDTokenVerifier(auth.VerifierOptions{})
		require.NoError(t, err)
		raw := signHS256(t, auth.IDTokenClaims{
			Email:            "a@b.com",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})

		_, err = strict.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})
}

func TestIDTokenVerifier_JWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	provider := auth.NewProviderWithClient(srv.URL, srv.Client())

	_, err = auth.NewIDTokenVerifier(auth.VerifierOptions{JWKS: provider})
	require.ErrorIs(t, err, auth.ErrAudienceRequired)

	v, err := auth.NewIDTokenVerifier(auth.VerifierOptions{
		JWKS:     provider,
		Audience: "young-ats-client",
		Issuers:  auth.GoogleIssuers,
	})
	require.NoError(t, err)

	sign := func(kid string, claims auth.IDTokenClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = kid
		raw, err := token.SignedString(key)
		require.NoError(t, err)
		return raw
	}
	registered := func(aud, iss string) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Issuer:    iss,
			Audience:  jwt.ClaimStrings{aud},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	t.Run("valid token", func(t *testing.T) {
		raw := sign("k1", auth.IDTokenClaims{
			Email:            "ana@youngempreendimentos.com.br",
			Picture:          "https://example.com/ana.png",
			RegisteredClaims: registered("young-ats-client", "https://accounts.google.com"),
		})

		id, err := v.Verify(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "ana@youngempreendimentos.com.br", id.Email)
		assert.Equal(t, "https://example.com/ana.png", id.PhotoURL)
	})

	t.Run("unknown kid", func(t *testing.T) {
		raw := sign("unknown", auth.IDTokenClaims{
			Email:            "ana@youngempreendimentos.com.br",
			RegisteredClaims: registered("young-ats-client", "https://accounts.google.com"),
		})

		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})

	t.Run("token minted for another client", func(t *testing.T) {
		raw := sign("k1", auth.IDTokenClaims{
			Email:            "ana@youngempreendimentos.com.br",
			RegisteredClaims: registered("some-other-oauth-client", "https://accounts.google.com"),
		})

		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		raw := sign("k1", auth.IDTokenClaims{
			Email:            "ana@youngempreendimentos.com.br",
			RegisteredClaims: registered("young-ats-client", "https://evil.example"),
		})

		_, err := v.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, auth.ErrInvalidIDToken)
	})
}

func TestSessionSigner(t *testing.T) {
	_, err := auth.NewSessionSigner("short")
	assert.Error(t, err)

	signer, err := auth.NewSessionSigner(devSecret)
	require.NoError(t, err)

	now := time.Now()
	raw, err := signer.Sign("sess-1", "ana@youngempreendimentos.com.br", now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := signer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "ana@youngempreendimentos.com.br", claims.Email)

	expired, err := signer.Sign("sess-2", "ana@youngempreendimentos.com.br", now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = signer.Parse(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidSessionToken)

	other, _ := auth.NewSessionSigner("another-secret-0123456789")
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidSessionToken)
}
