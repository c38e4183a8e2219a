package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"young-ats/internal/domain"
	"young-ats/internal/usecase"
	"young-ats/pkg/auth"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, raw string) (*domain.Identity, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newAuthUsecase(t *testing.T, verifier domain.IdentityVerifier, sessions domain.SessionRepository) domain.AuthUsecase {
	t.Helper()
	signer, err := auth.NewSessionSigner("test-session-secret-0123456789")
	require.NoError(t, err)
	return usecase.NewAuthUsecase(verifier, sessions, signer,
		[]string{"Chefe@YoungEmpreendimentos.com.br"}, "@youngempreendimentos.com.br", time.Hour)
}

func TestAuthorize(t *testing.T) {
	uc := newAuthUsecase(t, new(MockVerifier), new(MockSessionRepo))

	tests := []struct {
		name  string
		email string
		role  string
	}{
		{"allow-listed email is admin", "chefe@youngempreendimentos.com.br", domain.RoleAdmin},
		{"allow-list ignores case", "CHEFE@youngempreendimentos.com.br", domain.RoleAdmin},
		{"org domain is user", "rh@youngempreendimentos.com.br", domain.RoleUser},
		{"other domain is denied", "someone@gmail.com", ""},
		{"look-alike domain is denied", "x@notyoungempreendimentos.com.br", ""},
		{"empty email is denied", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := uc.Authorize(domain.Identity{Email: tt.email, Name: "N"})
			if tt.role == "" {
				assert.Equal(t, http.StatusForbidden, statusCode(t, err))
				assert.Equal(t, "Acesso negado", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
		})
	}
}

func TestSignInHydrateSignOut(t *testing.T) {
	ctx := context.Background()
	verifier := new(MockVerifier)
	sessions := new(MockSessionRepo)
	uc := newAuthUsecase(t, verifier, sessions)

	verifier.On("Verify", ctx, "good").Return(&domain.Identity{
		Email: "rh@youngempreendimentos.com.br",
		Name:  "Equipe RH",
	}, nil)
	verifier.On("Verify", ctx, "bad").Return(nil, errors.New("signature"))

	var saved *domain.Session
	sessions.On("Save", ctx, mock.AnythingOfType("*domain.Session")).Return(nil).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Session)
	})

	res, err := uc.SignIn(ctx, "good")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, saved.ExpiresAt, res.ExpiresAt)

	t.Run("Should hydrate a live session", func(t *testing.T) {
		sessions.On("Get", ctx, saved.ID).Return(saved, nil).Once()
		got, err := uc.Hydrate(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, "rh@youngempreendimentos.com.br", got.User.Email)
	})

	t.Run("Should reject a signed-out session", func(t *testing.T) {
		sessions.On("Delete", ctx, saved.ID).Return(nil).Once()
		require.NoError(t, uc.SignOut(ctx, saved.ID))

		sessions.On("Get", ctx, saved.ID).Return(nil, domain.ErrNotFound).Once()
		_, err := uc.Hydrate(ctx, res.Token)
		assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))
	})

	t.Run("Should reject a forged token", func(t *testing.T) {
		_, err := uc.Hydrate(ctx, res.Token+"x")
		assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))
	})

	t.Run("Should reject an invalid identity token", func(t *testing.T) {
		_, err := uc.SignIn(ctx, "bad")
		assert.Equal(t, http.StatusUnauthorized, statusCode(t, err))
	})
}
