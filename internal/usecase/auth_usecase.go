package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
	"young-ats/pkg/auth"
	"young-ats/pkg/logger"
)

const msgAccessDenied = "Acesso negado"

type authUsecase struct {
	verifier    domain.IdentityVerifier
	sessions    domain.SessionRepository
	signer      *auth.SessionSigner
	adminEmails map[string]bool
	orgDomain   string
	ttl         time.Duration
}

// NewAuthUsecase wires sign-in. Admin emails are matched case-insensitively;
// anyone else on orgDomain gets the plain user role.
func NewAuthUsecase(
	verifier domain.IdentityVerifier,
	sessions domain.SessionRepository,
	signer *auth.SessionSigner,
	adminEmails []string,
	orgDomain string,
	ttl time.Duration,
) domain.AuthUsecase {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return &authUsecase{
		verifier:    verifier,
		sessions:    sessions,
		signer:      signer,
		adminEmails: admins,
		orgDomain:   strings.ToLower(strings.TrimPrefix(strings.TrimSpace(orgDomain), "@")),
		ttl:         ttl,
	}
}

func (u *authUsecase) Authorize(identity domain.Identity) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, apperror.Forbidden(msgAccessDenied)
	}

	user := &domain.User{
		Email:    email,
		Name:     identity.Name,
		PhotoURL: identity.PhotoURL,
	}
	switch {
	case u.adminEmails[email]:
		user.Role = domain.RoleAdmin
	case u.orgDomain != "" && strings.HasSuffix(email, "@"+u.orgDomain):
		user.Role = domain.RoleUser
	default:
		return nil, apperror.Forbidden(msgAccessDenied)
	}
	if user.Name == "" {
		user.Name = email
	}
	return user, nil
}

func (u *authUsecase) SignIn(ctx context.Context, idToken string) (*domain.SignInResult, error) {
	identity, err := u.verifier.Verify(ctx, idToken)
	if err != nil {
		logger.Log.Warnw("identity token rejected", "error", err)
		return nil, apperror.Unauthorized("Invalid identity token")
	}

	user, err := u.Authorize(*identity)
	if err != nil {
		logger.Log.Warnw("sign-in denied", "email", identity.Email)
		return nil, err
	}

	issued := time.Now().UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      *user,
		CreatedAt: issued,
		ExpiresAt: issued.Add(u.ttl),
	}
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	token, err := u.signer.Sign(session.ID, user.Email, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Infow("User signed in", "email", user.Email, "role", user.Role)
	return &domain.SignInResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *user,
	}, nil
}

func (u *authUsecase) Hydrate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := u.signer.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired session")
	}

	session, err := u.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid or expired session")
		}
		return nil, apperror.Internal(err)
	}
	if !strings.EqualFold(session.User.Email, claims.Email) {
		return nil, apperror.Unauthorized("Invalid or expired session")
	}
	return session, nil
}

func (u *authUsecase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
