package app

import (
	"context"
	"fmt"

	"young-ats/config"
	"young-ats/internal/domain"
	"young-ats/internal/usecase"
	"young-ats/pkg/auth"
)

// Usecases is the application layer wired over a set of Stores.
type Usecases struct {
	Auth      domain.AuthUsecase
	Candidate domain.CandidateUsecase
	Job       domain.JobUsecase
	Dashboard domain.DashboardUsecase
	Export    domain.ExportUsecase
	Health    usecase.HealthUsecase
}

// NewUsecases builds every usecase. Sign-in needs SESSION_SECRET; without it
// Auth is nil and only the CLI can run.
func NewUsecases(cfg *config.Config, stores *Stores) (*Usecases, error) {
	validate := usecase.NewValidator()

	u := &Usecases{
		Candidate: usecase.NewCandidateUsecase(stores.Candidates, stores.Events, validate),
		Job:       usecase.NewJobUsecase(stores.Jobs, validate, cfg.CompanyName),
		Dashboard: usecase.NewDashboardUsecase(stores.Candidates),
		Export:    usecase.NewExportUsecase(stores.Candidates),
		Health:    usecase.NewHealthUsecase(stores.Health),
	}

	if cfg.SessionSecret != "" {
		signer, err := auth.NewSessionSigner(cfg.SessionSecret)
		if err != nil {
			return nil, fmt.Errorf("session signer: %w", err)
		}
		verifier, err := newVerifier(cfg)
		if err != nil {
			return nil, err
		}
		u.Auth = usecase.NewAuthUsecase(verifier, stores.Sessions, signer, cfg.AdminEmails, cfg.OrgEmailDomain, cfg.SessionTTL)
	}
	return u, nil
}

// newVerifier builds the ID-token verifier. The JWKS path needs an audience;
// without one only dev-secret tokens are accepted, and with neither sign-in
// is refused outright.
func newVerifier(cfg *config.Config) (domain.IdentityVerifier, error) {
	opts := auth.VerifierOptions{
		Audience:  cfg.IdPAudience,
		Issuers:   cfg.IdPIssuers,
		DevSecret: cfg.IdPDevSecret,
	}
	if cfg.IdPJWKSURL != "" && cfg.IdPAudience != "" {
		opts.JWKS = auth.NewProvider(cfg.IdPJWKSURL)
	}
	if opts.JWKS == nil && opts.DevSecret == "" {
		return nil, fmt.Errorf("identity verifier: %w", auth.ErrAudienceRequired)
	}

	v, err := auth.NewIDTokenVerifier(opts)
	if err != nil {
		return nil, fmt.Errorf("identity verifier: %w", err)
	}
	return idTokenVerifier{v}, nil
}

type idTokenVerifier struct {
	v *auth.IDTokenVerifier
}

func (a idTokenVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	id, err := a.v.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		Subject:  id.Subject,
		Email:    id.Email,
		Name:     id.Name,
		PhotoURL: id.PhotoURL,
	}, nil
}
