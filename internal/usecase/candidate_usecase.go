package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"young-ats/internal/domain"
	"young-ats/internal/pipeline"
	"young-ats/pkg/apperror"
	"young-ats/pkg/logger"
	"young-ats/pkg/normalize"
)

const msgCandidateNotFound = "Candidate not found"

type candidateUsecase struct {
	repo     domain.CandidateRepository
	events   domain.EventPublisher
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, events domain.EventPublisher, validate *validator.Validate) domain.CandidateUsecase {
	if events == nil {
		events = noEvents{}
	}
	return &candidateUsecase{
		repo:     repo,
		events:   events,
		validate: validate,
	}
}

type noEvents struct{}

func (noEvents) Publish(context.Context, domain.CandidateEvent) error { return nil }

// now is millisecond precision so stored timestamps survive a JSON round trip
// unchanged and can be echoed back as a precondition.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (u *candidateUsecase) ListCandidates(ctx context.Context, filter string) ([]domain.Candidate, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pipeline.FilterCandidates(candidates, filter), nil
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}
	return c, nil
}

// CreateCandidate registers a candidate typed in by an operator. New records
// start in Inscrito / Em andamento unless told otherwise.
func (u *candidateUsecase) CreateCandidate(ctx context.Context, c *domain.Candidate, actor domain.User) (*domain.Candidate, error) {
	if strings.TrimSpace(c.FullName) == "" {
		return nil, apperror.BadRequest("Nome completo: campo obrigatório")
	}

	ts := now()
	if c.PipelineStage == "" {
		c.PipelineStage = domain.StageInscrito
	}
	if c.Status == "" {
		c.Status = domain.StatusEmAndamento
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = ts
	}
	c.City = normalize.NormalizeCity(c.City)
	c.InterestAreas = normalize.NormalizeInterests(strings.Join(c.InterestAreas, ","))
	c.UpdatedAt = nil
	c.History = nil
	c.EnsureCollections()

	if err := u.validate.Struct(c); err != nil {
		return nil, validationError(err)
	}

	c.PrependHistory(pipeline.NewHistoryEntry(pipeline.ActionManualCreate, actor.Email, ts))

	if err := u.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("Candidate already exists", err)
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Infow("Candidate created", "legacyId", c.LegacyID, "actor", actor.Email)
	return c, nil
}

func (u *candidateUsecase) ApplyFieldEdits(ctx context.Context, id string, req domain.FieldEditRequest, actor domain.User) (*domain.Candidate, error) {
	if err := u.validate.Struct(req.Edits); err != nil {
		return nil, validationError(err)
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}

	next := pipeline.PrepareFieldEdit(*current, req.Edits, actor.Email, now())

	if err := u.repo.Update(ctx, next, req.ExpectedUpdatedAt); err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}

	logger.Log.Infow("Candidate updated", "legacyId", id, "actor", actor.Email)
	return next, nil
}

func (u *candidateUsecase) ApplyStageChange(ctx context.Context, id string, req domain.StageChangeRequest, actor domain.User) (*domain.Candidate, error) {
	target, err := domain.ParseStage(string(req.TargetStage))
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown pipeline stage: %q", req.TargetStage))
	}
	if err := u.validate.Struct(req.Edits); err != nil {
		return nil, validationError(err)
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}
	if current.PipelineStage == target {
		return nil, apperror.BadRequest(fmt.Sprintf("Candidate is already in stage %s", target))
	}

	next, gate := pipeline.PrepareStageChange(*current, req.Edits, target, actor.Email, now())
	if !gate.Valid {
		return nil, apperror.Unprocessable(gate.Reason)
	}

	if err := u.repo.Update(ctx, next, req.ExpectedUpdatedAt); err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}

	logger.Log.Infow("Candidate stage changed",
		"legacyId", id,
		"from", current.PipelineStage,
		"to", target,
		"actor", actor.Email,
	)

	// Non-fatal: the write already landed
	event := domain.CandidateEvent{
		Type:      domain.EventStageChanged,
		LegacyID:  next.LegacyID,
		FullName:  next.FullName,
		FromStage: current.PipelineStage,
		ToStage:   target,
		Actor:     actor.Email,
		At:        *next.UpdatedAt,
	}
	if err := u.events.Publish(ctx, event); err != nil {
		logger.Log.Warnw("publish stage change failed", "legacyId", id, "error", err)
	}

	return next, nil
}

func (u *candidateUsecase) CheckStageChange(ctx context.Context, id string, req domain.StageChangeRequest) (*domain.GateResult, error) {
	target, err := domain.ParseStage(string(req.TargetStage))
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown pipeline stage: %q", req.TargetStage))
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}

	snapshot := current.Clone()
	req.Edits.ApplyTo(&snapshot)
	result := pipeline.ValidateTransition(snapshot, target)
	return &result, nil
}

// DeleteCandidate is a hard, irreversible delete reserved for admins.
func (u *candidateUsecase) DeleteCandidate(ctx context.Context, id string, actor domain.User) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("Only admins can delete candidates")
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return repoError(err, msgCandidateNotFound)
	}

	logger.Log.Infow("Candidate deleted", "legacyId", id, "actor", actor.Email)
	return nil
}

func (u *candidateUsecase) GetContact(ctx context.Context, id string) (*domain.ContactInfo, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgCandidateNotFound)
	}
	if !c.ContactAllowed() {
		return nil, apperror.Forbidden("Candidate opted out of contact (LGPD)")
	}

	return &domain.ContactInfo{
		LegacyID:    c.LegacyID,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		WhatsAppURL: whatsAppURL(c.Phone),
	}, nil
}

func (u *candidateUsecase) GetBoard(ctx context.Context, filter string) (*domain.BoardView, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	board := pipeline.GroupByStage(candidates, filter, time.Now())
	return &board, nil
}

func (u *candidateUsecase) FindNeedingAttention(ctx context.Context, at time.Time) ([]domain.Candidate, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	flagged := []domain.Candidate{}
	for i := range candidates {
		if pipeline.NeedsAttention(&candidates[i], at) {
			flagged = append(flagged, candidates[i])
		}
	}
	return flagged, nil
}

// whatsAppURL builds a wa.me link for Brazilian numbers. Numbers without a
// country code get 55.
func whatsAppURL(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10 || len(d) == 11:
		d = "55" + d
	case len(d) < 10:
		return ""
	}
	return "https://wa.me/" + d
}
