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
	"young-ats/internal/pipeline"
	"young-ats/internal/usecase"
	"young-ats/pkg/apperror"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate, precondition *time.Time) error {
	return m.Called(ctx, c, precondition).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.CandidateEvent) error {
	return m.Called(ctx, event).Error(0)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

var (
	operator = domain.User{Email: "rh@youngempreendimentos.com.br", Name: "RH", Role: domain.RoleUser}
	admin    = domain.User{Email: "admin@youngempreendimentos.com.br", Name: "Admin", Role: domain.RoleAdmin}
)

func storedCandidate() *domain.Candidate {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Candidate{
		LegacyID:      "c-1",
		FullName:      "Maria Souza",
		Email:         "maria@example.com",
		Phone:         "(51) 99876-5432",
		PipelineStage: domain.StageInscrito,
		Status:        domain.StatusEmAndamento,
		CreatedAt:     created,
		Tags:          []string{"Novo Inscrito"},
		InterestAreas: []string{},
		History: []domain.HistoryEntry{
			{Date: created, Action: pipeline.ActionFormIntake, User: domain.SystemUser},
		},
	}
}

func TestApplyStageChange(t *testing.T) {
	ctx := context.Background()
	validate := usecase.NewValidator()

	t.Run("Should reject gate failure without writing", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		pub := new(MockPublisher)
		uc := usecase.NewCandidateUsecase(repo, pub, validate)

		repo.On("GetByID", ctx, "c-1").Return(storedCandidate(), nil)

		_, err := uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{
			TargetStage: domain.StageConsiderado,
			Edits:       domain.CandidateEdits{HasDriverLicense: boolPtr(true)},
		}, operator)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, statusCode(t, err))
		assert.Equal(t, pipeline.ReasonCityRequired, err.Error())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Should persist merged edits with one transition entry", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		pub := new(MockPublisher)
		uc := usecase.NewCandidateUsecase(repo, pub, validate)

		stored := storedCandidate()
		repo.On("GetByID", ctx, "c-1").Return(stored, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Candidate"), (*time.Time)(nil)).Return(nil)
		pub.On("Publish", ctx, mock.AnythingOfType("domain.CandidateEvent")).Return(nil)

		got, err := uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{
			TargetStage: domain.StageConsiderado,
			Edits: domain.CandidateEdits{
				City:             strPtr("Porto Alegre"),
				HasDriverLicense: boolPtr(false),
			},
		}, operator)
		require.NoError(t, err)

		assert.Equal(t, domain.StageConsiderado, got.PipelineStage)
		assert.Equal(t, "Porto Alegre", got.City)
		require.Len(t, got.History, 2)
		assert.Equal(t, "Mudança de estágio: Inscrito -> Considerado", got.History[0].Action)
		assert.Equal(t, operator.Email, got.History[0].User)
		assert.Equal(t, pipeline.ActionFormIntake, got.History[1].Action)
		require.NotNil(t, got.UpdatedAt)

		// The loaded record is untouched
		assert.Equal(t, domain.StageInscrito, stored.PipelineStage)
		assert.Len(t, stored.History, 1)

		pub.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(e domain.CandidateEvent) bool {
			return e.Type == domain.EventStageChanged &&
				e.FromStage == domain.StageInscrito &&
				e.ToStage == domain.StageConsiderado
		}))
	})

	t.Run("Should survive a failing publisher", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		pub := new(MockPublisher)
		uc := usecase.NewCandidateUsecase(repo, pub, validate)

		c := storedCandidate()
		c.PipelineStage = domain.StageEntrevistaI
		repo.On("GetByID", ctx, "c-1").Return(c, nil)
		repo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
		pub.On("Publish", ctx, mock.Anything).Return(errors.New("redis down"))

		got, err := uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{TargetStage: domain.StageTestesRealizados}, operator)
		require.NoError(t, err)
		assert.Equal(t, domain.StageTestesRealizados, got.PipelineStage)
	})

	t.Run("Should reject unknown and same stage", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, nil, validate)
		repo.On("GetByID", ctx, "c-1").Return(storedCandidate(), nil)

		_, err := uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{TargetStage: "Contratado"}, operator)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))

		_, err = uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{TargetStage: domain.StageInscrito}, operator)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass precondition and map stale write to 409", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, nil, validate)

		expected := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
		repo.On("GetByID", ctx, "c-1").Return(storedCandidate(), nil)
		repo.On("Update", ctx, mock.Anything, &expected).Return(domain.ErrConflict)

		_, err := uc.ApplyStageChange(ctx, "c-1", domain.StageChangeRequest{
			TargetStage:       domain.StageEntrevistaI,
			ExpectedUpdatedAt: &expected,
		}, operator)
		assert.Equal(t, http.StatusConflict, statusCode(t, err))
	})

	t.Run("Should map missing candidate to 404", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, nil, validate)
		repo.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := uc.ApplyStageChange(ctx, "nope", domain.StageChangeRequest{TargetStage: domain.StageEntrevistaI}, operator)
		assert.Equal(t, http.StatusNotFound, statusCode(t, err))
	})
}

func TestApplyFieldEdits(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	t.Run("Should skip gates and keep stage", func(t *testing.T) {
		c := storedCandidate()
		c.PipelineStage = domain.StageSelecionado
		repo.On("GetByID", ctx, "c-1").Return(c, nil).Once()
		repo.On("Update", ctx, mock.Anything, (*time.Time)(nil)).Return(nil).Once()

		// Clearing interview notes would fail the Selecionado gate
		got, err := uc.ApplyFieldEdits(ctx, "c-1", domain.FieldEditRequest{
			Edits: domain.CandidateEdits{InterviewNotes: strPtr("")},
		}, operator)
		require.NoError(t, err)

		assert.Equal(t, domain.StageSelecionado, got.PipelineStage)
		require.Len(t, got.History, 2)
		assert.Equal(t, pipeline.ActionFieldUpdate, got.History[0].Action)
	})

	t.Run("Should reject invalid edits before loading", func(t *testing.T) {
		_, err := uc.ApplyFieldEdits(ctx, "c-2", domain.FieldEditRequest{
			Edits: domain.CandidateEdits{Email: strPtr("not-an-email")},
		}, operator)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		repo.AssertNotCalled(t, "GetByID", ctx, "c-2")
	})
}

func TestCheckStageChange(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	c := storedCandidate()
	c.PipelineStage = domain.StageEntrevistaII
	c.InterviewNotes = "Boa comunicação"
	repo.On("GetByID", ctx, "c-1").Return(c, nil)

	result, err := uc.CheckStageChange(ctx, "c-1", domain.StageChangeRequest{
		TargetStage: domain.StageSelecionado,
		Edits:       domain.CandidateEdits{ManagerFeedback: strPtr("Aprovado")},
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, pipeline.ReasonFeedbackNotConfirmed, result.Reason)
	assert.Empty(t, c.ManagerFeedback)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCandidate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	t.Run("Should apply defaults", func(t *testing.T) {
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Once()

		got, err := uc.CreateCandidate(ctx, &domain.Candidate{
			LegacyID:      "manual-1",
			FullName:      "João Lima",
			City:          "caxias do sul - RS",
			InterestAreas: []string{"Administrativa, Comercial", " ", "TI "},
		}, operator)
		require.NoError(t, err)

		assert.Equal(t, []string{"Administrativa", "Comercial", "TI"}, got.InterestAreas)
		assert.Equal(t, domain.StageInscrito, got.PipelineStage)
		assert.Equal(t, domain.StatusEmAndamento, got.Status)
		assert.Equal(t, "Caxias do Sul", got.City)
		assert.NotNil(t, got.Tags)
		require.Len(t, got.History, 1)
		assert.Equal(t, pipeline.ActionManualCreate, got.History[0].Action)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("Should require a name", func(t *testing.T) {
		_, err := uc.CreateCandidate(ctx, &domain.Candidate{FullName: "  "}, operator)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
	})

	t.Run("Should reject unknown stage", func(t *testing.T) {
		_, err := uc.CreateCandidate(ctx, &domain.Candidate{FullName: "Ana", PipelineStage: "Contratado"}, operator)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
	})

	t.Run("Should report duplicates as conflict", func(t *testing.T) {
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict).Once()
		_, err := uc.CreateCandidate(ctx, &domain.Candidate{LegacyID: "dup", FullName: "Ana"}, operator)
		assert.Equal(t, http.StatusConflict, statusCode(t, err))
	})
}

func TestDeleteCandidate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	t.Run("Should fail if role is not admin", func(t *testing.T) {
		err := uc.DeleteCandidate(ctx, "c-1", operator)
		assert.Equal(t, http.StatusForbidden, statusCode(t, err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should delete as admin", func(t *testing.T) {
		repo.On("Delete", ctx, "c-1").Return(nil).Once()
		assert.NoError(t, uc.DeleteCandidate(ctx, "c-1", admin))
	})

	t.Run("Should report missing candidate", func(t *testing.T) {
		repo.On("Delete", ctx, "gone").Return(domain.ErrNotFound).Once()
		err := uc.DeleteCandidate(ctx, "gone", admin)
		assert.Equal(t, http.StatusNotFound, statusCode(t, err))
	})
}

func TestGetContact(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	t.Run("Should build whatsapp link", func(t *testing.T) {
		repo.On("GetByID", ctx, "c-1").Return(storedCandidate(), nil).Once()
		info, err := uc.GetContact(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, "https://wa.me/5551998765432", info.WhatsAppURL)
	})

	t.Run("Should refuse opted-out candidates", func(t *testing.T) {
		c := storedCandidate()
		c.OptOutLGPD = true
		repo.On("GetByID", ctx, "c-1").Return(c, nil).Once()
		_, err := uc.GetContact(ctx, "c-1")
		assert.Equal(t, http.StatusForbidden, statusCode(t, err))
	})
}

func TestFindNeedingAttention(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, usecase.NewValidator())

	at := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	stale := storedCandidate()
	stale.CreatedAt = at.Add(-8 * 24 * time.Hour)
	fresh := storedCandidate()
	fresh.LegacyID = "c-2"
	fresh.CreatedAt = at.Add(-24 * time.Hour)
	repo.On("List", ctx).Return([]domain.Candidate{*stale, *fresh}, nil)

	got, err := uc.FindNeedingAttention(ctx, at)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c-1", got[0].LegacyID)
}
