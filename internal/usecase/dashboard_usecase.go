package usecase

import (
	"context"
	"time"

	"young-ats/internal/domain"
	"young-ats/internal/pipeline"
	"young-ats/pkg/apperror"
)

type dashboardUsecase struct {
	repo domain.CandidateRepository
}

func NewDashboardUsecase(repo domain.CandidateRepository) domain.DashboardUsecase {
	return &dashboardUsecase{repo: repo}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats := pipeline.Summarize(candidates, time.Now())
	return &stats, nil
}
