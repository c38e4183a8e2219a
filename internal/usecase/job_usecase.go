package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
	"young-ats/pkg/logger"
	"young-ats/pkg/normalize"
)

const msgJobNotFound = "Job not found"

type jobUsecase struct {
	jobRepo     domain.JobRepository
	validate    *validator.Validate
	companyName string
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate, companyName string) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:     jobRepo,
		validate:    validate,
		companyName: companyName,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, job *domain.Job, actor domain.User) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusAberta
	}
	if job.Company == "" {
		job.Company = u.companyName
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	job.State = strings.ToUpper(strings.TrimSpace(job.State))
	job.City = normalize.NormalizeCity(job.City)
	job.CreatedAt = now()
	job.CreatedBy = actor.Email
	if job.CreatedBy == "" {
		job.CreatedBy = domain.SystemUser
	}

	if err := u.validate.Struct(job); err != nil {
		return validationError(err)
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}

	logger.Log.Infow("Job created", "jobId", job.ID, "title", job.Title, "actor", job.CreatedBy)
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, msgJobNotFound)
	}
	return job, nil
}

// ListJobs returns jobs newest first. The filter matches title or city.
func (u *jobUsecase) ListJobs(ctx context.Context, filter string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return jobs, nil
	}
	out := []domain.Job{}
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), filter) || strings.Contains(strings.ToLower(j.City), filter) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (u *jobUsecase) SetJobStatus(ctx context.Context, id string, status string) (*domain.Job, error) {
	if err := u.validate.Var(status, "required,job_status"); err != nil {
		return nil, apperror.BadRequest("Status: valor inválido")
	}
	if err := u.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, repoError(err, msgJobNotFound)
	}
	return u.GetJobDetails(ctx, id)
}

// ToggleJobStatus flips Aberta and Fechada.
func (u *jobUsecase) ToggleJobStatus(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	next := domain.JobStatusFechada
	if job.Status == domain.JobStatusFechada {
		next = domain.JobStatusAberta
	}
	return u.SetJobStatus(ctx, id, next)
}
