package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource was modified concurrently")
)

// JobType constants
const (
	JobTypeCLT     = "CLT"
	JobTypePJ      = "PJ"
	JobTypeEstagio = "Estágio"
)

// JobStatus constants
const (
	JobStatusAberta  = "Aberta"
	JobStatusFechada = "Fechada"
)

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,min=3,max=150,no_emoji"`
	Area        string    `json:"area" validate:"required,max=100"`
	City        string    `json:"city" validate:"required,max=120"`
	State       string    `json:"state" validate:"required,uf"`
	Type        string    `json:"type" validate:"required,job_type"`
	Status      string    `json:"status" validate:"required,job_status"`
	Description string    `json:"description,omitempty"`
	Company     string    `json:"company,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
	Tags        []string  `json:"tags"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	// Fetch returns every job, newest first.
	Fetch(ctx context.Context) ([]Job, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, job *Job, actor User) error
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter string) ([]Job, error)
	SetJobStatus(ctx context.Context, id string, status string) (*Job, error)
	ToggleJobStatus(ctx context.Context, id string) (*Job, error)
}
