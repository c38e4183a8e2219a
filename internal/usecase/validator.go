package usecase

import (
	"github.com/go-playground/validator/v10"

	"young-ats/internal/domain"
	"young-ats/pkg/validation"
)

// NewValidator returns a validator with the generic tags and the ATS enum
// tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators adds every custom tag the ATS binds and validates with.
func RegisterValidators(v *validator.Validate) {
	validation.RegisterValidators(v)

	stages := make([]string, len(domain.Stages))
	for i, s := range domain.Stages {
		stages[i] = string(s)
	}
	statuses := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		statuses[i] = string(s)
	}

	_ = validation.RegisterEnum(v, "pipeline_stage", false, stages...)
	_ = validation.RegisterEnum(v, "candidate_status", true, statuses...)
	_ = validation.RegisterEnum(v, "job_type", false, domain.JobTypeCLT, domain.JobTypePJ, domain.JobTypeEstagio)
	_ = validation.RegisterEnum(v, "job_status", false, domain.JobStatusAberta, domain.JobStatusFechada)
}
