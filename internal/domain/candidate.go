package domain

import (
	"context"
	"fmt"
	"time"
)

// ============================================================================
// Pipeline Stage & Status
// ============================================================================

// Stage is a named step of the hiring pipeline.
type Stage string

const (
	StageInscrito         Stage = "Inscrito"
	StageConsiderado      Stage = "Considerado"
	StageEntrevistaI      Stage = "Entrevista I"
	StageTestesRealizados Stage = "Testes realizados"
	StageEntrevistaII     Stage = "Entrevista II"
	StageSelecionado      Stage = "Selecionado"
)

// Stages lists every known stage in board order.
var Stages = []Stage{
	StageInscrito,
	StageConsiderado,
	StageEntrevistaI,
	StageTestesRealizados,
	StageEntrevistaII,
	StageSelecionado,
}

// IsKnown reports whether s is one of the six pipeline stages.
func (s Stage) IsKnown() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStage converts a raw string to a Stage, returning an error for
// unknown values.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.IsKnown() {
		return "", fmt.Errorf("unknown pipeline stage %q", raw)
	}
	return s, nil
}

// Status is the candidate lifecycle flag. It is independent of Stage.
type Status string

const (
	StatusEmAndamento Status = "Em andamento"
	StatusReprovado   Status = "Reprovado"
	StatusContratado  Status = "Contratado"
	StatusStandby     Status = "Standby"
)

var Statuses = []Status{StatusEmAndamento, StatusReprovado, StatusContratado, StatusStandby}

func (s Status) IsKnown() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ============================================================================
// Candidate document
// ============================================================================

// HistoryEntry is one immutable audit record. History is stored newest first.
type HistoryEntry struct {
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
	User   string    `json:"user"`
}

// Candidate mirrors the document written by the form-intake adapter. JSON
// names must not change: external producers write this exact shape.
type Candidate struct {
	LegacyID  string `json:"legacyId"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate,omitempty"`
	Age       *int   `json:"age,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`

	// Normalized data
	City           string   `json:"city"`
	State          string   `json:"state"`
	InterestAreas  []string `json:"interestAreas"`
	EducationLevel string   `json:"educationLevel,omitempty"`

	// Raw data
	EducationBackground string `json:"educationBackground,omitempty"`
	Institution         string `json:"institution,omitempty"`
	ExperienceSummary   string `json:"experienceSummary,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	Certifications      string `json:"certifications,omitempty"`
	ResumeURL           string `json:"resumeUrl,omitempty"`
	PortfolioURL        string `json:"portfolioUrl,omitempty"`

	// Written by the intake form only
	MaritalStatus     string `json:"maritalStatus,omitempty"`
	ChildrenCount     *int   `json:"childrenCount,omitempty"`
	GraduationDate    string `json:"graduationDate,omitempty"`
	SalaryExpectation string `json:"salaryExpectation,omitempty"`
	ReferralName      string `json:"referralName,omitempty"`
	References        string `json:"references,omitempty"`

	// Metadata & control. HasDriverLicense is nil when never informed;
	// false is a valid, informed value.
	SourceOrigin        string     `json:"sourceOrigin,omitempty"`
	ApplicationType     string     `json:"applicationType,omitempty"`
	HasDriverLicense    *bool      `json:"hasDriverLicense,omitempty"`
	WillingToRelocate   *bool      `json:"willingToRelocate,omitempty"`
	IsCurrentlyStudying *bool      `json:"isCurrentlyStudying,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`

	// Internal ATS fields
	PipelineStage Stage    `json:"pipelineStage" validate:"pipeline_stage"`
	Status        Status   `json:"status" validate:"candidate_status"`
	Tags          []string `json:"tags"`
	OptOutLGPD    bool     `json:"optOutLGPD"`

	// Feedback & notes
	ManagerFeedback string `json:"managerFeedback,omitempty"`
	InterviewNotes  string `json:"interviewNotes,omitempty"`
	FeedbackGiven   bool   `json:"feedbackGiven"`

	History []HistoryEntry `json:"history"`
}

// ContactAllowed is false for candidates who opted out under LGPD.
func (c *Candidate) ContactAllowed() bool {
	return !c.OptOutLGPD
}

// Clone returns a deep copy so callers can merge edits without touching the
// stored working copy.
func (c Candidate) Clone() Candidate {
	out := c
	out.Age = clonePtr(c.Age)
	out.ChildrenCount = clonePtr(c.ChildrenCount)
	out.HasDriverLicense = clonePtr(c.HasDriverLicense)
	out.WillingToRelocate = clonePtr(c.WillingToRelocate)
	out.IsCurrentlyStudying = clonePtr(c.IsCurrentlyStudying)
	out.UpdatedAt = clonePtr(c.UpdatedAt)
	out.InterestAreas = append([]string(nil), c.InterestAreas...)
	out.Tags = append([]string(nil), c.Tags...)
	out.History = append([]HistoryEntry(nil), c.History...)
	return out
}

// EnsureCollections replaces nil slices with empty ones so documents always
// carry arrays, never null.
func (c *Candidate) EnsureCollections() {
	if c.InterestAreas == nil {
		c.InterestAreas = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.History == nil {
		c.History = []HistoryEntry{}
	}
}

// PrependHistory adds entry at index 0, ahead of all prior entries.
func (c *Candidate) PrependHistory(entry HistoryEntry) {
	history := make([]HistoryEntry, 0, len(c.History)+1)
	history = append(history, entry)
	c.History = append(history, c.History...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ============================================================================
// Pending edits
// ============================================================================

// CandidateEdits holds the unsaved form fields of the candidate editor. A nil
// field means "unchanged". Stage, history, legacyId and createdAt are not
// editable through this type.
type CandidateEdits struct {
	FullName            *string   `json:"fullName,omitempty" validate:"omitempty,min=2,max=200"`
	Email               *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone               *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	BirthDate           *string   `json:"birthDate,omitempty"`
	PhotoURL            *string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	City                *string   `json:"city,omitempty" validate:"omitempty,max=120"`
	State               *string   `json:"state,omitempty" validate:"omitempty,uf"`
	InterestAreas       *[]string `json:"interestAreas,omitempty"`
	EducationLevel      *string   `json:"educationLevel,omitempty"`
	EducationBackground *string   `json:"educationBackground,omitempty"`
	Institution         *string   `json:"institution,omitempty"`
	ExperienceSummary   *string   `json:"experienceSummary,omitempty"`
	Bio                 *string   `json:"bio,omitempty"`
	Certifications      *string   `json:"certifications,omitempty"`
	ResumeURL           *string   `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	PortfolioURL        *string   `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	SourceOrigin        *string   `json:"sourceOrigin,omitempty"`
	ApplicationType     *string   `json:"applicationType,omitempty"`
	HasDriverLicense    *bool     `json:"hasDriverLicense,omitempty"`
	WillingToRelocate   *bool     `json:"willingToRelocate,omitempty"`
	IsCurrentlyStudying *bool     `json:"isCurrentlyStudying,omitempty"`
	Status              *Status   `json:"status,omitempty" validate:"omitempty,candidate_status"`
	Tags                *[]string `json:"tags,omitempty"`
	OptOutLGPD          *bool     `json:"optOutLGPD,omitempty"`
	ManagerFeedback     *string   `json:"managerFeedback,omitempty"`
	InterviewNotes      *string   `json:"interviewNotes,omitempty"`
	FeedbackGiven       *bool     `json:"feedbackGiven,omitempty"`
}

// ApplyTo merges the edits onto c.
func (e CandidateEdits) ApplyTo(c *Candidate) {
	assign(&c.FullName, e.FullName)
	assign(&c.Email, e.Email)
	assign(&c.Phone, e.Phone)
	assign(&c.BirthDate, e.BirthDate)
	assign(&c.PhotoURL, e.PhotoURL)
	assign(&c.City, e.City)
	assign(&c.State, e.State)
	assign(&c.InterestAreas, e.InterestAreas)
	assign(&c.EducationLevel, e.EducationLevel)
	assign(&c.EducationBackground, e.EducationBackground)
	assign(&c.Institution, e.Institution)
	assign(&c.ExperienceSummary, e.ExperienceSummary)
	assign(&c.Bio, e.Bio)
	assign(&c.Certifications, e.Certifications)
	assign(&c.ResumeURL, e.ResumeURL)
	assign(&c.PortfolioURL, e.PortfolioURL)
	assign(&c.SourceOrigin, e.SourceOrigin)
	assign(&c.ApplicationType, e.ApplicationType)
	assign(&c.Status, e.Status)
	assign(&c.Tags, e.Tags)
	assign(&c.OptOutLGPD, e.OptOutLGPD)
	assign(&c.ManagerFeedback, e.ManagerFeedback)
	assign(&c.InterviewNotes, e.InterviewNotes)
	assign(&c.FeedbackGiven, e.FeedbackGiven)

	if e.HasDriverLicense != nil {
		c.HasDriverLicense = clonePtr(e.HasDriverLicense)
	}
	if e.WillingToRelocate != nil {
		c.WillingToRelocate = clonePtr(e.WillingToRelocate)
	}
	if e.IsCurrentlyStudying != nil {
		c.IsCurrentlyStudying = clonePtr(e.IsCurrentlyStudying)
	}
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// GateResult is the outcome of checking a candidate against a stage gate.
type GateResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ContactInfo is returned only for candidates who did not opt out.
type ContactInfo struct {
	LegacyID    string `json:"legacyId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

// ============================================================================
// Requests
// ============================================================================

// StageChangeRequest asks the engine to move a candidate, saving pending edits
// in the same write. ExpectedUpdatedAt is an optional staleness guard.
type StageChangeRequest struct {
	TargetStage       Stage          `json:"targetStage"`
	Edits             CandidateEdits `json:"edits"`
	ExpectedUpdatedAt *time.Time     `json:"expectedUpdatedAt,omitempty"`
}

// FieldEditRequest saves form fields without touching the stage.
type FieldEditRequest struct {
	Edits             CandidateEdits `json:"edits"`
	ExpectedUpdatedAt *time.Time     `json:"expectedUpdatedAt,omitempty"`
}

// ============================================================================
// Repository & Usecase Interfaces
// ============================================================================

// CandidateRepository is the document store keyed by legacyId.
// Update and Delete return ErrNotFound for missing ids; Update returns
// ErrConflict when precondition is set and does not match the stored
// updatedAt. With a nil precondition the last write wins.
type CandidateRepository interface {
	List(ctx context.Context) ([]Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate, precondition *time.Time) error
	Delete(ctx context.Context, id string) error
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context, filter string) ([]Candidate, error)
	GetCandidate(ctx context.Context, id string) (*Candidate, error)
	CreateCandidate(ctx context.Context, c *Candidate, actor User) (*Candidate, error)

	// ApplyFieldEdits saves edits with the generic "Dados atualizados" entry.
	ApplyFieldEdits(ctx context.Context, id string, req FieldEditRequest, actor User) (*Candidate, error)
	// ApplyStageChange validates the merged snapshot, then saves it with a
	// precise transition entry.
	ApplyStageChange(ctx context.Context, id string, req StageChangeRequest, actor User) (*Candidate, error)
	// CheckStageChange runs the gate on the merged snapshot without saving.
	CheckStageChange(ctx context.Context, id string, req StageChangeRequest) (*GateResult, error)

	DeleteCandidate(ctx context.Context, id string, actor User) error
	GetContact(ctx context.Context, id string) (*ContactInfo, error)

	GetBoard(ctx context.Context, filter string) (*BoardView, error)
	FindNeedingAttention(ctx context.Context, now time.Time) ([]Candidate, error)
}
