package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"young-ats/internal/delivery/http/middleware"
	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	exportUC    domain.ExportUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, exportUC domain.ExportUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, exportUC: exportUC}

	candidates := protected.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("", handler.Create)
		candidates.GET("/board", handler.Board)
		candidates.GET("/export", handler.Export)
		candidates.GET("/:id", handler.Get)
		candidates.PATCH("/:id", handler.UpdateFields)
		candidates.POST("/:id/stage", handler.ChangeStage)
		candidates.POST("/:id/validate-stage", handler.ValidateStage)
		candidates.GET("/:id/contact", handler.Contact)
		candidates.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), handler.Delete)
	}
}

type CreateCandidateRequest struct {
	LegacyID         string   `json:"legacyId" binding:"omitempty,max=64"`
	FullName         string   `json:"fullName" binding:"required,min=2,max=200"`
	Email            string   `json:"email" binding:"omitempty,email"`
	Phone            string   `json:"phone" binding:"omitempty,max=30"`
	City             string   `json:"city" binding:"omitempty,max=120"`
	State            string   `json:"state" binding:"omitempty,uf"`
	InterestAreas    []string `json:"interestAreas"`
	SourceOrigin     string   `json:"sourceOrigin"`
	HasDriverLicense *bool    `json:"hasDriverLicense"`
	Tags             []string `json:"tags"`
}

type StageChangeRequest struct {
	TargetStage       domain.Stage          `json:"targetStage" binding:"required"`
	Edits             domain.CandidateEdits `json:"edits"`
	ExpectedUpdatedAt *time.Time            `json:"expectedUpdatedAt"`
}

type FieldEditRequest struct {
	Edits             domain.CandidateEdits `json:"edits"`
	ExpectedUpdatedAt *time.Time            `json:"expectedUpdatedAt"`
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  Newest first. q matches name or e-mail.
// @Tags         candidates
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Failure      401  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateUC.ListCandidates(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates retrieved successfully", candidates)
}

// CreateCandidate godoc
// @Summary      Create a candidate manually
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      CreateCandidateRequest  true  "Candidate"
// @Success      201        {object}  response.Response{data=domain.Candidate}
// @Failure      400        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	candidate := &domain.Candidate{
		LegacyID:         req.LegacyID,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		City:             req.City,
		State:            req.State,
		InterestAreas:    req.InterestAreas,
		SourceOrigin:     req.SourceOrigin,
		HasDriverLicense: req.HasDriverLicense,
		Tags:             req.Tags,
	}

	created, err := h.candidateUC.CreateCandidate(c.Request.Context(), candidate, middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created successfully", created)
}

// Board godoc
// @Summary      Pipeline board
// @Description  One column per stage in board order, plus candidates with an unknown stage.
// @Tags         candidates
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  response.Response{data=domain.BoardView}
// @Router       /candidates/board [get]
// @Security     BearerAuth
func (h *CandidateHandler) Board(c *gin.Context) {
	board, err := h.candidateUC.GetBoard(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Board retrieved successfully", board)
}

// Export godoc
// @Summary      Export the board
// @Tags         candidates
// @Produce      application/octet-stream
// @Param        format  query  string  false  "xlsx or csv"
// @Param        stage   query  string  false  "Stage"
// @Param        status  query  string  false  "Status"
// @Param        q       query  string  false  "Search text"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /candidates/export [get]
// @Security     BearerAuth
func (h *CandidateHandler) Export(c *gin.Context) {
	var filter domain.ExportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	format := c.DefaultQuery("format", domain.ExportFormatXLSX)

	data, filename, err := h.exportUC.ExportBoard(c.Request.Context(), format, filter)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == domain.ExportFormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	response.File(c, filename, contentType, data)
}

// GetCandidate godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Legacy ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate retrieved successfully", candidate)
}

// UpdateFields godoc
// @Summary      Save field edits
// @Description  Stage is left unchanged and no gate runs.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id     path      string            true  "Legacy ID"
// @Param        edits  body      FieldEditRequest  true  "Edits"
// @Success      200    {object}  response.Response{data=domain.Candidate}
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/{id} [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateFields(c *gin.Context) {
	var req FieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	updated, err := h.candidateUC.ApplyFieldEdits(c.Request.Context(), c.Param("id"), domain.FieldEditRequest{
		Edits:             req.Edits,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	}, middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated successfully", updated)
}

// ChangeStage godoc
// @Summary      Move a candidate to another stage
// @Description  Edits are merged first and the merged record must pass the target stage gate.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Legacy ID"
// @Param        request  body      StageChangeRequest  true  "Target stage and edits"
// @Success      200      {object}  response.Response{data=domain.Candidate}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /candidates/{id}/stage [post]
// @Security     BearerAuth
func (h *CandidateHandler) ChangeStage(c *gin.Context) {
	var req StageChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	updated, err := h.candidateUC.ApplyStageChange(c.Request.Context(), c.Param("id"), domain.StageChangeRequest{
		TargetStage:       req.TargetStage,
		Edits:             req.Edits,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	}, middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stage changed successfully", updated)
}

// ValidateStage godoc
// @Summary      Check a stage move without saving
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Legacy ID"
// @Param        request  body      StageChangeRequest  true  "Target stage and edits"
// @Success      200      {object}  response.Response{data=domain.GateResult}
// @Router       /candidates/{id}/validate-stage [post]
// @Security     BearerAuth
func (h *CandidateHandler) ValidateStage(c *gin.Context) {
	var req StageChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.candidateUC.CheckStageChange(c.Request.Context(), c.Param("id"), domain.StageChangeRequest{
		TargetStage: req.TargetStage,
		Edits:       req.Edits,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stage gate evaluated", result)
}

// Contact godoc
// @Summary      Contact details
// @Description  Refused for candidates who opted out under LGPD.
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Legacy ID"
// @Success      200  {object}  response.Response{data=domain.ContactInfo}
// @Failure      403  {object}  response.Response
// @Router       /candidates/{id}/contact [get]
// @Security     BearerAuth
func (h *CandidateHandler) Contact(c *gin.Context) {
	info, err := h.candidateUC.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact retrieved successfully", info)
}

// DeleteCandidate godoc
// @Summary      Delete a candidate permanently
// @Tags         candidates
// @Param        id   path      string  true  "Legacy ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateUC.DeleteCandidate(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted successfully", nil)
}
