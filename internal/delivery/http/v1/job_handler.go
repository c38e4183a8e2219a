package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"young-ats/internal/delivery/http/middleware"
	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PATCH("/:id/status", handler.UpdateStatus)
	}
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=150"`
	Area        string   `json:"area" binding:"required,max=100"`
	City        string   `json:"city" binding:"required,max=120"`
	State       string   `json:"state" binding:"required,uf"`
	Type        string   `json:"type" binding:"required,job_type"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateJobStatusRequest sets the status, or toggles it when Status is empty.
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"omitempty,job_status"`
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Newest first. q matches title or city.
// @Tags         jobs
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// CreateJob godoc
// @Summary      Create a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Area:        req.Area,
		City:        req.City,
		State:       req.State,
		Type:        req.Type,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), job, middleware.CurrentUser(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

// UpdateJobStatus godoc
// @Summary      Open or close a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Job ID"
// @Param        request  body      UpdateJobStatusRequest  false "Empty body toggles"
// @Success      200      {object}  response.Response{data=domain.Job}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req UpdateJobStatusRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest("Status: valor inválido"))
			return
		}
	}

	var (
		job *domain.Job
		err error
	)
	if req.Status == "" {
		job, err = h.jobUC.ToggleJobStatus(c.Request.Context(), c.Param("id"))
	} else {
		job, err = h.jobUC.SetJobStatus(c.Request.Context(), c.Param("id"), req.Status)
	}
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}
