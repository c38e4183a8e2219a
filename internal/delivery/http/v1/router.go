package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"young-ats/config"
	"young-ats/internal/delivery/http/middleware"
	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
	"young-ats/internal/usecase"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	JobUC       domain.JobUsecase
	CandidateUC domain.CandidateUsecase
	DashboardUC domain.DashboardUsecase
	ExportUC    domain.ExportUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	// Binding tags share the custom tags used by the usecases
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		usecase.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	if deps.Config.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, gin.Mode() == gin.ReleaseMode)
		NewCandidateHandler(protected, deps.CandidateUC, deps.ExportUC)
		NewDashboardHandler(protected, deps.DashboardUC)
		NewJobHandler(protected, deps.JobUC)
	}

	return r
}
