package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}
	protected.GET("/dashboard", handler.Get)
}

// GetDashboard godoc
// @Summary      Pipeline KPIs
// @Description  Totals, conversion rate, funnel per stage and candidate origins.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardStats}
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) Get(c *gin.Context) {
	stats, err := h.dashboardUC.GetDashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard retrieved successfully", stats)
}
