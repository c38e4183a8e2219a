package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"young-ats/internal/delivery/http/middleware"
	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	secureCookie bool
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, secureCookie bool) {
	handler := &AuthHandler{authUC: authUC, secureCookie: secureCookie}

	public.POST("/auth/sign-in", middleware.RateLimitMiddleware(middleware.SignInRateLimitConfig()), handler.SignIn)

	auth := protected.Group("/auth")
	{
		auth.POST("/sign-out", handler.SignOut)
		auth.GET("/me", handler.Me)
	}
}

type SignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SignIn godoc
// @Summary      Sign in with the identity provider
// @Description  Exchanges an identity-provider ID token for a session token. Only organization accounts are accepted.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      SignInRequest  true  "ID token"
// @Success      200      {object}  response.Response{data=domain.SignInResult}
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.authUC.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		c.Error(err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, result.Token, maxAge, "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Signed in successfully", result)
}

// SignOut godoc
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/sign-out [post]
// @Security     BearerAuth
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authUC.SignOut(c.Request.Context(), c.GetString(string(domain.KeySessionID))); err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Signed out successfully", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, "User retrieved successfully", middleware.CurrentUser(c))
}
