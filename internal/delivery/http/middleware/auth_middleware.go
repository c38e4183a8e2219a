package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"young-ats/internal/delivery/http/response"
	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
)

// SessionCookie is the cookie the frontend may carry the session token in.
const SessionCookie = "young_ats_session"

// AuthMiddleware resolves the session token from the Authorization header
// or the session cookie and puts the signed-in user on the context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or session cookie required", nil)
			c.Abort()
			return
		}

		session, err := authUC.Hydrate(c.Request.Context(), tokenString)
		if err != nil {
			code, msg := http.StatusUnauthorized, "Invalid or expired session"
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code >= http.StatusInternalServerError {
				code, msg = appErr.Code, appErr.Message
			}
			response.Error(c, code, msg, nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeySessionID), session.ID)
		c.Set(string(domain.KeyUserEmail), session.User.Email)
		c.Set(string(domain.KeyUserName), session.User.Name)
		c.Set(string(domain.KeyUserRole), session.User.Role)

		c.Next()
	}
}

// RequireRole rejects signed-in users whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}

// CurrentUser rebuilds the signed-in user from the context.
func CurrentUser(c *gin.Context) domain.User {
	return domain.User{
		Email: c.GetString(string(domain.KeyUserEmail)),
		Name:  c.GetString(string(domain.KeyUserName)),
		Role:  c.GetString(string(domain.KeyUserRole)),
	}
}
