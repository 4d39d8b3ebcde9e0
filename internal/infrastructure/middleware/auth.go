package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
)

const (
	PrincipalKey = httputil.PrincipalKey
	BearerPrefix = "Bearer "
)

type AuthMiddleware struct {
	verifier *auth.TokenVerifier
}

func NewAuthMiddleware(verifier *auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
			c.Abort()
			return
		}

		principal, err := m.verifier.Verify(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireAuthority must run after RequireAuth.
func (m *AuthMiddleware) RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := httputil.GetPrincipal(c)
		if principal == nil || !principal.HasAuthority(authority) {
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
