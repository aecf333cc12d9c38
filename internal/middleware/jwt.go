package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the resolved principal.
const ContextPrincipalKey = "currentPrincipal"

// TokenVerifier resolves a session token into a principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (models.Principal, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "No token provided"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		token := ""
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		principal, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by JWT, if any.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok && principal != nil
}
