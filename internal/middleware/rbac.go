package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

// RequirePrincipal admits only principals of the listed kinds. It must run
// after JWT.
func RequirePrincipal(kinds ...models.PrincipalKind) gin.HandlerFunc {
	allowed := make(map[models.PrincipalKind]struct{}, len(kinds))
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
		names = append(names, string(k))
	}
	forbidden := appErrors.Clone(appErrors.ErrForbidden, "access denied: "+strings.Join(names, " or ")+" access required")

	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[principal.Kind()]; !ok {
			response.Abort(c, forbidden)
			return
		}
		c.Next()
	}
}

// RequireAdmin is shorthand for RequirePrincipal(models.PrincipalAdmin).
func RequireAdmin() gin.HandlerFunc {
	return RequirePrincipal(models.PrincipalAdmin)
}
