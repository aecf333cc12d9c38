package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/middleware"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

func principalFromContext(c *gin.Context) models.Principal {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil
	}
	return principal
}

// bindJSON decodes the body and reports malformed payloads as validation errors.
func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
