package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

// ErrorBody is the error contract returned to clients.
type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageBody is returned by endpoints that only acknowledge an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends the payload as the response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a plain acknowledgment.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, MessageBody{Message: message})
}

// Error sends an error response converting the error to the common structure.
// Internal errors never leak their cause.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := ErrorBody{Message: appErr.Message, Code: appErr.Code}
	var fe FieldErrors
	if appErr.Err != nil && errors.As(appErr.Err, &fe) {
		body.Fields = fe.FieldMessages()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, body)
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// FieldErrors is implemented by validation errors that can describe
// individual fields.
type FieldErrors interface {
	FieldMessages() map[string]string
}
