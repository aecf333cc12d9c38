package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type labService interface {
	List(ctx context.Context) ([]models.Lab, error)
	ListByType(ctx context.Context, labType string) ([]models.Lab, error)
	Get(ctx context.Context, id string) (*models.Lab, error)
	Create(ctx context.Context, req dto.CreateLabRequest) (*models.Lab, error)
	Update(ctx context.Context, id string, req dto.UpdateLabRequest) (*models.Lab, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format dto.ExportFormat) (*service.ExportFile, error)
}

// LabHandler exposes the lab registry.
type LabHandler struct {
	service labService
}

// NewLabHandler constructs the handler.
func NewLabHandler(svc labService) *LabHandler {
	return &LabHandler{service: svc}
}

// List godoc
// @Summary List labs
// @Tags Labs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Lab
// @Router /labs [get]
func (h *LabHandler) List(c *gin.Context) {
	labs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labs)
}

// Summaries godoc
// @Summary Lab overview for the user dashboard
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LabSummary
// @Router /users/labs [get]
func (h *LabHandler) Summaries(c *gin.Context) {
	labs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]models.LabSummary, 0, len(labs))
	for _, lab := range labs {
		out = append(out, lab.Summary())
	}
	response.JSON(c, http.StatusOK, out)
}

// ListByType godoc
// @Summary List labs of one type
// @Tags Labs
// @Produce json
// @Security BearerAuth
// @Param type path string true "Lab type"
// @Success 200 {array} models.Lab
// @Router /labs/type/{type} [get]
func (h *LabHandler) ListByType(c *gin.Context) {
	labs, err := h.service.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labs)
}

// Get godoc
// @Summary Get a lab
// @Tags Labs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lab ID"
// @Success 200 {object} models.Lab
// @Failure 404 {object} response.ErrorBody
// @Router /labs/{id} [get]
func (h *LabHandler) Get(c *gin.Context) {
	lab, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lab)
}

// Create godoc
// @Summary Create a lab
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateLabRequest true "Lab"
// @Success 201 {object} models.Lab
// @Failure 400 {object} response.ErrorBody
// @Router /admin/labs [post]
func (h *LabHandler) Create(c *gin.Context) {
	var req dto.CreateLabRequest
	if !bindJSON(c, &req, "invalid lab payload") {
		return
	}
	lab, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lab)
}

// Update godoc
// @Summary Update a lab
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lab ID"
// @Param payload body dto.UpdateLabRequest true "Fields to change"
// @Success 200 {object} models.Lab
// @Failure 404 {object} response.ErrorBody
// @Router /admin/labs/{id} [put]
func (h *LabHandler) Update(c *gin.Context) {
	var req dto.UpdateLabRequest
	if !bindJSON(c, &req, "invalid lab payload") {
		return
	}
	lab, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lab)
}

// Delete godoc
// @Summary Delete a lab
// @Description Fails with 409 while a timetable references the lab.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lab ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /admin/labs/{id} [delete]
func (h *LabHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Lab deleted successfully")
}

// Export godoc
// @Summary Export the lab inventory
// @Tags Labs
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /labs/export [get]
func (h *LabHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
