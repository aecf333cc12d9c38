package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type timetableService interface {
	List(ctx context.Context) ([]models.TimetableWithLab, error)
	GetByLab(ctx context.Context, labID string) (models.LabTimetable, error)
	Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.Timetable, error)
	Update(ctx context.Context, id string, req dto.UpdateTimetableRequest) (*models.Timetable, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, labID string, format dto.ExportFormat) (*service.ExportFile, error)
}

// TimetableHandler exposes lab timetables.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List timetables
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TimetableWithLab
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// GetByLab godoc
// @Summary Timetable of a lab
// @Description Labs without a timetable return {labId, schedule: []}.
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param labId path string true "Lab ID"
// @Success 200 {object} models.TimetableWithLab
// @Router /timetable/lab/{labId} [get]
func (h *TimetableHandler) GetByLab(c *gin.Context) {
	item, err := h.service.GetByLab(c.Request.Context(), c.Param("labId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Slots godoc
// @Summary Reference hour labels
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]string
// @Router /timetable/slots [get]
func (h *TimetableHandler) Slots(c *gin.Context) {
	days := make([]string, 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		days = append(days, string(d))
	}
	response.JSON(c, http.StatusOK, gin.H{"days": days, "hours": models.ReferenceHours})
}

// Create godoc
// @Summary Create a timetable
// @Tags Timetables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTimetableRequest true "Timetable"
// @Success 201 {object} models.Timetable
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /timetable [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.CreateTimetableRequest
	if !bindJSON(c, &req, "invalid timetable payload") {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a timetable
// @Tags Timetables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timetable ID"
// @Param payload body dto.UpdateTimetableRequest true "Fields to change"
// @Success 200 {object} models.Timetable
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id} [put]
func (h *TimetableHandler) Update(c *gin.Context) {
	var req dto.UpdateTimetableRequest
	if !bindJSON(c, &req, "invalid timetable payload") {
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a timetable
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Timetable deleted successfully")
}

// Export godoc
// @Summary Export a lab timetable grid
// @Tags Timetables
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param labId path string true "Lab ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/lab/{labId}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), c.Param("labId"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
