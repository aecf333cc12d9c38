package dto

import (
	"strings"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// CreateTimetableRequest is the payload for attaching a weekly schedule to a lab.
// Schedule must be present but may be empty.
type CreateTimetableRequest struct {
	LabID    string          `json:"labId" validate:"required,uuid"`
	LabName  string          `json:"labName" validate:"required"`
	Schedule models.Schedule `json:"schedule" validate:"required,unique=Day,dive"`
}

// Normalize trims the lab name and every slot before validation.
func (r *CreateTimetableRequest) Normalize() {
	r.LabName = strings.TrimSpace(r.LabName)
	r.Schedule = r.Schedule.Trim()
}

// UpdateTimetableRequest patches a timetable. A nil schedule keeps the stored one.
type UpdateTimetableRequest struct {
	LabName  *string         `json:"labName" validate:"omitempty,min=1"`
	Schedule models.Schedule `json:"schedule" validate:"omitempty,unique=Day,dive"`
}

// Normalize trims the lab name and every slot before validation.
func (r *UpdateTimetableRequest) Normalize() {
	if r.LabName != nil {
		name := strings.TrimSpace(*r.LabName)
		r.LabName = &name
	}
	r.Schedule = r.Schedule.Trim()
}

// ExportFormat selects the rendering of exported documents.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportQuery is bound from ?format= on export endpoints.
type ExportQuery struct {
	Format ExportFormat `form:"format" json:"format" validate:"omitempty,oneof=csv pdf"`
}
