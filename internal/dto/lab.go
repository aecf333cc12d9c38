package dto

import (
	"strings"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// CreateLabRequest is the payload for registering a lab.
type CreateLabRequest struct {
	LabName         string `json:"labName" validate:"required"`
	Department      string `json:"department" validate:"required"`
	Location        string `json:"location" validate:"required"`
	Capacity        int    `json:"capacity" validate:"min=1"`
	Equipments      string `json:"equipments" validate:"required"`
	AvailableSystem int    `json:"availableSystem" validate:"min=0"`
	WorkingSystem   int    `json:"workingSystem" validate:"min=0"`
	Incharge        string `json:"incharge" validate:"required"`
	Technician      string `json:"technician" validate:"required"`
	Software        string `json:"software" validate:"required"`
	Specifications  string `json:"specifications" validate:"required"`
	LabType         string `json:"labType" validate:"required"`
}

// Normalize trims surrounding whitespace from every text field so that
// blank values fail the required rules.
func (r *CreateLabRequest) Normalize() {
	for _, f := range []*string{
		&r.LabName, &r.Department, &r.Location, &r.Equipments, &r.Incharge,
		&r.Technician, &r.Software, &r.Specifications, &r.LabType,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ToModel copies the request into a new lab record.
func (r CreateLabRequest) ToModel() models.Lab {
	return models.Lab{
		LabName:         r.LabName,
		Department:      r.Department,
		Location:        r.Location,
		Capacity:        r.Capacity,
		Equipments:      r.Equipments,
		AvailableSystem: r.AvailableSystem,
		WorkingSystem:   r.WorkingSystem,
		Incharge:        r.Incharge,
		Technician:      r.Technician,
		Software:        r.Software,
		Specifications:  r.Specifications,
		LabType:         r.LabType,
	}
}

// UpdateLabRequest patches a lab. Nil fields are left untouched.
type UpdateLabRequest struct {
	LabName         *string `json:"labName"`
	Department      *string `json:"department"`
	Location        *string `json:"location"`
	Capacity        *int    `json:"capacity"`
	Equipments      *string `json:"equipments"`
	AvailableSystem *int    `json:"availableSystem"`
	WorkingSystem   *int    `json:"workingSystem"`
	Incharge        *string `json:"incharge"`
	Technician      *string `json:"technician"`
	Software        *string `json:"software"`
	Specifications  *string `json:"specifications"`
	LabType         *string `json:"labType"`
}

// Apply merges the patch into lab. Text values are trimmed.
func (r UpdateLabRequest) Apply(lab *models.Lab) {
	setString(&lab.LabName, r.LabName)
	setString(&lab.Department, r.Department)
	setString(&lab.Location, r.Location)
	setInt(&lab.Capacity, r.Capacity)
	setString(&lab.Equipments, r.Equipments)
	setInt(&lab.AvailableSystem, r.AvailableSystem)
	setInt(&lab.WorkingSystem, r.WorkingSystem)
	setString(&lab.Incharge, r.Incharge)
	setString(&lab.Technician, r.Technician)
	setString(&lab.Software, r.Software)
	setString(&lab.Specifications, r.Specifications)
	setString(&lab.LabType, r.LabType)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
