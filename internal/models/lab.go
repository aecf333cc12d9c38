package models

import "time"

// Lab is a physical laboratory published by the portal.
type Lab struct {
	ID              string    `db:"id" json:"id"`
	LabName         string    `db:"lab_name" json:"labName" validate:"required"`
	Department      string    `db:"department" json:"department" validate:"required"`
	Location        string    `db:"location" json:"location" validate:"required"`
	Capacity        int       `db:"capacity" json:"capacity" validate:"min=1"`
	Equipments      string    `db:"equipments" json:"equipments" validate:"required"`
	AvailableSystem int       `db:"available_system" json:"availableSystem" validate:"min=0"`
	WorkingSystem   int       `db:"working_system" json:"workingSystem" validate:"min=0"`
	Incharge        string    `db:"incharge" json:"incharge" validate:"required"`
	Technician      string    `db:"technician" json:"technician" validate:"required"`
	Software        string    `db:"software" json:"software" validate:"required"`
	Specifications  string    `db:"specifications" json:"specifications" validate:"required"`
	LabType         string    `db:"lab_type" json:"labType" validate:"required"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// LabSummary is the reduced lab view shown on the user dashboard.
type LabSummary struct {
	ID         string `json:"id"`
	LabName    string `json:"labName"`
	Department string `json:"department"`
	Location   string `json:"location"`
	Capacity   int    `json:"capacity"`
	Equipments string `json:"equipments"`
}

// Summary projects the lab onto its dashboard fields.
func (l Lab) Summary() LabSummary {
	return LabSummary{
		ID:         l.ID,
		LabName:    l.LabName,
		Department: l.Department,
		Location:   l.Location,
		Capacity:   l.Capacity,
		Equipments: l.Equipments,
	}
}

// LabFilter narrows lab listings.
type LabFilter struct {
	LabType string
}
