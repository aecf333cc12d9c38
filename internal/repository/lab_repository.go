package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

const labColumns = `id, lab_name, department, location, capacity, equipments, available_system, working_system, incharge, technician, software, specifications, lab_type, created_at, updated_at`

// LabRepository persists lab records.
type LabRepository struct {
	db *sqlx.DB
}

// NewLabRepository constructs the repository.
func NewLabRepository(db *sqlx.DB) *LabRepository {
	return &LabRepository{db: db}
}

// List returns labs newest first, optionally restricted to one lab type.
func (r *LabRepository) List(ctx context.Context, filter models.LabFilter) ([]models.Lab, error) {
	query := `SELECT ` + labColumns + ` FROM labs`
	var args []interface{}
	if filter.LabType != "" {
		query += ` WHERE lab_type = $1`
		args = append(args, filter.LabType)
	}
	query += ` ORDER BY created_at DESC`

	labs := []models.Lab{}
	if err := r.db.SelectContext(ctx, &labs, query, args...); err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	return labs, nil
}

// FindByID returns a lab by identifier.
func (r *LabRepository) FindByID(ctx context.Context, id string) (*models.Lab, error) {
	const query = `SELECT ` + labColumns + ` FROM labs WHERE id = $1`
	var lab models.Lab
	if err := r.db.GetContext(ctx, &lab, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lab: %w", err)
	}
	return &lab, nil
}

// Count returns the number of labs.
func (r *LabRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM labs`); err != nil {
		return 0, fmt.Errorf("count labs: %w", err)
	}
	return total, nil
}

// Create inserts a lab.
func (r *LabRepository) Create(ctx context.Context, lab *models.Lab) error {
	if lab.ID == "" {
		lab.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	lab.CreatedAt = now
	lab.UpdatedAt = now

	const query = `INSERT INTO labs (` + labColumns + `) VALUES (:id, :lab_name, :department, :location, :capacity, :equipments, :available_system, :working_system, :incharge, :technician, :software, :specifications, :lab_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lab); err != nil {
		return fmt.Errorf("create lab: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a lab.
func (r *LabRepository) Update(ctx context.Context, lab *models.Lab) error {
	lab.UpdatedAt = time.Now().UTC()
	const query = `UPDATE labs SET lab_name = :lab_name, department = :department, location = :location, capacity = :capacity, equipments = :equipments, available_system = :available_system, working_system = :working_system, incharge = :incharge, technician = :technician, software = :software, specifications = :specifications, lab_type = :lab_type, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, lab)
	if err != nil {
		return fmt.Errorf("update lab: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a lab. Labs referenced by a timetable fail with a foreign
// key violation.
func (r *LabRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lab: %w", err)
	}
	return expectAffected(res)
}
