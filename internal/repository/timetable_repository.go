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

const timetableWithLabSelect = `SELECT t.id, t.lab_id, t.lab_name, t.schedule, t.created_at, t.updated_at,
l.id AS "lab.id", l.lab_name AS "lab.lab_name", l.department AS "lab.department", l.location AS "lab.location",
l.capacity AS "lab.capacity", l.equipments AS "lab.equipments", l.available_system AS "lab.available_system",
l.working_system AS "lab.working_system", l.incharge AS "lab.incharge", l.technician AS "lab.technician",
l.software AS "lab.software", l.specifications AS "lab.specifications", l.lab_type AS "lab.lab_type",
l.created_at AS "lab.created_at", l.updated_at AS "lab.updated_at"
FROM timetables t JOIN labs l ON l.id = t.lab_id`

// TimetableRepository persists weekly schedules, one per lab.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns every timetable with its lab, newest first.
func (r *TimetableRepository) List(ctx context.Context) ([]models.TimetableWithLab, error) {
	const query = timetableWithLabSelect + ` ORDER BY t.created_at DESC`
	items := []models.TimetableWithLab{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return items, nil
}

// FindByLabID returns the timetable bound to a lab.
func (r *TimetableRepository) FindByLabID(ctx context.Context, labID string) (*models.TimetableWithLab, error) {
	const query = timetableWithLabSelect + ` WHERE t.lab_id = $1`
	var item models.TimetableWithLab
	if err := r.db.GetContext(ctx, &item, query, labID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find timetable by lab: %w", err)
	}
	return &item, nil
}

// FindByID returns a timetable without its lab.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	const query = `SELECT id, lab_id, lab_name, schedule, created_at, updated_at FROM timetables WHERE id = $1`
	var item models.Timetable
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find timetable: %w", err)
	}
	return &item, nil
}

// ExistsForLab reports whether the lab already has a timetable.
func (r *TimetableRepository) ExistsForLab(ctx context.Context, labID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM timetables WHERE lab_id = $1)`, labID); err != nil {
		return false, fmt.Errorf("check timetable for lab: %w", err)
	}
	return exists, nil
}

// Count returns the number of timetables.
func (r *TimetableRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM timetables`); err != nil {
		return 0, fmt.Errorf("count timetables: %w", err)
	}
	return total, nil
}

// CountUnavailableSlots counts booked slots across all timetables for one day.
func (r *TimetableRepository) CountUnavailableSlots(ctx context.Context, day models.Weekday) (int, error) {
	const query = `SELECT COUNT(*) FROM timetables t
CROSS JOIN LATERAL jsonb_array_elements(t.schedule) AS d
CROSS JOIN LATERAL jsonb_array_elements(COALESCE(d->'timeSlots', '[]'::jsonb)) AS s
WHERE d->>'day' = $1 AND COALESCE((s->>'isAvailable')::boolean, TRUE) = FALSE`
	var total int
	if err := r.db.GetContext(ctx, &total, query, string(day)); err != nil {
		return 0, fmt.Errorf("count unavailable slots: %w", err)
	}
	return total, nil
}

// Create inserts a timetable. A second timetable for the same lab fails with
// a unique violation.
func (r *TimetableRepository) Create(ctx context.Context, item *models.Timetable) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Schedule == nil {
		item.Schedule = models.Schedule{}
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `INSERT INTO timetables (id, lab_id, lab_name, schedule, created_at, updated_at) VALUES (:id, :lab_id, :lab_name, :schedule, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	return nil
}

// Update overwrites the lab name and schedule.
func (r *TimetableRepository) Update(ctx context.Context, item *models.Timetable) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetables SET lab_name = :lab_name, schedule = :schedule, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update timetable: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a timetable. The lab is untouched.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	return expectAffected(res)
}
