package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// AdminRepository stores administrator accounts, kept apart from users.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs the repository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail returns an admin by email address, ignoring case.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM admins WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, strings.TrimSpace(email)); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// FindByID returns an admin by identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM admins WHERE id = $1 LIMIT 1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.Role == "" {
		admin.Role = models.DefaultAdminRole
	}
	now := time.Now().UTC()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	const query = `INSERT INTO admins (id, email, password_hash, role, created_at, updated_at) VALUES (:id, :email, :password_hash, :role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
