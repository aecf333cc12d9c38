package models

import "time"

// DefaultAdminRole is assigned to admins created through sign-up.
const DefaultAdminRole = "admin"

// Admin is an administrator account. Admin emails live in their own
// namespace and may coincide with a user email.
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// AdminInfo is the public identity returned by admin auth endpoints.
type AdminInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Info strips the admin down to its public identity.
func (a *Admin) Info() *AdminInfo {
	if a == nil {
		return nil
	}
	return &AdminInfo{ID: a.ID, Email: a.Email, Role: a.Role, CreatedAt: a.CreatedAt}
}
