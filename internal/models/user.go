package models

import "time"

// User is a regular portal account stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserInfo is the public identity returned by auth endpoints.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Info strips the user down to its public identity.
func (u *User) Info() *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ProfileUpdateResponse is returned after a user edits their profile.
type ProfileUpdateResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
