package dto

// UpdateUserStatusRequest toggles a user's active flag.
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// UpdateProfileRequest lets a user change their own email or password.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}
