package models

import "github.com/golang-jwt/jwt/v5"

// SignUpRequest creates a user or admin account.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// SignInRequest holds credentials for a user sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminSignInRequest additionally carries the shared admin key.
type AdminSignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	AdminKey string `json:"adminKey" validate:"required"`
}

// FederatedSignInRequest carries an externally issued ID token.
type FederatedSignInRequest struct {
	Token string `json:"token" validate:"required"`
}

// SignUpResponse is returned after registration; no token is issued.
type SignUpResponse struct {
	Message string     `json:"message"`
	User    *UserInfo  `json:"user,omitempty"`
	Admin   *AdminInfo `json:"admin,omitempty"`
}

// SignInResponse returns the session token and the signed-in identity.
type SignInResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    *UserInfo  `json:"user,omitempty"`
	Admin   *AdminInfo `json:"admin,omitempty"`
}

// MeResponse describes the current principal.
type MeResponse struct {
	User  *User         `json:"user,omitempty"`
	Admin *Admin        `json:"admin,omitempty"`
	Type  PrincipalKind `json:"type"`
}

// SessionClaims is the payload of an application session token.
type SessionClaims struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Type  PrincipalKind `json:"type"`
	jwt.RegisteredClaims
}

// FederatedIdentity is what the application needs from an external ID token.
type FederatedIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
}
