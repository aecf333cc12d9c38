package models

// PrincipalKind tags which credential store a principal was resolved from.
type PrincipalKind string

const (
	PrincipalUser  PrincipalKind = "user"
	PrincipalAdmin PrincipalKind = "admin"
)

// Valid reports whether k is a known kind.
func (k PrincipalKind) Valid() bool {
	return k == PrincipalUser || k == PrincipalAdmin
}

// Principal is an authenticated identity. The only implementations are
// UserPrincipal and AdminPrincipal, so a type switch over them is exhaustive.
type Principal interface {
	Kind() PrincipalKind
	PrincipalID() string
	PrincipalEmail() string
	isPrincipal()
}

// UserPrincipal wraps a resolved user account.
type UserPrincipal struct {
	User *User
}

func (p UserPrincipal) Kind() PrincipalKind    { return PrincipalUser }
func (p UserPrincipal) PrincipalID() string    { return p.User.ID }
func (p UserPrincipal) PrincipalEmail() string { return p.User.Email }
func (UserPrincipal) isPrincipal()             {}

// AdminPrincipal wraps a resolved admin account.
type AdminPrincipal struct {
	Admin *Admin
}

func (p AdminPrincipal) Kind() PrincipalKind    { return PrincipalAdmin }
func (p AdminPrincipal) PrincipalID() string    { return p.Admin.ID }
func (p AdminPrincipal) PrincipalEmail() string { return p.Admin.Email }
func (AdminPrincipal) isPrincipal()             {}
