package domain

import (
	"errors"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleSME     Role = "SME"
	RoleAdmin   Role = "admin"
)

// CodeTTL is how long a verification or reset code stays usable.
const CodeTTL = 10 * time.Minute

var (
	ErrNotFound   = errors.New("not_found")
	ErrEmailTaken = errors.New("email_taken")
)

// Account is the single identity record. A fresh signup stages its data in
// the Temp* fields; they are promoted to the permanent fields only when the
// verification code is consumed. TempPassword holds the plaintext until
// promotion hashes it — it must never be copied into PasswordHash directly.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Verified     bool

	VerificationCode    string
	VerificationExpires time.Time

	ResetCode    string
	ResetExpires time.Time

	TempName     string
	TempPassword string
	TempRole     Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationCodeMatches uses plain string equality, no normalization.
func (a *Account) VerificationCodeMatches(code string) bool {
	return a.VerificationCode != "" && a.VerificationCode == code
}

// VerificationCodeExpired is strict: the code is still good at the exact
// expiry instant.
func (a *Account) VerificationCodeExpired(now time.Time) bool {
	return now.After(a.VerificationExpires)
}

func (a *Account) ResetCodeMatches(code string) bool {
	return a.ResetCode != "" && a.ResetCode == code
}

func (a *Account) ResetCodeExpired(now time.Time) bool {
	return now.After(a.ResetExpires)
}

// PendingRole falls back to student when the signup never asked for a role.
func (a *Account) PendingRole() Role {
	if a.TempRole == "" {
		return RoleStudent
	}
	return a.TempRole
}

// PendingSignup is everything staged by a send-code request.
type PendingSignup struct {
	Name     string
	Password string // plaintext; hashed at promotion, not here
	Role     Role
	Code     string
	Expires  time.Time
}

// Promotion carries the values written permanently when a signup code is
// consumed. PasswordHash must already be hashed.
type Promotion struct {
	Name         string
	PasswordHash string
	Role         Role
}

type AccountRepo interface {
	GetByEmail(email string) (*Account, error)
	ExistsByEmail(email string) (bool, error)

	// UpsertPendingSignup creates the account if missing, otherwise
	// overwrites the staged fields and code. Either way the account ends
	// up unverified until the new code is consumed.
	UpsertPendingSignup(email string, p PendingSignup) (*Account, error)

	// PromoteSignup writes the permanent fields, marks the account
	// verified and clears every staged field and the signup code.
	PromoteSignup(id string, promo Promotion) error

	// SetResetCode stores a reset code independently of any outstanding
	// signup code.
	SetResetCode(id, code string, expires time.Time) error

	// UpdatePassword replaces the credential hash and clears the reset
	// code. Verified, role and name are untouched.
	UpdatePassword(id, newHash string) error

	// CreateAdmin inserts a verified admin directly; ErrEmailTaken when
	// the identity already exists.
	CreateAdmin(email, name, passwordHash string) (*Account, error)
}
