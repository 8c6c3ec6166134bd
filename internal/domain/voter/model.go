package voter

import (
	"context"
	"time"
)

const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name"`
	NationalID   *string   `json:"dni"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Verified reports whether the voter has passed national id verification.
func (p *Profile) Verified() bool {
	return p.NationalID != nil && *p.NationalID != ""
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	UpdateRole(ctx context.Context, id, role string) error
	// UpdateIdentity must return ErrNationalIDTaken when another profile
	// already holds nationalID.
	UpdateIdentity(ctx context.Context, id, nationalID, fullName string) error
}

// Registry resolves a national id to the citizen's full name.
type Registry interface {
	Lookup(ctx context.Context, nationalID string) (string, error)
}
