package candidate

import (
	"context"
	"time"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

const MaxProfileImages = 3

type Candidate struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	PhotoURL *string `json:"photo_url"`
	PartyID  *string `json:"party_id"`
	OfficeID string  `json:"position_id"`
}

type Party struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
}

// Profile is the candidate's government plan page.
type Profile struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	PlanBody    string    `json:"plan_body"`
	ImageURLs   []string  `json:"image_urls"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OfficeSummary struct {
	Title      string `json:"title"`
	ElectionID string `json:"election_id"`
}

// Detail is a candidate joined with its office, party and profile.
type Detail struct {
	Candidate
	Office  OfficeSummary `json:"position"`
	Party   *Party        `json:"party"`
	Profile *Profile      `json:"profile"`
}

// Independent reports whether the candidate runs without a party.
func (d Detail) Independent() bool {
	return d.Party == nil
}

type UpdateInput struct {
	FullName *string
	PhotoURL *string
	// PartyID set to "" makes the candidate independent.
	PartyID *string
}

type ListFilter struct {
	ElectionStatuses []election.Status
	ElectionID       string
}

type Repository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context, f ListFilter) ([]Detail, error)
	Update(ctx context.Context, id string, input UpdateInput) error
	Delete(ctx context.Context, id string) error
}

type PartyRepository interface {
	CreateParty(ctx context.Context, p *Party) error
	GetParty(ctx context.Context, id string) (*Party, error)
	ListParties(ctx context.Context) ([]Party, error)
	UpdateParty(ctx context.Context, id string, p Party) error
	DeleteParty(ctx context.Context, id string) error
}

// ProfileRepository keeps at most one profile per candidate.
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, candidateID string) (*Profile, error)
}

type OfficeLookup interface {
	Office(ctx context.Context, id string) (*election.Office, error)
}
