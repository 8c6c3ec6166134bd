package ballot

import (
	"context"
	"time"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

// Choices maps office id to the chosen candidate id. A nil value is an
// explicit blank; an absent office has not been touched yet.
type Choices map[string]*string

func (c Choices) clone() Choices {
	out := make(Choices, len(c))
	for k, v := range c {
		if v != nil {
			id := *v
			v = &id
		}
		out[k] = v
	}
	return out
}

type Vote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ElectionID  string    `json:"election_id"`
	OfficeID    string    `json:"position_id"`
	CandidateID *string   `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Receipt struct {
	ElectionID string `json:"election_id"`
	Offices    int    `json:"offices"`
	Blank      int    `json:"blank"`
}

// Repository stores a whole ballot in one atomic insert. A uniqueness
// violation must surface as ErrAlreadyVoted.
type Repository interface {
	InsertBatch(ctx context.Context, votes []Vote) error
}

type ElectionGate interface {
	Current(ctx context.Context, id string) (*election.Election, election.Phase, error)
	Offices(ctx context.Context, electionID string) ([]election.Office, error)
}

type CandidateIndex interface {
	CandidateIDsByOffice(ctx context.Context, electionID string) (map[string][]string, error)
}

type IdentityChecker interface {
	IsVerified(ctx context.Context, userID string) (bool, error)
}
