package election

import (
	"context"
	"time"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}

type Election struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Office is one contestable position inside an election.
type Office struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ElectionID string `json:"election_id"`
}

type UpdateInput struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *Status
}

type ListFilter struct {
	Statuses []Status
	// ByStart orders by start date ascending; otherwise newest first.
	ByStart bool
}

type Repository interface {
	Create(ctx context.Context, e *Election) error
	GetByID(ctx context.Context, id string) (*Election, error)
	List(ctx context.Context, f ListFilter) ([]Election, error)
	Update(ctx context.Context, id string, input UpdateInput) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type OfficeRepository interface {
	CreateOffice(ctx context.Context, o *Office) error
	GetOffice(ctx context.Context, id string) (*Office, error)
	ListOffices(ctx context.Context, electionID string) ([]Office, error)
	UpdateOffice(ctx context.Context, id, title string) error
	DeleteOffice(ctx context.Context, id string) error
}
