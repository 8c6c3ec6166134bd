package election

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("election not found")
	ErrOfficeNotFound = errors.New("office not found")
	ErrInvalidStatus  = errors.New("invalid election status")
	ErrInvalidDates   = errors.New("end_date must not be before start_date")
	ErrTitleRequired  = errors.New("title required")
)

type Service struct {
	repo    Repository
	offices OfficeRepository
	now     func() time.Time
}

func NewService(repo Repository, offices OfficeRepository) *Service {
	return &Service{repo: repo, offices: offices, now: time.Now}
}

// WithClock replaces the time source used by voter listings.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, e *Election) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return ErrTitleRequired
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() || e.EndDate.Before(e.StartDate) {
		return ErrInvalidDates
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	return s.repo.Create(ctx, e)
}

func (s *Service) Get(ctx context.Context, id string) (*Election, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every election, newest first, for admin tooling.
func (s *Service) List(ctx context.Context) ([]Election, error) {
	return s.repo.List(ctx, ListFilter{})
}

// ListForVoters hides drafts and splits the rest by phase at the current time.
func (s *Service) ListForVoters(ctx context.Context) (Categorized, error) {
	elections, err := s.repo.List(ctx, ListFilter{
		Statuses: []Status{StatusActive, StatusClosed},
		ByStart:  true,
	})
	if err != nil {
		return Categorized{}, err
	}
	return Categorize(elections, s.now()), nil
}

// Current returns the election together with its phase at the current time.
func (s *Service) Current(ctx context.Context, id string) (*Election, Phase, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, PhaseHidden, err
	}
	return e, Classify(*e, s.now()), nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) error {
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return ErrTitleRequired
		}
		input.Title = &trimmed
	}
	if input.Status != nil && !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if input.StartDate != nil || input.EndDate != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		start, end := current.StartDate, current.EndDate
		if input.StartDate != nil {
			start = *input.StartDate
		}
		if input.EndDate != nil {
			end = *input.EndDate
		}
		if end.Before(start) {
			return ErrInvalidDates
		}
	}
	return s.repo.Update(ctx, id, input)
}

// Close sets the status to closed whatever the current status or dates are.
// Closing twice re-issues the write and succeeds both times.
func (s *Service) Close(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusClosed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateOffice(ctx context.Context, electionID, title string) (*Office, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if _, err := s.repo.GetByID(ctx, electionID); err != nil {
		return nil, err
	}
	o := &Office{Title: title, ElectionID: electionID}
	if err := s.offices.CreateOffice(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Offices(ctx context.Context, electionID string) ([]Office, error) {
	return s.offices.ListOffices(ctx, electionID)
}

func (s *Service) Office(ctx context.Context, id string) (*Office, error) {
	return s.offices.GetOffice(ctx, id)
}

func (s *Service) RenameOffice(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	return s.offices.UpdateOffice(ctx, id, title)
}

func (s *Service) DeleteOffice(ctx context.Context, id string) error {
	return s.offices.DeleteOffice(ctx, id)
}
