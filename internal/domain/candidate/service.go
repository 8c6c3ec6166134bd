package candidate

import (
	"context"
	"errors"
	"strings"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

var (
	ErrNotFound        = errors.New("candidate not found")
	ErrPartyNotFound   = errors.New("party not found")
	ErrProfileNotFound = errors.New("candidate profile not found")
	ErrNameRequired    = errors.New("name required")
	ErrOfficeRequired  = errors.New("position_id required")
	ErrTooManyImages   = errors.New("a profile holds at most three images")
)

type Service struct {
	repo     Repository
	parties  PartyRepository
	profiles ProfileRepository
	offices  OfficeLookup
}

func NewService(repo Repository, parties PartyRepository, profiles ProfileRepository, offices OfficeLookup) *Service {
	return &Service{repo: repo, parties: parties, profiles: profiles, offices: offices}
}

func (s *Service) Create(ctx context.Context, c *Candidate) error {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.FullName == "" {
		return ErrNameRequired
	}
	if c.OfficeID == "" {
		return ErrOfficeRequired
	}
	if _, err := s.offices.Office(ctx, c.OfficeID); err != nil {
		return err
	}
	c.PartyID = normalizeOptional(c.PartyID)
	c.PhotoURL = normalizeOptional(c.PhotoURL)
	if c.PartyID != nil {
		if _, err := s.parties.GetParty(ctx, *c.PartyID); err != nil {
			return err
		}
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id string) (*Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every candidate with its joins, ordered by name.
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	return s.repo.List(ctx, ListFilter{})
}

// Landing lists candidates of elections voters can see.
func (s *Service) Landing(ctx context.Context, electionID string) ([]Detail, error) {
	return s.repo.List(ctx, ListFilter{
		ElectionStatuses: []election.Status{election.StatusActive, election.StatusClosed},
		ElectionID:       electionID,
	})
}

// Update edits name, photo and party. The office a candidate runs for is fixed.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) error {
	if input.FullName != nil {
		trimmed := strings.TrimSpace(*input.FullName)
		if trimmed == "" {
			return ErrNameRequired
		}
		input.FullName = &trimmed
	}
	if input.PartyID != nil && *input.PartyID != "" {
		if _, err := s.parties.GetParty(ctx, *input.PartyID); err != nil {
			return err
		}
	}
	return s.repo.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateParty(ctx context.Context, p *Party) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameRequired
	}
	p.LogoURL = normalizeOptional(p.LogoURL)
	p.Description = normalizeOptional(p.Description)
	return s.parties.CreateParty(ctx, p)
}

func (s *Service) Parties(ctx context.Context) ([]Party, error) {
	return s.parties.ListParties(ctx)
}

func (s *Service) UpdateParty(ctx context.Context, id string, p Party) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameRequired
	}
	p.LogoURL = normalizeOptional(p.LogoURL)
	p.Description = normalizeOptional(p.Description)
	return s.parties.UpdateParty(ctx, id, p)
}

func (s *Service) DeleteParty(ctx context.Context, id string) error {
	return s.parties.DeleteParty(ctx, id)
}

// SaveProfile creates or replaces the profile of p.CandidateID.
func (s *Service) SaveProfile(ctx context.Context, p *Profile) error {
	if _, err := s.repo.GetByID(ctx, p.CandidateID); err != nil {
		return err
	}
	images := make([]string, 0, len(p.ImageURLs))
	for _, u := range p.ImageURLs {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	if len(images) > MaxProfileImages {
		return ErrTooManyImages
	}
	p.ImageURLs = images
	return s.profiles.UpsertProfile(ctx, p)
}

func (s *Service) Profile(ctx context.Context, candidateID string) (*Profile, error) {
	return s.profiles.GetProfile(ctx, candidateID)
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
