package memory

import (
	"context"
	"sort"

	"github.com/DiegxRG/E-Vote/internal/domain/voter"
)

type VoterRepo struct {
	s *Store
}

func (r *VoterRepo) Create(ctx context.Context, p *voter.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.voters {
		if existing.Email == p.Email {
			return voter.ErrEmailTaken
		}
	}
	p.ID = newID()
	p.CreatedAt = r.s.now()
	copyProfile := *p
	r.s.voters[p.ID] = &copyProfile
	return nil
}

// Seed stores p as is, keeping a preset id and role.
func (r *VoterRepo) Seed(p *voter.Profile) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	copyProfile := *p
	r.s.voters[p.ID] = &copyProfile
}

func (r *VoterRepo) GetByEmail(ctx context.Context, email string) (*voter.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.voters {
		if p.Email == email {
			copyProfile := *p
			return &copyProfile, nil
		}
	}
	return nil, voter.ErrNotFound
}

func (r *VoterRepo) GetByID(ctx context.Context, id string) (*voter.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.voters[id]
	if !ok {
		return nil, voter.ErrNotFound
	}
	copyProfile := *p
	return &copyProfile, nil
}

func (r *VoterRepo) List(ctx context.Context) ([]voter.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]voter.Profile, 0, len(r.s.voters))
	for _, p := range r.s.voters {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r *VoterRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.voters[id]
	if !ok {
		return voter.ErrNotFound
	}
	p.Role = role
	return nil
}

func (r *VoterRepo) UpdateIdentity(ctx context.Context, id, nationalID, fullName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.voters[id]
	if !ok {
		return voter.ErrNotFound
	}
	for otherID, other := range r.s.voters {
		if otherID != id && other.NationalID != nil && *other.NationalID == nationalID {
			return voter.ErrNationalIDTaken
		}
	}
	p.NationalID = &nationalID
	p.FullName = &fullName
	return nil
}
