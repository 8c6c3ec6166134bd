package memory

import (
	"context"
	"sort"

	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
)

type CandidateRepo struct {
	s *Store
}

func (r *CandidateRepo) Create(ctx context.Context, c *candidate.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offices[c.OfficeID]; !ok {
		return election.ErrOfficeNotFound
	}
	c.ID = newID()
	copyCandidate := *c
	r.s.candidates[c.ID] = &copyCandidate
	return nil
}

func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return nil, candidate.ErrNotFound
	}
	copyCandidate := *c
	return &copyCandidate, nil
}

func (r *CandidateRepo) List(ctx context.Context, f candidate.ListFilter) ([]candidate.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := []candidate.Detail{}
	for _, c := range r.s.sortedCandidatesLocked() {
		o := r.s.offices[c.OfficeID]
		e := r.s.elections[o.ElectionID]
		if f.ElectionID != "" && o.ElectionID != f.ElectionID {
			continue
		}
		if len(f.ElectionStatuses) > 0 && !hasStatus(f.ElectionStatuses, e.Status) {
			continue
		}
		d := candidate.Detail{
			Candidate: *c,
			Office:    candidate.OfficeSummary{Title: o.Title, ElectionID: o.ElectionID},
		}
		if c.PartyID != nil {
			if p, ok := r.s.parties[*c.PartyID]; ok {
				copyParty := *p
				d.Party = &copyParty
			}
		}
		if p, ok := r.s.profiles[c.ID]; ok {
			copyProfile := *p
			d.Profile = &copyProfile
		}
		res = append(res, d)
	}
	return res, nil
}

func (r *CandidateRepo) Update(ctx context.Context, id string, input candidate.UpdateInput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return candidate.ErrNotFound
	}
	if input.FullName != nil {
		c.FullName = *input.FullName
	}
	if input.PhotoURL != nil {
		c.PhotoURL = nil
		if *input.PhotoURL != "" {
			c.PhotoURL = cloneString(input.PhotoURL)
		}
	}
	if input.PartyID != nil {
		c.PartyID = nil
		if *input.PartyID != "" {
			c.PartyID = cloneString(input.PartyID)
		}
	}
	return nil
}

// Delete keeps votes cast for the candidate but clears their candidate id.
func (r *CandidateRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[id]; !ok {
		return candidate.ErrNotFound
	}
	delete(r.s.candidates, id)
	delete(r.s.profiles, id)
	for i := range r.s.votes {
		if v := r.s.votes[i].CandidateID; v != nil && *v == id {
			r.s.votes[i].CandidateID = nil
		}
	}
	return nil
}

func (r *CandidateRepo) CreateParty(ctx context.Context, p *candidate.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID()
	copyParty := *p
	r.s.parties[p.ID] = &copyParty
	return nil
}

func (r *CandidateRepo) GetParty(ctx context.Context, id string) (*candidate.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.parties[id]
	if !ok {
		return nil, candidate.ErrPartyNotFound
	}
	copyParty := *p
	return &copyParty, nil
}

func (r *CandidateRepo) ListParties(ctx context.Context) ([]candidate.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]candidate.Party, 0, len(r.s.parties))
	for _, p := range r.s.parties {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *CandidateRepo) UpdateParty(ctx context.Context, id string, p candidate.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.parties[id]
	if !ok {
		return candidate.ErrPartyNotFound
	}
	current.Name = p.Name
	current.LogoURL = cloneString(p.LogoURL)
	current.Description = cloneString(p.Description)
	return nil
}

// DeleteParty turns the party's candidates into independents.
func (r *CandidateRepo) DeleteParty(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parties[id]; !ok {
		return candidate.ErrPartyNotFound
	}
	delete(r.s.parties, id)
	for _, c := range r.s.candidates {
		if c.PartyID != nil && *c.PartyID == id {
			c.PartyID = nil
		}
	}
	return nil
}

func (r *CandidateRepo) UpsertProfile(ctx context.Context, p *candidate.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[p.CandidateID]; !ok {
		return candidate.ErrNotFound
	}
	if existing, ok := r.s.profiles[p.CandidateID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = newID()
	}
	p.UpdatedAt = r.s.now()
	copyProfile := *p
	copyProfile.ImageURLs = append([]string(nil), p.ImageURLs...)
	r.s.profiles[p.CandidateID] = &copyProfile
	return nil
}

func (r *CandidateRepo) GetProfile(ctx context.Context, candidateID string) (*candidate.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[candidateID]
	if !ok {
		return nil, candidate.ErrProfileNotFound
	}
	copyProfile := *p
	copyProfile.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &copyProfile, nil
}

func (r *CandidateRepo) CandidateRows(ctx context.Context) ([]tally.CandidateRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]tally.CandidateRow, 0, len(r.s.candidates))
	for _, c := range r.s.sortedCandidatesLocked() {
		o := r.s.offices[c.OfficeID]
		res = append(res, tally.CandidateRow{
			ID:       c.ID,
			FullName: c.FullName,
			Office:   tally.OfficeRef{ID: o.ID, Title: o.Title, ElectionID: o.ElectionID},
		})
	}
	return res, nil
}

func (r *CandidateRepo) CandidateIDsByOffice(ctx context.Context, electionID string) (map[string][]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make(map[string][]string)
	for _, c := range r.s.sortedCandidatesLocked() {
		if r.s.offices[c.OfficeID].ElectionID == electionID {
			res[c.OfficeID] = append(res[c.OfficeID], c.ID)
		}
	}
	return res, nil
}

// sortedCandidatesLocked orders by name then id, matching the SQL adapter.
func (s *Store) sortedCandidatesLocked() []*candidate.Candidate {
	res := make([]*candidate.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].FullName == res[j].FullName {
			return res[i].ID < res[j].ID
		}
		return res[i].FullName < res[j].FullName
	})
	return res
}
