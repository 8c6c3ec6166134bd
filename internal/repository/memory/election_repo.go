package memory

import (
	"context"
	"sort"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

type ElectionRepo struct {
	s *Store
}

func (r *ElectionRepo) Create(ctx context.Context, e *election.Election) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = newID()
	e.CreatedAt = r.s.now()
	copyElection := *e
	r.s.elections[e.ID] = &copyElection
	return nil
}

func (r *ElectionRepo) GetByID(ctx context.Context, id string) (*election.Election, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.elections[id]
	if !ok {
		return nil, election.ErrNotFound
	}
	copyElection := *e
	return &copyElection, nil
}

func (r *ElectionRepo) List(ctx context.Context, f election.ListFilter) ([]election.Election, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := []election.Election{}
	for _, e := range r.s.elections {
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, e.Status) {
			continue
		}
		res = append(res, *e)
	}
	if f.ByStart {
		sort.SliceStable(res, func(i, j int) bool { return res[i].StartDate.Before(res[j].StartDate) })
	} else {
		sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	}
	return res, nil
}

func (r *ElectionRepo) Update(ctx context.Context, id string, input election.UpdateInput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.elections[id]
	if !ok {
		return election.ErrNotFound
	}
	if input.Title != nil {
		e.Title = *input.Title
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}
	if input.Status != nil {
		e.Status = *input.Status
	}
	return nil
}

func (r *ElectionRepo) UpdateStatus(ctx context.Context, id string, status election.Status) error {
	return r.Update(ctx, id, election.UpdateInput{Status: &status})
}

// Delete cascades to offices, their candidates and every vote of the election.
func (r *ElectionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[id]; !ok {
		return election.ErrNotFound
	}
	delete(r.s.elections, id)
	for officeID, o := range r.s.offices {
		if o.ElectionID == id {
			r.s.deleteOfficeLocked(officeID)
		}
	}
	kept := r.s.votes[:0]
	for _, v := range r.s.votes {
		if v.ElectionID != id {
			kept = append(kept, v)
		}
	}
	r.s.votes = kept
	return nil
}

func (r *ElectionRepo) CreateOffice(ctx context.Context, o *election.Office) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[o.ElectionID]; !ok {
		return election.ErrNotFound
	}
	o.ID = newID()
	copyOffice := *o
	r.s.offices[o.ID] = &copyOffice
	return nil
}

func (r *ElectionRepo) GetOffice(ctx context.Context, id string) (*election.Office, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.offices[id]
	if !ok {
		return nil, election.ErrOfficeNotFound
	}
	copyOffice := *o
	return &copyOffice, nil
}

func (r *ElectionRepo) ListOffices(ctx context.Context, electionID string) ([]election.Office, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := []election.Office{}
	for _, o := range r.s.offices {
		if o.ElectionID == electionID {
			res = append(res, *o)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Title == res[j].Title {
			return res[i].ID < res[j].ID
		}
		return res[i].Title < res[j].Title
	})
	return res, nil
}

func (r *ElectionRepo) UpdateOffice(ctx context.Context, id, title string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.offices[id]
	if !ok {
		return election.ErrOfficeNotFound
	}
	o.Title = title
	return nil
}

func (r *ElectionRepo) DeleteOffice(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.offices[id]; !ok {
		return election.ErrOfficeNotFound
	}
	r.s.deleteOfficeLocked(id)
	return nil
}

func (s *Store) deleteOfficeLocked(officeID string) {
	delete(s.offices, officeID)
	for id, c := range s.candidates {
		if c.OfficeID == officeID {
			delete(s.candidates, id)
			delete(s.profiles, id)
		}
	}
	kept := s.votes[:0]
	for _, v := range s.votes {
		if v.OfficeID != officeID {
			kept = append(kept, v)
		}
	}
	s.votes = kept
}

func hasStatus(list []election.Status, s election.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
