package memory

import (
	"context"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
)

type VoteRepo struct {
	s *Store
}

// InsertBatch enforces one vote per (user, office) over the whole batch
// before writing any row.
func (r *VoteRepo) InsertBatch(ctx context.Context, votes []ballot.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[[2]string]bool, len(r.s.votes)+len(votes))
	for _, v := range r.s.votes {
		seen[[2]string{v.UserID, v.OfficeID}] = true
	}
	for _, v := range votes {
		key := [2]string{v.UserID, v.OfficeID}
		if seen[key] {
			return ballot.ErrAlreadyVoted
		}
		seen[key] = true
	}

	now := r.s.now()
	for _, v := range votes {
		v.ID = newID()
		v.CreatedAt = now
		v.CandidateID = cloneString(v.CandidateID)
		r.s.votes = append(r.s.votes, v)
	}
	return nil
}

func (r *VoteRepo) VoteRows(ctx context.Context) ([]tally.VoteRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := make([]tally.VoteRow, 0, len(r.s.votes))
	for _, v := range r.s.votes {
		res = append(res, tally.VoteRow{
			ID:          v.ID,
			ElectionID:  v.ElectionID,
			OfficeID:    v.OfficeID,
			CandidateID: cloneString(v.CandidateID),
		})
	}
	return res, nil
}
