// Package memory keeps every table in process memory. It backs local runs
// with STORAGE_DRIVER=memory and the HTTP tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/voter"
)

type Store struct {
	mu         sync.RWMutex
	elections  map[string]*election.Election
	offices    map[string]*election.Office
	candidates map[string]*candidate.Candidate
	parties    map[string]*candidate.Party
	profiles   map[string]*candidate.Profile // keyed by candidate id
	voters     map[string]*voter.Profile
	votes      []ballot.Vote
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]*election.Election),
		offices:    make(map[string]*election.Office),
		candidates: make(map[string]*candidate.Candidate),
		parties:    make(map[string]*candidate.Party),
		profiles:   make(map[string]*candidate.Profile),
		voters:     make(map[string]*voter.Profile),
		now:        time.Now,
	}
}

func newID() string {
	return uuid.NewString()
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

// Repos bundles the typed views over one Store.
type Repos struct {
	Elections  *ElectionRepo
	Candidates *CandidateRepo
	Voters     *VoterRepo
	Votes      *VoteRepo
}

func (s *Store) Repos() Repos {
	return Repos{
		Elections:  &ElectionRepo{s: s},
		Candidates: &CandidateRepo{s: s},
		Voters:     &VoterRepo{s: s},
		Votes:      &VoteRepo{s: s},
	}
}
