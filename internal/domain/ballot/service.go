package ballot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/platform/session"
)

var (
	ErrNotAuthenticated    = errors.New("user not authenticated")
	ErrNoElectionSelected  = errors.New("no election selected")
	ErrAlreadyVoted        = errors.New("you have already voted in this election")
	ErrElectionNotOpen     = errors.New("election is not open for voting")
	ErrIdentityNotVerified = errors.New("national id not verified")
	ErrInvalidChoice       = errors.New("invalid ballot choice")
	ErrNoOffices           = errors.New("election has no offices to vote for")
)

// SubmissionError wraps any storage failure other than a duplicate ballot.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type draftKey struct {
	userID     string
	electionID string
}

type Service struct {
	repo       Repository
	elections  ElectionGate
	candidates CandidateIndex
	identity   IdentityChecker

	mu     sync.Mutex
	drafts map[draftKey]Choices
}

func NewService(repo Repository, elections ElectionGate, candidates CandidateIndex, identity IdentityChecker) *Service {
	return &Service{
		repo:       repo,
		elections:  elections,
		candidates: candidates,
		identity:   identity,
		drafts:     make(map[draftKey]Choices),
	}
}

// RecordChoice replaces any earlier choice for officeID in the caller's draft.
func (s *Service) RecordChoice(sess session.Session, electionID, officeID string, candidateID *string) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if electionID == "" {
		return ErrNoElectionSelected
	}
	if officeID == "" {
		return fmt.Errorf("%w: office id required", ErrInvalidChoice)
	}
	if candidateID != nil {
		id := *candidateID
		candidateID = &id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := draftKey{userID: sess.UserID, electionID: electionID}
	if s.drafts[key] == nil {
		s.drafts[key] = make(Choices)
	}
	s.drafts[key][officeID] = candidateID
	return nil
}

// Summary returns a copy of the caller's draft for electionID.
func (s *Service) Summary(sess session.Session, electionID string) Choices {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[draftKey{userID: sess.UserID, electionID: electionID}].clone()
}

func (s *Service) Discard(sess session.Session, electionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey{userID: sess.UserID, electionID: electionID})
}

// EndSession drops every draft the user still holds.
func (s *Service) EndSession(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.drafts {
		if key.userID == userID {
			delete(s.drafts, key)
		}
	}
}

// Normalize fills every office missing from choices with an explicit blank.
func Normalize(choices Choices, offices []election.Office) Choices {
	out := choices.clone()
	for _, o := range offices {
		if _, ok := out[o.ID]; !ok {
			out[o.ID] = nil
		}
	}
	return out
}

// Finalize submits the caller's draft as one vote per office of the
// election. The insert is all or nothing; a second ballot from the same
// voter is reported as ErrAlreadyVoted.
func (s *Service) Finalize(ctx context.Context, sess session.Session, electionID string) (*Receipt, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if electionID == "" {
		return nil, ErrNoElectionSelected
	}

	_, phase, err := s.elections.Current(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if phase != election.PhaseOpen {
		return nil, ErrElectionNotOpen
	}

	verified, err := s.identity.IsVerified(ctx, sess.UserID)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	if !verified {
		return nil, ErrIdentityNotVerified
	}

	offices, err := s.elections.Offices(ctx, electionID)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	if len(offices) == 0 {
		return nil, ErrNoOffices
	}
	slates, err := s.candidates.CandidateIDsByOffice(ctx, electionID)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}

	choices := s.Summary(sess, electionID)
	if err := validate(choices, offices, slates); err != nil {
		return nil, err
	}
	choices = Normalize(choices, offices)

	votes := make([]Vote, 0, len(offices))
	receipt := &Receipt{ElectionID: electionID, Offices: len(offices)}
	for _, o := range offices {
		candidateID := choices[o.ID]
		if candidateID == nil {
			receipt.Blank++
		}
		votes = append(votes, Vote{
			UserID:      sess.UserID,
			ElectionID:  electionID,
			OfficeID:    o.ID,
			CandidateID: candidateID,
		})
	}

	if err := s.repo.InsertBatch(ctx, votes); err != nil {
		if errors.Is(err, ErrAlreadyVoted) {
			return nil, ErrAlreadyVoted
		}
		return nil, &SubmissionError{Err: err}
	}

	s.Discard(sess, electionID)
	return receipt, nil
}

func validate(choices Choices, offices []election.Office, slates map[string][]string) error {
	known := make(map[string]bool, len(offices))
	for _, o := range offices {
		known[o.ID] = true
	}
	for officeID, candidateID := range choices {
		if !known[officeID] {
			return fmt.Errorf("%w: office %s is not part of this election", ErrInvalidChoice, officeID)
		}
		if candidateID == nil {
			continue
		}
		if !contains(slates[officeID], *candidateID) {
			return fmt.Errorf("%w: candidate %s does not run for office %s", ErrInvalidChoice, *candidateID, officeID)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
