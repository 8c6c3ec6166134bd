package tally

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

// LoadError reports a failed read behind a results page. The message of the
// underlying storage error is kept for display.
type LoadError struct {
	What string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.What, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type ElectionLister interface {
	List(ctx context.Context, f election.ListFilter) ([]election.Election, error)
}

// CandidateSource reads candidates joined with their office.
type CandidateSource interface {
	CandidateRows(ctx context.Context) ([]CandidateRow, error)
}

type VoteSource interface {
	VoteRows(ctx context.Context) ([]VoteRow, error)
}

type Service struct {
	elections  ElectionLister
	candidates CandidateSource
	votes      VoteSource
}

func NewService(elections ElectionLister, candidates CandidateSource, votes VoteSource) *Service {
	return &Service{elections: elections, candidates: candidates, votes: votes}
}

// Results loads the elections eligible for audience and tallies them.
func (s *Service) Results(ctx context.Context, audience election.Audience) ([]ElectionResult, error) {
	var (
		elections  []election.Election
		candidates []CandidateRow
		votes      []VoteRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		elections, err = s.elections.List(gctx, election.ListFilter{Statuses: audience.Statuses()})
		if err != nil {
			return &LoadError{What: "elections", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = s.candidates.CandidateRows(gctx)
		if err != nil {
			return &LoadError{What: "candidates", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		votes, err = s.votes.VoteRows(gctx)
		if err != nil {
			return &LoadError{What: "votes", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compute(elections, candidates, votes), nil
}

// Election tallies a single election if audience may see it.
func (s *Service) Election(ctx context.Context, audience election.Audience, id string) (*ElectionResult, error) {
	results, err := s.Results(ctx, audience)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].ID == id {
			return &results[i], nil
		}
	}
	return nil, election.ErrNotFound
}
