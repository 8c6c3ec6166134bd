package tally

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

type fakeElections struct {
	all []election.Election
	err error
}

func (f *fakeElections) List(ctx context.Context, filter election.ListFilter) ([]election.Election, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []election.Election
	for _, e := range f.all {
		for _, s := range filter.Statuses {
			if e.Status == s {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeRows struct {
	candidates []CandidateRow
	votes      []VoteRow
	voteErr    error
}

func (f *fakeRows) CandidateRows(ctx context.Context) ([]CandidateRow, error) {
	return f.candidates, nil
}

func (f *fakeRows) VoteRows(ctx context.Context) ([]VoteRow, error) {
	if f.voteErr != nil {
		return nil, f.voteErr
	}
	return f.votes, nil
}

func seededSource() (*fakeElections, *fakeRows) {
	elections := &fakeElections{all: []election.Election{
		{ID: "draft", Status: election.StatusDraft},
		{ID: "live", Status: election.StatusActive},
		{ID: "done", Status: election.StatusClosed},
	}}
	rows := &fakeRows{
		candidates: []CandidateRow{
			{ID: "c1", Office: OfficeRef{ID: "o-live", ElectionID: "live"}},
			{ID: "c2", Office: OfficeRef{ID: "o-done", ElectionID: "done"}},
		},
		votes: []VoteRow{
			{ID: "v1", ElectionID: "done", OfficeID: "o-done", CandidateID: strPtr("c2")},
			{ID: "v2", ElectionID: "live", OfficeID: "o-live", CandidateID: nil},
		},
	}
	return elections, rows
}

func TestResultsByAudience(t *testing.T) {
	elections, rows := seededSource()
	svc := NewService(elections, rows, rows)
	ctx := context.Background()

	voter, err := svc.Results(ctx, election.AudienceVoter)
	require.NoError(t, err)
	require.Len(t, voter, 1)
	assert.Equal(t, "done", voter[0].ID)

	admin, err := svc.Results(ctx, election.AudienceAdmin)
	require.NoError(t, err)
	require.Len(t, admin, 2)

	one, err := svc.Election(ctx, election.AudienceAdmin, "live")
	require.NoError(t, err)
	require.Len(t, one.Offices, 1)
	assert.Equal(t, 1, one.Offices[0].TotalVotes)

	_, err = svc.Election(ctx, election.AudienceVoter, "live")
	assert.ErrorIs(t, err, election.ErrNotFound)
}

func TestResultsWrapsReadFailures(t *testing.T) {
	elections, rows := seededSource()
	cause := errors.New("connection reset")
	rows.voteErr = cause
	svc := NewService(elections, rows, rows)

	_, err := svc.Results(context.Background(), election.AudienceVoter)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "votes", loadErr.What)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
