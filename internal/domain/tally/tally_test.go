package tally

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

func strPtr(s string) *string { return &s }

func castVotes(officeID string, candidateID *string, n int, electionID string) []VoteRow {
	out := make([]VoteRow, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, VoteRow{
			ID:          fmt.Sprintf("%s-%v-%d", officeID, candidateID != nil, i),
			ElectionID:  electionID,
			OfficeID:    officeID,
			CandidateID: candidateID,
		})
	}
	return out
}

func TestComputeAdminFixture(t *testing.T) {
	elections := []election.Election{{ID: "e1", Title: "Generales 2026", Status: election.StatusClosed}}
	pres := OfficeRef{ID: "pres", Title: "Presidente", ElectionID: "e1"}
	candidates := []CandidateRow{
		{ID: "C", FullName: "Candidate C", Office: pres},
		{ID: "A", FullName: "Candidate A", Office: pres},
		{ID: "B", FullName: "Candidate B", Office: pres},
	}
	var votes []VoteRow
	votes = append(votes, castVotes("pres", strPtr("A"), 8234, "e1")...)
	votes = append(votes, castVotes("pres", strPtr("B"), 6450, "e1")...)
	votes = append(votes, castVotes("pres", strPtr("C"), 3550, "e1")...)

	res := Compute(elections, candidates, votes)
	require.Len(t, res, 1)
	require.Len(t, res[0].Offices, 1)

	office := res[0].Offices[0]
	assert.Equal(t, "Presidente", office.Title)
	assert.Equal(t, 18234, office.TotalVotes)
	assert.Equal(t, []CandidateResult{
		{ID: "A", FullName: "Candidate A", VoteCount: 8234},
		{ID: "B", FullName: "Candidate B", VoteCount: 6450},
		{ID: "C", FullName: "Candidate C", VoteCount: 3550},
	}, office.Results)
	assert.Equal(t, election.StatusClosed, res[0].Status)
}

func TestComputeBlankRanksAboveZeroTies(t *testing.T) {
	elections := []election.Election{{ID: "e1", Title: "Referendum"}}
	office := OfficeRef{ID: "o1", Title: "Alcalde", ElectionID: "e1"}
	candidates := []CandidateRow{
		{ID: "X", FullName: "X", Office: office},
		{ID: "Y", FullName: "Y", Office: office},
	}
	votes := castVotes("o1", nil, 5, "e1")

	res := Compute(elections, candidates, votes)
	require.Len(t, res[0].Offices, 1)
	got := res[0].Offices[0]
	assert.Equal(t, []CandidateResult{
		{ID: BlankID, FullName: BlankLabel, VoteCount: 5},
		{ID: "X", FullName: "X", VoteCount: 0},
		{ID: "Y", FullName: "Y", VoteCount: 0},
	}, got.Results)
	assert.Equal(t, 5, got.TotalVotes)
}

func TestComputeEmptyInputs(t *testing.T) {
	res := Compute(nil, nil, nil)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	res = Compute([]election.Election{{ID: "e1"}}, nil, nil)
	require.Len(t, res, 1)
	assert.Empty(t, res[0].Offices)
}

func TestComputeHidesOfficesWithoutCandidates(t *testing.T) {
	elections := []election.Election{{ID: "e1"}}
	staffed := OfficeRef{ID: "o1", Title: "Staffed", ElectionID: "e1"}
	candidates := []CandidateRow{{ID: "c1", FullName: "Solo", Office: staffed}}
	votes := castVotes("orphan", nil, 3, "e1")

	res := Compute(elections, candidates, votes)
	require.Len(t, res[0].Offices, 1)
	assert.Equal(t, "o1", res[0].Offices[0].ID)
	assert.Equal(t, 0, res[0].Offices[0].TotalVotes)
}

func TestComputeGroupsOfficesPerElection(t *testing.T) {
	elections := []election.Election{{ID: "e1"}, {ID: "e2"}}
	o1 := OfficeRef{ID: "o1", Title: "Presidente", ElectionID: "e1"}
	o2 := OfficeRef{ID: "o2", Title: "Congreso", ElectionID: "e1"}
	o3 := OfficeRef{ID: "o3", Title: "Alcalde", ElectionID: "e2"}
	candidates := []CandidateRow{
		{ID: "c1", Office: o2},
		{ID: "c2", Office: o1},
		{ID: "c3", Office: o3},
		{ID: "c4", Office: o2},
	}

	res := Compute(elections, candidates, nil)
	require.Len(t, res, 2)
	require.Len(t, res[0].Offices, 2)
	assert.Equal(t, "o2", res[0].Offices[0].ID, "offices keep first-encounter order")
	assert.Equal(t, "o1", res[0].Offices[1].ID)
	require.Len(t, res[1].Offices, 1)
	assert.Equal(t, "o3", res[1].Offices[0].ID)
}

// Sum of entries equals the number of votes cast for each office, and blank
// appears exactly when null votes exist.
func TestComputeTotalsAndBlankProperties(t *testing.T) {
	elections := []election.Election{{ID: "e1"}}
	o1 := OfficeRef{ID: "o1", ElectionID: "e1"}
	o2 := OfficeRef{ID: "o2", ElectionID: "e1"}
	candidates := []CandidateRow{
		{ID: "a", Office: o1}, {ID: "b", Office: o1},
		{ID: "c", Office: o2}, {ID: "d", Office: o2},
	}
	var votes []VoteRow
	votes = append(votes, castVotes("o1", strPtr("a"), 3, "e1")...)
	votes = append(votes, castVotes("o1", strPtr("b"), 7, "e1")...)
	votes = append(votes, castVotes("o1", nil, 2, "e1")...)
	votes = append(votes, castVotes("o2", strPtr("c"), 4, "e1")...)
	votes = append(votes, castVotes("o2", strPtr("d"), 4, "e1")...)

	perOffice := map[string]int{}
	blanks := map[string]int{}
	for _, v := range votes {
		perOffice[v.OfficeID]++
		if v.CandidateID == nil {
			blanks[v.OfficeID]++
		}
	}

	res := Compute(elections, candidates, votes)
	for _, o := range res[0].Offices {
		assert.Equal(t, perOffice[o.ID], o.TotalVotes, "office %s", o.ID)

		blankEntries := 0
		for i, r := range o.Results {
			if r.ID == BlankID {
				blankEntries++
				assert.Equal(t, blanks[o.ID], r.VoteCount)
			}
			if i > 0 {
				assert.GreaterOrEqual(t, o.Results[i-1].VoteCount, r.VoteCount)
			}
		}
		if blanks[o.ID] > 0 {
			assert.Equal(t, 1, blankEntries)
		} else {
			assert.Zero(t, blankEntries)
		}
	}

	again := Compute(elections, candidates, votes)
	assert.Equal(t, res, again)
	assert.Equal(t, []string{"c", "d"}, []string{res[0].Offices[1].Results[0].ID, res[0].Offices[1].Results[1].ID})
}

func TestPercentage(t *testing.T) {
	assert.Zero(t, Percentage(5, 0))
	assert.InDelta(t, 25.0, Percentage(1, 4), 1e-9)
}
