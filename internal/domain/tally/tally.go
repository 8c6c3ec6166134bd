// Package tally turns flat election, candidate and vote rows into ranked
// per-office results. Compute performs no I/O.
package tally

import (
	"sort"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

const (
	BlankID    = "blank"
	BlankLabel = "Blank/Null Votes"
)

// OfficeRef is the office side of a candidate join row.
type OfficeRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ElectionID string `json:"election_id"`
}

type CandidateRow struct {
	ID       string    `json:"id"`
	FullName string    `json:"full_name"`
	Office   OfficeRef `json:"office"`
}

// VoteRow is a cast vote; a nil CandidateID is a blank vote.
type VoteRow struct {
	ID          string  `json:"id"`
	ElectionID  string  `json:"election_id"`
	OfficeID    string  `json:"position_id"`
	CandidateID *string `json:"candidate_id"`
}

type CandidateResult struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	VoteCount int    `json:"vote_count"`
}

type OfficeResult struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	TotalVotes int               `json:"total_votes"`
	Results    []CandidateResult `json:"results"`
}

type ElectionResult struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Status  election.Status `json:"status"`
	Offices []OfficeResult  `json:"positions"`
}

// Compute tallies every election in elections.
//
// Offices are discovered through the candidates' office join, so an office
// without candidates does not appear even if blank votes reference it.
// Candidate counts match on candidate id alone. Entries are ordered by count,
// descending, and equal counts keep their encounter order.
func Compute(elections []election.Election, candidates []CandidateRow, votes []VoteRow) []ElectionResult {
	byCandidate := make(map[string]int)
	blankByOffice := make(map[string]int)
	for _, v := range votes {
		if v.CandidateID == nil {
			blankByOffice[v.OfficeID]++
			continue
		}
		byCandidate[*v.CandidateID]++
	}

	out := make([]ElectionResult, 0, len(elections))
	for _, e := range elections {
		offices := officesOf(e.ID, candidates)
		res := ElectionResult{
			ID:      e.ID,
			Title:   e.Title,
			Status:  e.Status,
			Offices: make([]OfficeResult, 0, len(offices)),
		}
		for _, o := range offices {
			res.Offices = append(res.Offices, tallyOffice(o, candidates, byCandidate, blankByOffice[o.ID]))
		}
		out = append(out, res)
	}
	return out
}

func officesOf(electionID string, candidates []CandidateRow) []OfficeRef {
	seen := make(map[string]bool)
	var offices []OfficeRef
	for _, c := range candidates {
		if c.Office.ElectionID != electionID || seen[c.Office.ID] {
			continue
		}
		seen[c.Office.ID] = true
		offices = append(offices, c.Office)
	}
	return offices
}

func tallyOffice(o OfficeRef, candidates []CandidateRow, byCandidate map[string]int, blank int) OfficeResult {
	results := []CandidateResult{}
	for _, c := range candidates {
		if c.Office.ID != o.ID {
			continue
		}
		results = append(results, CandidateResult{
			ID:        c.ID,
			FullName:  c.FullName,
			VoteCount: byCandidate[c.ID],
		})
	}
	if blank > 0 {
		results = append(results, CandidateResult{ID: BlankID, FullName: BlankLabel, VoteCount: blank})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})

	total := 0
	for _, r := range results {
		total += r.VoteCount
	}

	return OfficeResult{
		ID:         o.ID,
		Title:      o.Title,
		TotalVotes: total,
		Results:    results,
	}
}

// Percentage is count as a share of total, or zero when nothing was cast.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) * 100.0 / float64(total)
}
