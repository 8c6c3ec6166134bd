package api

import (
	"net/http"

	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
)

type candidateResultView struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type officeResultView struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	TotalVotes int                   `json:"total_votes"`
	Results    []candidateResultView `json:"results"`
}

type electionResultView struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Status  election.Status    `json:"status"`
	Offices []officeResultView `json:"positions"`
}

func presentResult(res tally.ElectionResult) electionResultView {
	view := electionResultView{
		ID:      res.ID,
		Title:   res.Title,
		Status:  res.Status,
		Offices: make([]officeResultView, 0, len(res.Offices)),
	}
	for _, o := range res.Offices {
		ov := officeResultView{
			ID:         o.ID,
			Title:      o.Title,
			TotalVotes: o.TotalVotes,
			Results:    make([]candidateResultView, 0, len(o.Results)),
		}
		for _, c := range o.Results {
			ov.Results = append(ov.Results, candidateResultView{
				ID:         c.ID,
				FullName:   c.FullName,
				VoteCount:  c.VoteCount,
				Percentage: tally.Percentage(c.VoteCount, o.TotalVotes),
			})
		}
		view.Offices = append(view.Offices, ov)
	}
	return view
}

func (h *Handler) writeResults(w http.ResponseWriter, r *http.Request, audience election.Audience) {
	results, err := h.tallySvc.Results(r.Context(), audience)
	if err != nil {
		errorResponse(w, err)
		return
	}
	views := make([]electionResultView, 0, len(results))
	for _, res := range results {
		views = append(views, presentResult(res))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) writeElectionResult(w http.ResponseWriter, r *http.Request, audience election.Audience) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	res, err := h.tallySvc.Election(r.Context(), audience, id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentResult(*res))
}

// @Summary     Results of closed elections
// @Tags        results
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   electionResultView
// @Failure     502  {object}  map[string]string  "storage failure"
// @Router      /api/v1/results [get]
func (h *Handler) handleVoterResults(w http.ResponseWriter, r *http.Request) {
	h.writeResults(w, r, election.AudienceVoter)
}

// @Summary     Result of one closed election
// @Tags        results
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  electionResultView
// @Failure     404  {object}  map[string]string  "not found or not closed"
// @Router      /api/v1/results/{id} [get]
func (h *Handler) handleVoterElectionResult(w http.ResponseWriter, r *http.Request) {
	h.writeElectionResult(w, r, election.AudienceVoter)
}

// @Summary     Live results of active and closed elections
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   electionResultView
// @Failure     502  {object}  map[string]string  "storage failure"
// @Router      /api/v1/admin/results [get]
func (h *Handler) handleAdminResults(w http.ResponseWriter, r *http.Request) {
	h.writeResults(w, r, election.AudienceAdmin)
}

// @Summary     Live result of one election
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  electionResultView
// @Failure     404  {object}  map[string]string  "not found or draft"
// @Router      /api/v1/admin/results/{id} [get]
func (h *Handler) handleAdminElectionResult(w http.ResponseWriter, r *http.Request) {
	h.writeElectionResult(w, r, election.AudienceAdmin)
}
