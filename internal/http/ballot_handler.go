package api

import (
	"net/http"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/worker"
)

// recordChoiceRequest with a null or missing candidate_id marks the office blank.
type recordChoiceRequest struct {
	CandidateID *string `json:"candidate_id" validate:"omitempty,uuid"`
}

type ballotSummaryResponse struct {
	ElectionID string         `json:"election_id"`
	Choices    ballot.Choices `json:"choices"`
}

// @Summary     Choose a candidate for one office
// @Description Replaces any earlier choice for the office in the caller's unsubmitted ballot.
// @Tags        ballot
// @Security    BearerAuth
// @Accept      json
// @Param       id        path  string               true  "Election ID"
// @Param       officeID  path  string               true  "Office ID"
// @Param       request   body  recordChoiceRequest  true  "Choice; null candidate_id is blank"
// @Success     204
// @Failure     400       {object}  map[string]string  "invalid ids"
// @Router      /api/v1/elections/{id}/ballot/{officeID} [put]
func (h *Handler) handleRecordChoice(w http.ResponseWriter, r *http.Request) {
	electionID, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	officeID, err := parseIDParam(r, "officeID")
	if err != nil {
		badID(w, err)
		return
	}
	var req recordChoiceRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.ballotSvc.RecordChoice(sessionFrom(r), electionID, officeID, req.CandidateID); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Unsubmitted ballot
// @Description Offices absent from choices have not been touched; a null value is an explicit blank.
// @Tags        ballot
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  ballotSummaryResponse
// @Router      /api/v1/elections/{id}/ballot [get]
func (h *Handler) handleBallotSummary(w http.ResponseWriter, r *http.Request) {
	electionID, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ballotSummaryResponse{
		ElectionID: electionID,
		Choices:    h.ballotSvc.Summary(sessionFrom(r), electionID),
	})
}

// @Summary     Discard the unsubmitted ballot
// @Tags        ballot
// @Security    BearerAuth
// @Param       id   path  string  true  "Election ID"
// @Success     204
// @Router      /api/v1/elections/{id}/ballot [delete]
func (h *Handler) handleDiscardBallot(w http.ResponseWriter, r *http.Request) {
	electionID, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	h.ballotSvc.Discard(sessionFrom(r), electionID)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Submit the ballot
// @Description Stores one vote per office of the election; untouched offices are recorded blank.
// @Tags        ballot
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     201  {object}  ballot.Receipt
// @Failure     400  {object}  map[string]string  "election not open or invalid choice"
// @Failure     401  {object}  map[string]string  "not authenticated"
// @Failure     403  {object}  map[string]string  "identity not verified"
// @Failure     404  {object}  map[string]string  "election not found"
// @Failure     409  {object}  map[string]string  "already voted"
// @Failure     429  {object}  map[string]string  "rate limited"
// @Failure     502  {object}  map[string]string  "storage failure"
// @Router      /api/v1/elections/{id}/ballot/submit [post]
func (h *Handler) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	electionID, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}

	sess := sessionFrom(r)
	receipt, err := h.ballotSvc.Finalize(r.Context(), sess, electionID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.ballotCh <- worker.BallotEvent{
		ElectionID: receipt.ElectionID,
		UserID:     sess.UserID,
		Offices:    receipt.Offices,
		Blank:      receipt.Blank,
	}:
	default:
	}

	writeJSON(w, http.StatusCreated, receipt)
}
