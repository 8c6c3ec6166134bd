package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
)

type createCandidateRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
	PartyID  *string `json:"party_id" validate:"omitempty,uuid"`
	OfficeID string  `json:"position_id" validate:"required,uuid"`
}

// updateCandidateRequest cannot move a candidate to another office.
type updateCandidateRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=1"`
	PhotoURL   *string `json:"photo_url" validate:"omitempty,url"`
	PartyID    *string `json:"party_id" validate:"omitempty,uuid"`
	ClearPhoto bool    `json:"clear_photo"`
	ClearParty bool    `json:"clear_party"`
}

type partyRequest struct {
	Name        string  `json:"name" validate:"required"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	Description *string `json:"description"`
}

type profileRequest struct {
	PlanBody  string   `json:"plan_body"`
	ImageURLs []string `json:"image_urls" validate:"max=3,dive,url"`
}

// @Summary     Candidates of visible elections
// @Tags        candidates
// @Security    BearerAuth
// @Produce     json
// @Param       election_id  query     string  false  "Restrict to one election"
// @Success     200          {array}   candidate.Detail
// @Router      /api/v1/candidates [get]
func (h *Handler) handleLandingCandidates(w http.ResponseWriter, r *http.Request) {
	electionID := r.URL.Query().Get("election_id")
	if electionID != "" {
		if _, err := uuid.Parse(electionID); err != nil {
			badID(w, err)
			return
		}
	}
	res, err := h.candidateSvc.Landing(r.Context(), electionID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Candidate government plan
// @Tags        candidates
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Candidate ID"
// @Success     200  {object}  candidate.Profile
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/candidates/{id}/profile [get]
func (h *Handler) handleGetCandidateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	p, err := h.candidateSvc.Profile(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Summary     List parties
// @Tags        candidates
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  candidate.Party
// @Router      /api/v1/parties [get]
func (h *Handler) handleListParties(w http.ResponseWriter, r *http.Request) {
	res, err := h.candidateSvc.Parties(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     List all candidates
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}  candidate.Detail
// @Router      /api/v1/admin/candidates [get]
func (h *Handler) handleAdminListCandidates(w http.ResponseWriter, r *http.Request) {
	res, err := h.candidateSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Create a candidate
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createCandidateRequest  true  "Candidate"
// @Success     201      {object}  candidate.Candidate
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     404      {object}  map[string]string  "office or party not found"
// @Router      /api/v1/admin/candidates [post]
func (h *Handler) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req createCandidateRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	c := &candidate.Candidate{
		FullName: req.FullName,
		PhotoURL: req.PhotoURL,
		PartyID:  req.PartyID,
		OfficeID: req.OfficeID,
	}
	if err := h.candidateSvc.Create(r.Context(), c); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// @Summary     Update a candidate
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string                  true  "Candidate ID"
// @Param       request  body  updateCandidateRequest  true  "Fields to change"
// @Success     204
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/admin/candidates/{id} [patch]
func (h *Handler) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req updateCandidateRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	input := candidate.UpdateInput{FullName: req.FullName, PhotoURL: req.PhotoURL, PartyID: req.PartyID}
	none := ""
	if req.ClearPhoto {
		input.PhotoURL = &none
	}
	if req.ClearParty {
		input.PartyID = &none
	}
	if err := h.candidateSvc.Update(r.Context(), id, input); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete a candidate
// @Description Votes already cast for the candidate are kept with no candidate.
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  string  true  "Candidate ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/candidates/{id} [delete]
func (h *Handler) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	if err := h.candidateSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Create or replace a candidate's government plan
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      string          true  "Candidate ID"
// @Param       request  body      profileRequest  true  "Plan and up to three images"
// @Success     200      {object}  candidate.Profile
// @Failure     400      {object}  map[string]string  "too many images"
// @Failure     404      {object}  map[string]string  "candidate not found"
// @Router      /api/v1/admin/candidates/{id}/profile [put]
func (h *Handler) handleSaveCandidateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	p := &candidate.Profile{CandidateID: id, PlanBody: req.PlanBody, ImageURLs: req.ImageURLs}
	if err := h.candidateSvc.SaveProfile(r.Context(), p); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Summary     Create a party
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      partyRequest  true  "Party"
// @Success     201      {object}  candidate.Party
// @Router      /api/v1/admin/parties [post]
func (h *Handler) handleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req partyRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	p := &candidate.Party{Name: req.Name, LogoURL: req.LogoURL, Description: req.Description}
	if err := h.candidateSvc.CreateParty(r.Context(), p); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// @Summary     Replace a party
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string        true  "Party ID"
// @Param       request  body  partyRequest  true  "Party"
// @Success     204
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/admin/parties/{id} [put]
func (h *Handler) handleUpdateParty(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req partyRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	p := candidate.Party{Name: req.Name, LogoURL: req.LogoURL, Description: req.Description}
	if err := h.candidateSvc.UpdateParty(r.Context(), id, p); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete a party
// @Description Its candidates become independents.
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  string  true  "Party ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/parties/{id} [delete]
func (h *Handler) handleDeleteParty(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	if err := h.candidateSvc.DeleteParty(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
