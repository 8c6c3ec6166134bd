package api

import (
	"net/http"
	"time"

	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
)

type createElectionRequest struct {
	Title     string    `json:"title" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,oneof=draft active closed"`
}

type updateElectionRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    *string    `json:"status" validate:"omitempty,oneof=draft active closed"`
}

type officeRequest struct {
	Title string `json:"title" validate:"required"`
}

type electionView struct {
	Election *election.Election `json:"election"`
	Phase    election.Phase     `json:"phase"`
}

type ballotSheetOffice struct {
	election.Office
	Candidates []candidate.Detail `json:"candidates"`
}

type ballotSheetResponse struct {
	Election *election.Election  `json:"election"`
	Phase    election.Phase      `json:"phase"`
	Offices  []ballotSheetOffice `json:"positions"`
}

// @Summary     Elections visible to voters
// @Description Non-draft elections split into active, upcoming and closed at request time.
// @Tags        elections
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  election.Categorized
// @Router      /api/v1/elections [get]
func (h *Handler) handleListVoterElections(w http.ResponseWriter, r *http.Request) {
	res, err := h.electionSvc.ListForVoters(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// voterElection loads the election behind {id}, hiding drafts.
func (h *Handler) voterElection(w http.ResponseWriter, r *http.Request) (*election.Election, election.Phase, bool) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return nil, "", false
	}
	e, phase, err := h.electionSvc.Current(r.Context(), id)
	if err == nil && phase == election.PhaseHidden {
		err = election.ErrNotFound
	}
	if err != nil {
		errorResponse(w, err)
		return nil, "", false
	}
	return e, phase, true
}

// @Summary     Election with its current phase
// @Tags        elections
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  electionView
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/elections/{id} [get]
func (h *Handler) handleGetVoterElection(w http.ResponseWriter, r *http.Request) {
	e, phase, ok := h.voterElection(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, electionView{Election: e, Phase: phase})
}

// @Summary     Ballot sheet
// @Description Offices of the election, each with its candidates, parties and profiles.
// @Tags        elections
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  ballotSheetResponse
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/elections/{id}/ballot-sheet [get]
func (h *Handler) handleBallotSheet(w http.ResponseWriter, r *http.Request) {
	e, phase, ok := h.voterElection(w, r)
	if !ok {
		return
	}

	offices, err := h.electionSvc.Offices(r.Context(), e.ID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	candidates, err := h.candidateSvc.Landing(r.Context(), e.ID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	byOffice := make(map[string][]candidate.Detail, len(offices))
	for _, c := range candidates {
		byOffice[c.OfficeID] = append(byOffice[c.OfficeID], c)
	}
	sheet := ballotSheetResponse{Election: e, Phase: phase, Offices: make([]ballotSheetOffice, 0, len(offices))}
	for _, o := range offices {
		list := byOffice[o.ID]
		if list == nil {
			list = []candidate.Detail{}
		}
		sheet.Offices = append(sheet.Offices, ballotSheetOffice{Office: o, Candidates: list})
	}
	writeJSON(w, http.StatusOK, sheet)
}

// @Summary     List all elections
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   election.Election
// @Failure     403  {object}  map[string]string  "forbidden"
// @Router      /api/v1/admin/elections [get]
func (h *Handler) handleAdminListElections(w http.ResponseWriter, r *http.Request) {
	res, err := h.electionSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Get an election
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {object}  electionView
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/elections/{id} [get]
func (h *Handler) handleAdminGetElection(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	e, phase, err := h.electionSvc.Current(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, electionView{Election: e, Phase: phase})
}

// @Summary     Create an election
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createElectionRequest  true  "Election"
// @Success     201      {object}  election.Election
// @Failure     400      {object}  map[string]string  "invalid body or dates"
// @Router      /api/v1/admin/elections [post]
func (h *Handler) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req createElectionRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	e := &election.Election{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    election.Status(req.Status),
	}
	if err := h.electionSvc.Create(r.Context(), e); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// @Summary     Update an election
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string                 true  "Election ID"
// @Param       request  body  updateElectionRequest  true  "Fields to change"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid body or dates"
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/admin/elections/{id} [patch]
func (h *Handler) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req updateElectionRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	input := election.UpdateInput{Title: req.Title, StartDate: req.StartDate, EndDate: req.EndDate}
	if req.Status != nil {
		st := election.Status(*req.Status)
		input.Status = &st
	}
	if err := h.electionSvc.Update(r.Context(), id, input); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete an election
// @Description Removes the election with its offices, candidates and votes.
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  string  true  "Election ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/elections/{id} [delete]
func (h *Handler) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	if err := h.electionSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Close an election
// @Description Sets the status to closed regardless of dates. Closing twice succeeds.
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  string  true  "Election ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/elections/{id}/close [post]
func (h *Handler) handleCloseElection(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	if err := h.electionSvc.Close(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Offices of an election
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Election ID"
// @Success     200  {array}   election.Office
// @Router      /api/v1/admin/elections/{id}/offices [get]
func (h *Handler) handleListOffices(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	res, err := h.electionSvc.Offices(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Add an office to an election
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      string         true  "Election ID"
// @Param       request  body      officeRequest  true  "Office"
// @Success     201      {object}  election.Office
// @Failure     404      {object}  map[string]string  "election not found"
// @Router      /api/v1/admin/elections/{id}/offices [post]
func (h *Handler) handleCreateOffice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req officeRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	o, err := h.electionSvc.CreateOffice(r.Context(), id, req.Title)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// @Summary     Rename an office
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string         true  "Office ID"
// @Param       request  body  officeRequest  true  "Office"
// @Success     204
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/admin/offices/{id} [patch]
func (h *Handler) handleRenameOffice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req officeRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := h.electionSvc.RenameOffice(r.Context(), id, req.Title); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete an office
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  string  true  "Office ID"
// @Success     204
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/admin/offices/{id} [delete]
func (h *Handler) handleDeleteOffice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	if err := h.electionSvc.DeleteOffice(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
