package api

import (
	"net/http"
)

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=voter admin"`
}

// @Summary     List voter accounts
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   voter.Profile
// @Failure     403  {object}  map[string]string  "forbidden"
// @Router      /api/v1/admin/voters [get]
func (h *Handler) handleListVoters(w http.ResponseWriter, r *http.Request) {
	res, err := h.voterSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Change an account's role
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path  string             true  "Voter ID"
// @Param       request  body  updateRoleRequest  true  "New role"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid role"
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/admin/voters/{id}/role [patch]
func (h *Handler) handleUpdateVoterRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		badID(w, err)
		return
	}
	var req updateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	if err := h.voterSvc.UpdateRole(r.Context(), id, req.Role); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
