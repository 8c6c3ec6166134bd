package api

import (
	"net/http"

	"github.com/DiegxRG/E-Vote/internal/domain/voter"
	"github.com/DiegxRG/E-Vote/internal/platform/apperr"
)

type authRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	User  *voter.Profile `json:"user"`
	Token string         `json:"token"`
}

type verifyIdentityRequest struct {
	DNI string `json:"dni" validate:"required,len=8,numeric"`
}

type identityLookupResponse struct {
	DNI      string `json:"dni"`
	FullName string `json:"full_name"`
}

// @Summary     Register a voter account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     201      {object}  authResponse
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     409      {object}  map[string]string  "email taken"
// @Router      /api/v1/auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	p, err := h.voterSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}
	h.issueToken(w, http.StatusCreated, p)
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     200      {object}  authResponse
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Router      /api/v1/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	p, err := h.voterSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}
	h.issueToken(w, http.StatusOK, p)
}

func (h *Handler) issueToken(w http.ResponseWriter, status int, p *voter.Profile) {
	token, err := h.jwtMgr.Generate(p.ID, p.Role, h.tokenTTL)
	if err != nil {
		errorResponse(w, apperr.Internal("token_error", "could not issue token", err))
		return
	}
	writeJSON(w, status, authResponse{User: p, Token: token})
}

// @Summary     Log out
// @Description Drops every unsubmitted ballot the caller still holds.
// @Tags        auth
// @Security    BearerAuth
// @Success     204
// @Router      /api/v1/auth/logout [post]
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.ballotSvc.EndSession(sessionFrom(r).UserID)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Current voter profile
// @Tags        auth
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  voter.Profile
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.voterSvc.Get(r.Context(), sessionFrom(r).UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Summary     Look up a national id in the registry
// @Tags        identity
// @Security    BearerAuth
// @Produce     json
// @Param       dni  query     string  true  "8-digit national id"
// @Success     200  {object}  identityLookupResponse
// @Failure     400  {object}  map[string]string  "malformed id"
// @Failure     404  {object}  map[string]string  "not in registry"
// @Router      /api/v1/identity/lookup [get]
func (h *Handler) handleIdentityLookup(w http.ResponseWriter, r *http.Request) {
	dni := r.URL.Query().Get("dni")
	name, err := h.voterSvc.Lookup(r.Context(), dni)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identityLookupResponse{DNI: dni, FullName: name})
}

// @Summary     Verify the caller's identity
// @Tags        identity
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      verifyIdentityRequest  true  "National id"
// @Success     200      {object}  voter.Profile
// @Failure     400      {object}  map[string]string  "malformed id"
// @Failure     404      {object}  map[string]string  "not in registry"
// @Failure     409      {object}  map[string]string  "id already linked or already verified"
// @Router      /api/v1/identity/verify [post]
func (h *Handler) handleIdentityVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyIdentityRequest
	if err := decodeBody(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	p, err := h.voterSvc.Verify(r.Context(), sessionFrom(r).UserID, req.DNI)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
