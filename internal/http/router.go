package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
	"github.com/DiegxRG/E-Vote/internal/domain/voter"
	"github.com/DiegxRG/E-Vote/internal/platform/apperr"
	jwtpkg "github.com/DiegxRG/E-Vote/internal/platform/jwt"
	"github.com/DiegxRG/E-Vote/internal/platform/session"
	"github.com/DiegxRG/E-Vote/internal/worker"
)

// Deps is everything the router needs. DB may be nil when running on the
// in-memory store; /ready then reports the store as unavailable.
type Deps struct {
	Voters     *voter.Service
	Elections  *election.Service
	Candidates *candidate.Service
	Ballots    *ballot.Service
	Tally      *tally.Service
	JWT        *jwtpkg.Manager
	TokenTTL   time.Duration
	// VotesPerMinute bounds ballot submissions per client.
	VotesPerMinute int
	BallotEvents   chan<- worker.BallotEvent
	DB             *sql.DB
}

type Handler struct {
	voterSvc     *voter.Service
	electionSvc  *election.Service
	candidateSvc *candidate.Service
	ballotSvc    *ballot.Service
	tallySvc     *tally.Service
	jwtMgr       *jwtpkg.Manager
	tokenTTL     time.Duration
	ballotCh     chan<- worker.BallotEvent
	db           *sql.DB
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		voterSvc:     d.Voters,
		electionSvc:  d.Elections,
		candidateSvc: d.Candidates,
		ballotSvc:    d.Ballots,
		tallySvc:     d.Tally,
		jwtMgr:       d.JWT,
		tokenTTL:     d.TokenTTL,
		ballotCh:     d.BallotEvents,
		db:           d.DB,
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = 24 * time.Hour
	}
	votesPerMinute := d.VotesPerMinute
	if votesPerMinute <= 0 {
		votesPerMinute = 10
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(d.JWT))

			r.Post("/auth/logout", h.handleLogout)
			r.Get("/me", h.handleMe)
			r.Get("/identity/lookup", h.handleIdentityLookup)
			r.Post("/identity/verify", h.handleIdentityVerify)

			r.Get("/elections", h.handleListVoterElections)
			r.Get("/elections/{id}", h.handleGetVoterElection)
			r.Get("/elections/{id}/ballot-sheet", h.handleBallotSheet)
			r.Get("/elections/{id}/ballot", h.handleBallotSummary)
			r.Put("/elections/{id}/ballot/{officeID}", h.handleRecordChoice)
			r.Delete("/elections/{id}/ballot", h.handleDiscardBallot)
			r.With(RateLimitVotes(rate.Every(time.Minute/time.Duration(votesPerMinute)), 3)).
				Post("/elections/{id}/ballot/submit", h.handleSubmitBallot)

			r.Get("/results", h.handleVoterResults)
			r.Get("/results/{id}", h.handleVoterElectionResult)

			r.Get("/candidates", h.handleLandingCandidates)
			r.Get("/candidates/{id}/profile", h.handleGetCandidateProfile)
			r.Get("/parties", h.handleListParties)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireRole(session.RoleAdmin))

				r.Get("/elections", h.handleAdminListElections)
				r.Post("/elections", h.handleCreateElection)
				r.Get("/elections/{id}", h.handleAdminGetElection)
				r.Patch("/elections/{id}", h.handleUpdateElection)
				r.Delete("/elections/{id}", h.handleDeleteElection)
				r.Post("/elections/{id}/close", h.handleCloseElection)

				r.Get("/elections/{id}/offices", h.handleListOffices)
				r.Post("/elections/{id}/offices", h.handleCreateOffice)
				r.Patch("/offices/{id}", h.handleRenameOffice)
				r.Delete("/offices/{id}", h.handleDeleteOffice)

				r.Get("/candidates", h.handleAdminListCandidates)
				r.Post("/candidates", h.handleCreateCandidate)
				r.Patch("/candidates/{id}", h.handleUpdateCandidate)
				r.Delete("/candidates/{id}", h.handleDeleteCandidate)
				r.Put("/candidates/{id}/profile", h.handleSaveCandidateProfile)

				r.Post("/parties", h.handleCreateParty)
				r.Put("/parties/{id}", h.handleUpdateParty)
				r.Delete("/parties/{id}", h.handleDeleteParty)

				r.Get("/results", h.handleAdminResults)
				r.Get("/results/{id}", h.handleAdminElectionResult)

				r.Get("/voters", h.handleListVoters)
				r.Patch("/voters/{id}/role", h.handleUpdateVoterRole)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func badID(w http.ResponseWriter, err error) {
	errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
}
