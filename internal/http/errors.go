package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
	"github.com/DiegxRG/E-Vote/internal/domain/voter"
	"github.com/DiegxRG/E-Vote/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "code", appErr.Code, "err", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr)
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var submitErr *ballot.SubmissionError
	if errors.As(err, &submitErr) {
		return apperr.BadGateway("submission_failed", submitErr.Error(), err)
	}
	var loadErr *tally.LoadError
	if errors.As(err, &loadErr) {
		return apperr.BadGateway("load_failed", loadErr.Error(), err)
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)

	case errors.Is(err, ballot.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", err.Error(), err)
	case errors.Is(err, ballot.ErrNotAuthenticated):
		return apperr.Unauthorized("not_authenticated", err.Error(), err)
	case errors.Is(err, ballot.ErrNoElectionSelected):
		return apperr.BadRequest("no_election_selected", err.Error(), err)
	case errors.Is(err, ballot.ErrInvalidChoice):
		return apperr.BadRequest("invalid_choice", err.Error(), err)
	case errors.Is(err, ballot.ErrNoOffices):
		return apperr.BadRequest("no_offices", err.Error(), err)
	case errors.Is(err, ballot.ErrElectionNotOpen):
		return apperr.BadRequest("election_not_open", err.Error(), err)
	case errors.Is(err, ballot.ErrIdentityNotVerified):
		return apperr.Forbidden("identity_not_verified", err.Error(), err)

	case errors.Is(err, election.ErrNotFound):
		return apperr.NotFound("election_not_found", err.Error(), err)
	case errors.Is(err, election.ErrOfficeNotFound):
		return apperr.NotFound("position_not_found", err.Error(), err)
	case errors.Is(err, election.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", err.Error(), err)
	case errors.Is(err, election.ErrInvalidDates):
		return apperr.BadRequest("invalid_dates", err.Error(), err)
	case errors.Is(err, election.ErrTitleRequired):
		return apperr.BadRequest("invalid_input", err.Error(), err)

	case errors.Is(err, candidate.ErrNotFound):
		return apperr.NotFound("candidate_not_found", err.Error(), err)
	case errors.Is(err, candidate.ErrPartyNotFound):
		return apperr.NotFound("party_not_found", err.Error(), err)
	case errors.Is(err, candidate.ErrProfileNotFound):
		return apperr.NotFound("profile_not_found", err.Error(), err)
	case errors.Is(err, candidate.ErrNameRequired),
		errors.Is(err, candidate.ErrOfficeRequired),
		errors.Is(err, candidate.ErrTooManyImages):
		return apperr.BadRequest("invalid_input", err.Error(), err)

	case errors.Is(err, voter.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, voter.ErrCredentialsMissing):
		return apperr.BadRequest("invalid_input", err.Error(), err)
	case errors.Is(err, voter.ErrEmailTaken):
		return apperr.Conflict("email_taken", "email already taken", err)
	case errors.Is(err, voter.ErrNotFound):
		return apperr.NotFound("voter_not_found", err.Error(), err)
	case errors.Is(err, voter.ErrInvalidRole):
		return apperr.BadRequest("invalid_role", err.Error(), err)
	case errors.Is(err, voter.ErrInvalidNationalID):
		return apperr.BadRequest("invalid_dni", err.Error(), err)
	case errors.Is(err, voter.ErrNotInRegistry):
		return apperr.NotFound("dni_not_found", err.Error(), err)
	case errors.Is(err, voter.ErrNationalIDTaken):
		return apperr.Conflict("dni_taken", err.Error(), err)
	case errors.Is(err, voter.ErrAlreadyVerified):
		return apperr.Conflict("already_verified", err.Error(), err)

	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
