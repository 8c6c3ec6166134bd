package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
	"github.com/DiegxRG/E-Vote/internal/domain/voter"
)

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"already voted", ballot.ErrAlreadyVoted, http.StatusConflict},
		{"not authenticated", ballot.ErrNotAuthenticated, http.StatusUnauthorized},
		{"no election", ballot.ErrNoElectionSelected, http.StatusBadRequest},
		{"wrapped invalid choice", fmt.Errorf("%w: office x", ballot.ErrInvalidChoice), http.StatusBadRequest},
		{"not open", ballot.ErrElectionNotOpen, http.StatusBadRequest},
		{"no offices", ballot.ErrNoOffices, http.StatusBadRequest},
		{"unverified", ballot.ErrIdentityNotVerified, http.StatusForbidden},
		{"submission", &ballot.SubmissionError{Err: errors.New("connection reset")}, http.StatusBadGateway},
		{"load", &tally.LoadError{What: "votes", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"election missing", election.ErrNotFound, http.StatusNotFound},
		{"dni taken", voter.ErrNationalIDTaken, http.StatusConflict},
		{"missing credentials", voter.ErrCredentialsMissing, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapError(tc.err).StatusCode(); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMapErrorKeepsSubmissionMessage(t *testing.T) {
	appErr := mapError(&ballot.SubmissionError{Err: errors.New("connection reset")})
	if appErr.Message != "submission failed: connection reset" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}
