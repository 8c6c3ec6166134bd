package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromErrorKeepsAppError(t *testing.T) {
	base := Conflict("already_voted", "already voted", nil)
	wrapped := fmt.Errorf("submit: %w", base)

	got := FromError(wrapped)
	if got != base {
		t.Fatalf("expected original app error, got %+v", got)
	}
	if got.StatusCode() != http.StatusConflict {
		t.Fatalf("expected 409, got %d", got.StatusCode())
	}
}

func TestFromErrorFallsBackToInternal(t *testing.T) {
	cause := errors.New("boom")
	got := FromError(cause)
	if got.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got.StatusCode())
	}
	if !errors.Is(got, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if FromError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestZeroValueStatus(t *testing.T) {
	var e *AppError
	if e.StatusCode() != http.StatusInternalServerError || e.Error() != "" {
		t.Fatalf("unexpected nil app error behaviour")
	}
	withFields := BadRequest("invalid_input", "invalid body", nil).WithFields(map[string]string{"title": "required"})
	if withFields.Fields["title"] != "required" {
		t.Fatalf("fields not attached")
	}
}
