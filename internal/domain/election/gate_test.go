package election

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day int, hour int) time.Time {
	return time.Date(2026, time.April, day, hour, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	base := Election{StartDate: at(10, 8), EndDate: at(10, 18)}

	cases := []struct {
		name   string
		status Status
		now    time.Time
		want   Phase
	}{
		{"draft is hidden", StatusDraft, at(10, 12), PhaseHidden},
		{"draft past end stays hidden", StatusDraft, at(11, 0), PhaseHidden},
		{"active inside window", StatusActive, at(10, 12), PhaseOpen},
		{"active at start instant", StatusActive, at(10, 8), PhaseOpen},
		{"active at end instant", StatusActive, at(10, 18), PhaseOpen},
		{"active before start", StatusActive, at(9, 12), PhaseUpcoming},
		{"active past end reads closed", StatusActive, at(10, 19), PhaseClosed},
		{"closed before start", StatusClosed, at(9, 0), PhaseClosed},
		{"closed inside window", StatusClosed, at(10, 12), PhaseClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := base
			e.Status = tc.status
			assert.Equal(t, tc.want, Classify(e, tc.now))
		})
	}
}

func TestCategorizeKeepsInputOrder(t *testing.T) {
	now := at(10, 12)
	elections := []Election{
		{ID: "past", Status: StatusActive, StartDate: at(1, 8), EndDate: at(1, 18)},
		{ID: "open-a", Status: StatusActive, StartDate: at(10, 8), EndDate: at(10, 18)},
		{ID: "draft", Status: StatusDraft, StartDate: at(10, 8), EndDate: at(10, 18)},
		{ID: "soon", Status: StatusActive, StartDate: at(12, 8), EndDate: at(12, 18)},
		{ID: "open-b", Status: StatusActive, StartDate: at(9, 8), EndDate: at(11, 18)},
		{ID: "done", Status: StatusClosed, StartDate: at(10, 8), EndDate: at(10, 18)},
	}

	c := Categorize(elections, now)
	assert.Equal(t, []string{"open-a", "open-b"}, ids(c.Open))
	assert.Equal(t, []string{"soon"}, ids(c.Upcoming))
	assert.Equal(t, []string{"past", "done"}, ids(c.Closed))
}

func TestCategorizeEmpty(t *testing.T) {
	c := Categorize(nil, at(1, 0))
	assert.Empty(t, c.Open)
	assert.Empty(t, c.Upcoming)
	assert.Empty(t, c.Closed)
	assert.NotNil(t, c.Open)
}

func TestAudienceEligibility(t *testing.T) {
	assert.True(t, AudienceVoter.Eligible(StatusClosed))
	assert.False(t, AudienceVoter.Eligible(StatusActive))
	assert.False(t, AudienceVoter.Eligible(StatusDraft))

	assert.True(t, AudienceAdmin.Eligible(StatusActive))
	assert.True(t, AudienceAdmin.Eligible(StatusClosed))
	assert.False(t, AudienceAdmin.Eligible(StatusDraft))
}

func ids(es []Election) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}
