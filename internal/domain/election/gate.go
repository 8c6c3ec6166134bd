package election

import "time"

// Phase is the read-time view of an election for voters. It is never persisted.
type Phase string

const (
	PhaseHidden   Phase = "hidden"
	PhaseOpen     Phase = "open"
	PhaseUpcoming Phase = "upcoming"
	PhaseClosed   Phase = "closed"
)

// Classify places e relative to now. An active election whose end date has
// passed reads as closed even though its stored status still says active.
func Classify(e Election, now time.Time) Phase {
	switch {
	case e.Status == StatusDraft:
		return PhaseHidden
	case e.Status == StatusActive && !now.Before(e.StartDate) && !now.After(e.EndDate):
		return PhaseOpen
	case e.Status == StatusActive && now.Before(e.StartDate):
		return PhaseUpcoming
	case e.Status == StatusClosed || now.After(e.EndDate):
		return PhaseClosed
	}
	return PhaseHidden
}

type Categorized struct {
	Open     []Election `json:"active"`
	Upcoming []Election `json:"upcoming"`
	Closed   []Election `json:"closed"`
}

// Categorize splits elections for the voter home page, preserving input order.
func Categorize(elections []Election, now time.Time) Categorized {
	c := Categorized{
		Open:     []Election{},
		Upcoming: []Election{},
		Closed:   []Election{},
	}
	for _, e := range elections {
		switch Classify(e, now) {
		case PhaseOpen:
			c.Open = append(c.Open, e)
		case PhaseUpcoming:
			c.Upcoming = append(c.Upcoming, e)
		case PhaseClosed:
			c.Closed = append(c.Closed, e)
		}
	}
	return c
}

// Audience decides which stored statuses are tally-eligible.
type Audience string

const (
	AudienceVoter Audience = "voter"
	AudienceAdmin Audience = "admin"
)

func (a Audience) Statuses() []Status {
	if a == AudienceAdmin {
		return []Status{StatusActive, StatusClosed}
	}
	return []Status{StatusClosed}
}

func (a Audience) Eligible(s Status) bool {
	for _, st := range a.Statuses() {
		if st == s {
			return true
		}
	}
	return false
}
