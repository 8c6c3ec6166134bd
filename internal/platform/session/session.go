// Package session carries the authenticated caster through request contexts.
package session

import "context"

const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

type Session struct {
	UserID string
	Role   string
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the zero Session when the request is anonymous.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
