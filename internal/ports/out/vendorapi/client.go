package vendorapi

import (
	"context"

	"github.com/harborline/sso-migrate/internal/domain"
)

// Result is the outcome of one vendor API call that produced an HTTP
// response. Ordinary API errors (4xx/5xx) travel through Result so callers
// interpret them by inspecting Status; a Go error from a Client method means
// the request never produced a response at all (connectivity fault).
type Result struct {
	Status     int
	StatusText string
}

// OK reports whether the vendor accepted the call (2xx or 3xx).
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 400
}

// Client binds the four vendor operations a migration needs. Every call
// carries the per-team API key; no credential outlives a single call.
type Client interface {
	// ListMembers fetches the team's current member list. On a non-2xx
	// response the member slice is empty and Result carries the status.
	ListMembers(ctx context.Context, team domain.TeamConfig) ([]domain.Member, Result, error)

	InviteMember(ctx context.Context, req InviteRequest, apiKey string) (Result, error)
	UpdateMember(ctx context.Context, req UpdateRequest, apiKey string) (Result, error)
	DeleteMember(ctx context.Context, req DeleteRequest, apiKey string) (Result, error)
}
