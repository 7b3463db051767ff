package snapshot

import (
	"context"

	"github.com/harborline/sso-migrate/internal/domain"
)

// Store persists point-in-time member lists so destructive migrations have
// something to restore from.
type Store interface {
	// Save writes the full member sequence as one document to a location
	// derived from the team id and the current time, and returns that
	// location. Save never overwrites an existing snapshot.
	Save(ctx context.Context, teamID domain.TeamID, members []domain.Member) (string, error)

	// Load reads back a previously saved snapshot. There is no partial
	// recovery: a snapshot that does not parse fails the whole load.
	Load(ctx context.Context, path string) ([]domain.Member, error)
}
