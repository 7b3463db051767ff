package runlog

import (
	"context"
	"time"

	"github.com/harborline/sso-migrate/internal/domain"
)

// Mode says which orchestrator produced a record.
type Mode string

const (
	ModeMigrate Mode = "migrate"
	ModeRestore Mode = "restore"
)

// Record is the persisted outcome of one team's run. Counters mirror the
// orchestrator results; unused counters stay zero for the other mode.
type Record struct {
	ID    string
	RunID string
	Mode  Mode

	TeamID domain.TeamID

	MembersFound          int
	MembersMarkedObsolete int
	MembersDeleted        int
	InvitationsSent       int
	SkippedMembers        int
	MembersRestored       int

	BackupPath string
	Errors     []string

	CreatedAt time.Time
}

// Recorder keeps an audit trail of past runs. Recording is best-effort from
// the driver's point of view; it never influences orchestration outcomes.
type Recorder interface {
	Record(ctx context.Context, rec Record) error

	// ListByRun returns all records of one run in insertion order.
	ListByRun(ctx context.Context, runID string) ([]Record, error)
}
