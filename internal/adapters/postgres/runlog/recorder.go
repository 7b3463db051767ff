package runlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/harborline/sso-migrate/internal/adapters/postgres"
	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/runlog"
)

// Recorder is a Postgres implementation of runlog.Recorder. It expects the
// run_logs table from Schema to exist.
type Recorder struct {
	pool *pgxpool.Pool
}

func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

var _ runlog.Recorder = (*Recorder)(nil)

// Schema creates the run_logs table. The tool applies it on startup; there
// is no migration history to manage for a single append-only table.
const Schema = `
CREATE TABLE IF NOT EXISTS run_logs (
	id uuid PRIMARY KEY,
	run_id uuid NOT NULL,
	mode text NOT NULL,
	team_id text NOT NULL,
	members_found int NOT NULL DEFAULT 0,
	members_marked_obsolete int NOT NULL DEFAULT 0,
	members_deleted int NOT NULL DEFAULT 0,
	invitations_sent int NOT NULL DEFAULT 0,
	skipped_members int NOT NULL DEFAULT 0,
	members_restored int NOT NULL DEFAULT 0,
	backup_path text NOT NULL DEFAULT '',
	errors text[] NOT NULL DEFAULT '{}',
	created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS run_logs_run_id_created_at ON run_logs (run_id, created_at);
`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure run_logs schema: %w", err)
	}
	return nil
}

func (r *Recorder) Record(ctx context.Context, rec runlog.Record) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}
	runID, err := uuid.Parse(rec.RunID)
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}
	errs := rec.Errors
	if errs == nil {
		errs = []string{}
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO run_logs (
			id, run_id, mode, team_id,
			members_found, members_marked_obsolete, members_deleted,
			invitations_sent, skipped_members, members_restored,
			backup_path, errors, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		id,
		runID,
		string(rec.Mode),
		string(rec.TeamID),
		rec.MembersFound,
		rec.MembersMarkedObsolete,
		rec.MembersDeleted,
		rec.InvitationsSent,
		rec.SkippedMembers,
		rec.MembersRestored,
		rec.BackupPath,
		errs,
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return fmt.Errorf("duplicate run log record %s", rec.ID)
		}
		return err
	}
	return nil
}

func (r *Recorder) ListByRun(ctx context.Context, runID string) ([]runlog.Record, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rid, err := uuid.Parse(runID)
	if err != nil {
		return nil, fmt.Errorf("invalid run id: %w", err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, run_id, mode, team_id,
			members_found, members_marked_obsolete, members_deleted,
			invitations_sent, skipped_members, members_restored,
			backup_path, errors, created_at
		FROM run_logs
		WHERE run_id = $1
		ORDER BY created_at, id
	`, rid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]runlog.Record, 0)
	for rows.Next() {
		var (
			rec        runlog.Record
			id, run    uuid.UUID
			mode, team string
		)
		if err := rows.Scan(
			&id, &run, &mode, &team,
			&rec.MembersFound, &rec.MembersMarkedObsolete, &rec.MembersDeleted,
			&rec.InvitationsSent, &rec.SkippedMembers, &rec.MembersRestored,
			&rec.BackupPath, &rec.Errors, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.RunID = run.String()
		rec.Mode = runlog.Mode(mode)
		rec.TeamID = domain.TeamID(team)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
