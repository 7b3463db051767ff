package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harborline/sso-migrate/internal/domain"
	clockport "github.com/harborline/sso-migrate/internal/ports/out/clock"
	snapshotport "github.com/harborline/sso-migrate/internal/ports/out/snapshot"
)

// timestampReplacer strips the characters in an RFC3339 timestamp that are
// awkward in filenames. The resulting name is part of the backup contract:
// team-<teamId>-backup-<timestamp>.json
var timestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// Store writes each team's member list as one JSON document under dir.
type Store struct {
	dir string
	clk clockport.Clock
}

func NewStore(dir string, clk clockport.Clock) *Store {
	return &Store{dir: dir, clk: clk}
}

func (s *Store) Save(ctx context.Context, teamID domain.TeamID, members []domain.Member) (string, error) {
	_ = ctx
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(members, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	path := filepath.Join(s.dir, fileName(teamID, s.clk.Now()))
	// O_EXCL plus nanosecond timestamps rules out silent overwrites within
	// a run.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}
	return path, nil
}

func (s *Store) Load(ctx context.Context, path string) ([]domain.Member, error) {
	_ = ctx
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", snapshotport.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	var members []domain.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", snapshotport.ErrCorrupt, path, err)
	}
	return members, nil
}

var _ snapshotport.Store = (*Store)(nil)

func fileName(teamID domain.TeamID, now time.Time) string {
	ts := timestampReplacer.Replace(now.UTC().Format(time.RFC3339Nano))
	return fmt.Sprintf("team-%s-backup-%s.json", teamID, ts)
}
