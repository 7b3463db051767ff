package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harborline/sso-migrate/internal/adapters/contracttest"
	memclock "github.com/harborline/sso-migrate/internal/adapters/memory/clock"
	"github.com/harborline/sso-migrate/internal/domain"
	clockport "github.com/harborline/sso-migrate/internal/ports/out/clock"
	snapshotport "github.com/harborline/sso-migrate/internal/ports/out/snapshot"
)

// tickingClock advances on every read so successive saves within the
// contract suite get distinct filenames, like a real nanosecond clock.
type tickingClock struct {
	inner *memclock.ManualClock
}

func (c tickingClock) Now() time.Time {
	c.inner.Advance(time.Nanosecond)
	return c.inner.Now()
}

func TestContract_FSSnapshotStore(t *testing.T) {
	t.Parallel()

	contracttest.RunSnapshotStore(t, func(t *testing.T) (snapshotport.Store, func()) {
		t.Helper()
		clk := tickingClock{inner: memclock.NewManualClock(time.Unix(1700000000, 0))}
		return NewStore(t.TempDir(), clk), nil
	})
}

func TestStore_FileNaming(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	at := time.Date(2024, 5, 2, 13, 4, 5, 123456789, time.UTC)
	store := NewStore(dir, memclock.NewManualClock(at))

	path, err := store.Save(context.Background(), domain.TeamID("team-42"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "team-team-42-backup-") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("name=%q", name)
	}
	if strings.ContainsAny(name, ":") || strings.Count(name, ".") != 1 {
		t.Fatalf("timestamp not sanitized: %q", name)
	}
}

func TestStore_NeverOverwrites(t *testing.T) {
	t.Parallel()

	// A frozen clock forces a filename collision on the second save.
	dir := t.TempDir()
	store := NewStore(dir, memclock.NewManualClock(time.Unix(1700000000, 0)))

	if _, err := store.Save(context.Background(), domain.TeamID("t"), nil); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := store.Save(context.Background(), domain.TeamID("t"), nil); err == nil {
		t.Fatalf("second Save with identical timestamp should fail, not overwrite")
	}
}

func TestStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "backups")
	store := NewStore(dir, memclock.NewManualClock(time.Unix(1700000000, 0)))

	if _, err := store.Save(context.Background(), domain.TeamID("t"), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("backup directory missing: %v", err)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, memclock.NewManualClock(time.Unix(1700000000, 0)))

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := store.Load(context.Background(), path)
	if !errors.Is(err, snapshotport.ErrCorrupt) {
		t.Fatalf("err=%v, want ErrCorrupt", err)
	}
}

func TestStore_SavesWireShape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, memclock.NewManualClock(time.Unix(1700000000, 0)))

	members := []domain.Member{{
		Subject: "sub-1",
		Name:    "Alice",
		Email:   "alice@example.com",
		Projects: map[domain.ProjectID]domain.ProjectRoles{
			"p1": {Roles: []string{"owner"}},
		},
		Type:        domain.MemberTypeMember,
		MemberSince: time.Unix(1000, 0).UTC(),
	}}
	path, err := store.Save(context.Background(), domain.TeamID("t"), members)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// The document must be a plain JSON array of members in wire form.
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("backup is not a JSON array: %v", err)
	}
	if len(raw) != 1 || raw[0]["subject"] != "sub-1" || raw[0]["email"] != "alice@example.com" {
		t.Fatalf("unexpected wire shape: %v", raw)
	}
}

var _ clockport.Clock = tickingClock{}
