// Package contracttest holds behavior suites every implementation of an
// outbound port must pass, regardless of backing store.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/sso-migrate/internal/domain"
	runlogport "github.com/harborline/sso-migrate/internal/ports/out/runlog"
	snapshotport "github.com/harborline/sso-migrate/internal/ports/out/snapshot"
)

type CleanupFunc = func()

type SnapshotStoreFactory func(t *testing.T) (snapshotport.Store, CleanupFunc)
type RecorderFactory func(t *testing.T) (runlogport.Recorder, CleanupFunc)

func sampleMembers() []domain.Member {
	return []domain.Member{
		{
			Subject:     "sub-1",
			Name:        "Alice Smith",
			Email:       "alice@example.com",
			IsTeamAdmin: true,
			Projects: map[domain.ProjectID]domain.ProjectRoles{
				"proj-a": {Roles: []string{"owner"}},
				"proj-b": {Roles: []string{"editor"}, CustomPermissions: []string{"deploy"}},
			},
			Type:        domain.MemberTypeMember,
			MemberSince: time.Unix(1000, 0).UTC(),
		},
		{
			Subject:     "sub-2",
			Name:        "Bob Jones",
			Email:       "bob@example.com",
			Projects:    map[domain.ProjectID]domain.ProjectRoles{},
			Type:        domain.MemberTypeMember,
			MemberSince: time.Unix(2000, 0).UTC(),
		},
	}
}

// RunSnapshotStore verifies save/load round-trips, distinct paths per save,
// and the not-found sentinel.
func RunSnapshotStore(t *testing.T, newStore SnapshotStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	members := sampleMembers()
	path, err := store.Save(ctx, domain.TeamID("team-1"), members)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path == "" {
		t.Fatalf("Save returned empty path")
	}

	got, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(members) {
		t.Fatalf("loaded %d members, want %d", len(got), len(members))
	}
	if got[0].Subject != "sub-1" || got[0].Email != "alice@example.com" || !got[0].IsTeamAdmin {
		t.Fatalf("member[0] = %+v", got[0])
	}
	if pr, ok := got[0].Projects["proj-b"]; !ok || len(pr.CustomPermissions) != 1 {
		t.Fatalf("member[0] projects = %+v", got[0].Projects)
	}
	if len(got[1].Projects) != 0 {
		t.Fatalf("member[1] should carry an empty project set, got %+v", got[1].Projects)
	}

	// A second save of the same team must land elsewhere.
	path2, err := store.Save(ctx, domain.TeamID("team-1"), members)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if path2 == path {
		t.Fatalf("second Save reused path %q", path)
	}

	if _, err := store.Load(ctx, path+".missing"); !errors.Is(err, snapshotport.ErrNotFound) {
		t.Fatalf("Load missing: err=%v, want ErrNotFound", err)
	}
}

// RunRecorder verifies insertion, run scoping, and ordered retrieval.
func RunRecorder(t *testing.T, newRecorder RecorderFactory) {
	t.Helper()
	ctx := context.Background()

	rec, cleanup := newRecorder(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	runA := uuid.NewString()
	runB := uuid.NewString()
	base := time.Unix(5000, 0).UTC()

	for i, teamID := range []string{"team-1", "team-2"} {
		r := runlogport.Record{
			ID:              uuid.NewString(),
			RunID:           runA,
			Mode:            runlogport.ModeMigrate,
			TeamID:          domain.TeamID(teamID),
			MembersFound:    3,
			InvitationsSent: 2,
			SkippedMembers:  1,
			BackupPath:      "/backups/" + teamID + ".json",
			Errors:          []string{"Failed to invite member x@example.com: 502 Bad Gateway"},
			CreatedAt:       base.Add(time.Duration(i) * time.Second),
		}
		if err := rec.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Record(ctx, runlogport.Record{
		ID:              uuid.NewString(),
		RunID:           runB,
		Mode:            runlogport.ModeRestore,
		TeamID:          domain.TeamID("team-9"),
		MembersRestored: 4,
		CreatedAt:       base,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := rec.ListByRun(ctx, runA)
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByRun returned %d records, want 2", len(got))
	}
	if got[0].TeamID != "team-1" || got[1].TeamID != "team-2" {
		t.Fatalf("records out of order: %+v", got)
	}
	if got[0].MembersFound != 3 || got[0].InvitationsSent != 2 || got[0].SkippedMembers != 1 {
		t.Fatalf("counters not preserved: %+v", got[0])
	}
	if len(got[0].Errors) != 1 {
		t.Fatalf("errors not preserved: %+v", got[0].Errors)
	}

	other, err := rec.ListByRun(ctx, runB)
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(other) != 1 || other[0].Mode != runlogport.ModeRestore || other[0].MembersRestored != 4 {
		t.Fatalf("run B records = %+v", other)
	}
}
