package restore

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	memsnapshot "github.com/harborline/sso-migrate/internal/adapters/memory/snapshot"
	memvendor "github.com/harborline/sso-migrate/internal/adapters/memory/vendorapi"
	"github.com/harborline/sso-migrate/internal/domain"
)

func member(subject, name, email string) domain.Member {
	return domain.Member{
		Subject: domain.SubjectID(subject),
		Name:    name,
		Email:   email,
		Projects: map[domain.ProjectID]domain.ProjectRoles{
			"proj-1": {Roles: []string{"editor"}, CustomPermissions: []string{"deploy"}},
		},
		Type:        domain.MemberTypeMember,
		MemberSince: time.Unix(1000, 0).UTC(),
	}
}

func team() domain.TeamConfig {
	return domain.TeamConfig{TeamID: "team-1", APIKey: "key-1"}
}

func TestRestoreTeam_MissingBackup(t *testing.T) {
	t.Parallel()

	svc := NewService(memvendor.NewClient(), memsnapshot.NewStore(), nil, Options{})

	res := svc.RestoreTeam(context.Background(), "mem://nope.json", team())

	if res.Success || res.MembersRestored != 0 {
		t.Fatalf("res=%+v", res)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Failed to load backup") {
		t.Fatalf("errors=%v", res.Errors)
	}
}

func TestRestoreTeam_CorruptBackup(t *testing.T) {
	t.Parallel()

	store := memsnapshot.NewStore()
	store.PutCorrupt("mem://bad.json")
	vendor := memvendor.NewClient()
	svc := NewService(vendor, store, nil, Options{})

	res := svc.RestoreTeam(context.Background(), "mem://bad.json", team())

	if res.Success || len(res.Errors) != 1 {
		t.Fatalf("res=%+v", res)
	}
	if vendor.MutationCalls() != 0 {
		t.Fatalf("partial restore attempted")
	}
}

func TestRestoreTeam_DryRunStopsAfterLoad(t *testing.T) {
	t.Parallel()

	store := memsnapshot.NewStore()
	store.Put("mem://b.json", []domain.Member{member("sub-1", "Alice", "alice@example.com")})
	vendor := memvendor.NewClient()
	svc := NewService(vendor, store, nil, Options{DryRun: true})

	res := svc.RestoreTeam(context.Background(), "mem://b.json", team())

	// Restore's dry run is deliberately coarse: load is verified, members
	// are not simulated or counted.
	if !res.Success || res.MembersRestored != 0 || len(res.Errors) != 0 {
		t.Fatalf("res=%+v", res)
	}
	if vendor.MutationCalls() != 0 {
		t.Fatalf("dry run made calls")
	}
}

func TestRestoreTeam_Live(t *testing.T) {
	t.Parallel()

	store := memsnapshot.NewStore()
	store.Put("mem://b.json", []domain.Member{
		member("sub-1", "Alice", "alice@example.com"),
		member("sub-2", "Bob", "bob@example.com"),
		member("sub-3", "Bot", "bot@example.com"),
	})
	vendor := memvendor.NewClient()
	svc := NewService(vendor, store, nil, Options{IgnoredEmails: []string{"BOT@EXAMPLE.COM"}})

	res := svc.RestoreTeam(context.Background(), "mem://b.json", team())

	if !res.Success || res.MembersRestored != 2 || len(res.Errors) != 0 {
		t.Fatalf("res=%+v", res)
	}
	if len(vendor.Invites) != 2 {
		t.Fatalf("invites=%+v", vendor.Invites)
	}
	if !vendor.Invites[0].SendEmail {
		t.Fatalf("invite without sendEmail: %+v", vendor.Invites[0])
	}
	if pr := vendor.Invites[0].Projects; len(pr) != 1 || !pr[0].UseCustom {
		t.Fatalf("projects=%+v", pr)
	}
}

func TestRestoreTeam_EmptyBackupIsFailure(t *testing.T) {
	t.Parallel()

	store := memsnapshot.NewStore()
	store.Put("mem://empty.json", []domain.Member{})
	svc := NewService(memvendor.NewClient(), store, nil, Options{})

	res := svc.RestoreTeam(context.Background(), "mem://empty.json", team())

	if res.Success || res.MembersRestored != 0 {
		t.Fatalf("res=%+v", res)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors=%v", res.Errors)
	}
}

func TestRestoreTeam_MemberFailuresIsolated(t *testing.T) {
	t.Parallel()

	store := memsnapshot.NewStore()
	store.Put("mem://b.json", []domain.Member{
		member("sub-1", "Alice", "alice@example.com"),
		member("sub-2", "Bob", "bob@example.com"),
		member("sub-3", "Carol", "carol@example.com"),
	})
	vendor := memvendor.NewClient()
	vendor.InviteErr["alice@example.com"] = errors.New("timeout")
	vendor.InviteStatus["bob@example.com"] = http.StatusUnprocessableEntity
	svc := NewService(vendor, store, nil, Options{})

	res := svc.RestoreTeam(context.Background(), "mem://b.json", team())

	if !res.Success || res.MembersRestored != 1 {
		t.Fatalf("res=%+v", res)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors=%v", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "Error processing member alice@example.com") {
		t.Fatalf("errors[0]=%q", res.Errors[0])
	}
	if !strings.Contains(res.Errors[1], "Failed to invite member bob@example.com") {
		t.Fatalf("errors[1]=%q", res.Errors[1])
	}
}

func TestRestoreTeam_RoundTripFromMigrationBackup(t *testing.T) {
	t.Parallel()

	// Save through the store the way a migration backup would, then replay.
	store := memsnapshot.NewStore()
	members := []domain.Member{
		member("sub-1", "Alice", "alice@example.com"),
		member("sub-2", "Bob", "bob@example.com"),
	}
	path, err := store.Save(context.Background(), domain.TeamID("team-1"), members)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	vendor := memvendor.NewClient()
	svc := NewService(vendor, store, nil, Options{})

	res := svc.RestoreTeam(context.Background(), path, team())

	if !res.Success || res.MembersRestored != len(members) {
		t.Fatalf("res=%+v", res)
	}
}
