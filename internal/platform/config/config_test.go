package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/harborline/sso-migrate/internal/app/migrate"
)

func TestAction_DeleteOverridesObsolete(t *testing.T) {
	t.Parallel()

	cfg := Config{MarkObsolete: true, DeleteMembers: true}
	if got := cfg.Action(); got != migrate.ActionDelete {
		t.Fatalf("Action()=%v, want delete", got)
	}
}

func TestAllIgnoredEmails_UnionAndDedupe(t *testing.T) {
	t.Parallel()

	cfg := Config{IgnoredEmails: []string{
		"  Alice@Example.COM ",
		"alice@example.com",
		"SSO-ADMIN@harborline.io", // already built in
		"",
	}}
	got := cfg.AllIgnoredEmails()

	if !slices.Contains(got, "sso-admin@harborline.io") {
		t.Fatalf("built-in entry missing: %v", got)
	}
	if !slices.Contains(got, "alice@example.com") {
		t.Fatalf("user entry missing: %v", got)
	}
	want := len(DefaultIgnoredEmails) + 1
	if len(got) != want {
		t.Fatalf("len=%d want %d (%v)", len(got), want, got)
	}
}

func TestTeams_SharedKey(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "k", TeamIDs: []string{"t1", " t2 ", ""}}
	teams, err := cfg.Teams()
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if len(teams) != 2 || teams[0].TeamID != "t1" || teams[1].TeamID != "t2" {
		t.Fatalf("teams=%+v", teams)
	}
	if teams[0].APIKey != "k" || teams[1].APIKey != "k" {
		t.Fatalf("teams=%+v", teams)
	}
}

func TestTeams_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "teams.json")
	body := `[{"teamId":"t1","apiKey":"k1"},{"teamId":"t2","apiKey":"k2"}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Config{TeamsFile: path}
	teams, err := cfg.Teams()
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if len(teams) != 2 || teams[1].TeamID != "t2" || teams[1].APIKey != "k2" {
		t.Fatalf("teams=%+v", teams)
	}
}

func TestTeams_FileRejectsIncompleteEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "teams.json")
	if err := os.WriteFile(path, []byte(`[{"teamId":"t1"}]`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := (Config{TeamsFile: path}).Teams(); err == nil {
		t.Fatalf("expected error for entry without apiKey")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Config{APIBaseURL: "https://api.example.com", APIKey: "k", TeamIDs: []string{"t"}, BackupEnabled: true, BackupDir: "b"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := (Config{APIKey: "k", TeamIDs: []string{"t"}}).Validate(); err == nil {
		t.Fatalf("missing base URL accepted")
	}
	if err := (Config{APIBaseURL: "u"}).Validate(); err == nil {
		t.Fatalf("missing credentials accepted")
	}
	if err := (Config{APIBaseURL: "u", APIKey: "k", TeamIDs: []string{"t"}, BackupEnabled: true}).Validate(); err == nil {
		t.Fatalf("enabled backup without directory accepted")
	}
}
