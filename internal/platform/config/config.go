// Package config assembles the validated run configuration from environment
// variables and CLI flags. Flags override environment values; both feed the
// same struct so the orchestrators never read the environment themselves.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/harborline/sso-migrate/internal/app/migrate"
	"github.com/harborline/sso-migrate/internal/domain"
)

// DefaultIgnoredEmails are operator-reserved accounts that must survive
// every migration. The break-glass owner account stays on password auth so
// the team is recoverable if the SSO connection itself breaks.
var DefaultIgnoredEmails = []string{
	"sso-admin@harborline.io",
}

// Config is the full configuration surface of one run.
type Config struct {
	APIBaseURL string        `env:"SSOM_API_BASE_URL"`
	APITimeout time.Duration `env:"SSOM_API_TIMEOUT" envDefault:"30s"`

	// Either a shared key plus team ids, or a teams file of
	// {"teamId","apiKey"} entries.
	APIKey    string   `env:"SSOM_API_KEY"`
	TeamIDs   []string `env:"SSOM_TEAM_IDS"`
	TeamsFile string   `env:"SSOM_TEAMS_FILE"`

	MarkObsolete  bool `env:"SSOM_MARK_OBSOLETE"`
	DeleteMembers bool `env:"SSOM_DELETE_MEMBERS"`
	DryRun        bool `env:"SSOM_DRY_RUN"`

	BackupEnabled bool   `env:"SSOM_BACKUP_ENABLED" envDefault:"true"`
	BackupDir     string `env:"SSOM_BACKUP_DIR" envDefault:"./backups"`

	IgnoredEmails []string `env:"SSOM_IGNORED_EMAILS"`

	// RestoreFrom switches the run into restore mode, replaying the named
	// backup file instead of migrating.
	RestoreFrom string `env:"SSOM_RESTORE_FROM"`

	// RunlogDSN, when set, enables the Postgres run history.
	RunlogDSN string `env:"SSOM_RUNLOG_DSN"`

	LogLevel string `env:"SSOM_LOG_LEVEL" envDefault:"info"`
}

// FromEnv loads a Config from the environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the parts every mode needs.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required (SSOM_API_BASE_URL or --api-base-url)")
	}
	if c.TeamsFile == "" && (c.APIKey == "" || len(c.TeamIDs) == 0) {
		return fmt.Errorf("either a teams file or an API key plus team ids is required")
	}
	if c.BackupEnabled && c.BackupDir == "" {
		return fmt.Errorf("backup directory is required when backups are enabled")
	}
	return nil
}

// Action resolves the two mutation flags once. Delete wins over obsolete.
func (c Config) Action() migrate.Action {
	return migrate.ResolveAction(c.MarkObsolete, c.DeleteMembers)
}

// AllIgnoredEmails unions the built-in ignore list with the user-supplied
// one, deduplicated case-insensitively.
func (c Config) AllIgnoredEmails() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(DefaultIgnoredEmails)+len(c.IgnoredEmails))
	for _, e := range append(append([]string{}, DefaultIgnoredEmails...), c.IgnoredEmails...) {
		n := domain.NormalizeEmail(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Teams materializes the per-team credentials, from the teams file when one
// is named, otherwise from the shared key and team id list.
func (c Config) Teams() ([]domain.TeamConfig, error) {
	if c.TeamsFile != "" {
		return loadTeamsFile(c.TeamsFile)
	}
	teams := make([]domain.TeamConfig, 0, len(c.TeamIDs))
	for _, id := range c.TeamIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		teams = append(teams, domain.TeamConfig{TeamID: domain.TeamID(id), APIKey: c.APIKey})
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams configured")
	}
	return teams, nil
}

func loadTeamsFile(path string) ([]domain.TeamConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read teams file: %w", err)
	}
	var teams []domain.TeamConfig
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parse teams file %s: %w", path, err)
	}
	for i, tc := range teams {
		if tc.TeamID == "" || tc.APIKey == "" {
			return nil, fmt.Errorf("teams file %s: entry %d is missing teamId or apiKey", path, i)
		}
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("teams file %s names no teams", path)
	}
	return teams, nil
}
