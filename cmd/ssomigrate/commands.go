package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/sso-migrate/internal/platform/config"
)

var rootCmd = &cobra.Command{
	Use:           "ssomigrate",
	Short:         "Migrate team members from password accounts to SSO, one team at a time",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run executes the CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

var flags struct {
	apiBaseURL    string
	apiKey        string
	teamIDs       []string
	teamsFile     string
	dryRun        bool
	noBackup      bool
	backupDir     string
	ignoredEmails []string
	runlogDSN     string
	logLevel      string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.apiBaseURL, "api-base-url", "", "Base URL of the platform API")
	pf.StringVar(&flags.apiKey, "api-key", "", "Shared API key used with --team-ids")
	pf.StringSliceVar(&flags.teamIDs, "team-ids", nil, "Team ids migrated with the shared API key")
	pf.StringVar(&flags.teamsFile, "teams-file", "", "JSON file of {teamId, apiKey} entries")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Simulate without any mutating API calls")
	pf.BoolVar(&flags.noBackup, "no-backup", false, "Skip the pre-migration member backup")
	pf.StringVar(&flags.backupDir, "backup-dir", "", "Directory for member backups")
	pf.StringSliceVar(&flags.ignoredEmails, "ignore", nil, "Emails to skip (case-insensitive, repeatable)")
	pf.StringVar(&flags.runlogDSN, "runlog-dsn", "", "Postgres DSN for the run history (optional)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newRestoreCommand())
}

// loadConfig layers changed flags over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("api-base-url", func() { cfg.APIBaseURL = flags.apiBaseURL })
	set("api-key", func() { cfg.APIKey = flags.apiKey })
	set("team-ids", func() { cfg.TeamIDs = flags.teamIDs })
	set("teams-file", func() { cfg.TeamsFile = flags.teamsFile })
	set("dry-run", func() { cfg.DryRun = flags.dryRun })
	set("no-backup", func() { cfg.BackupEnabled = !flags.noBackup })
	set("backup-dir", func() { cfg.BackupDir = flags.backupDir })
	set("ignore", func() { cfg.IgnoredEmails = flags.ignoredEmails })
	set("runlog-dsn", func() { cfg.RunlogDSN = flags.runlogDSN })
	set("log-level", func() { cfg.LogLevel = flags.logLevel })

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
