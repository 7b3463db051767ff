package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harborline/sso-migrate/internal/app/migrate"
	"github.com/harborline/sso-migrate/internal/platform/config"
	runlogport "github.com/harborline/sso-migrate/internal/ports/out/runlog"
)

func newMigrateCommand() *cobra.Command {
	var (
		markObsolete  bool
		deleteMembers bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Back up, retire, and re-invite every member of the configured teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mark-obsolete") {
				cfg.MarkObsolete = markObsolete
			}
			if cmd.Flags().Changed("delete-members") {
				cfg.DeleteMembers = deleteMembers
			}
			return runMigrate(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&markObsolete, "mark-obsolete", false, "Rename existing members with the obsolete prefix")
	cmd.Flags().BoolVar(&deleteMembers, "delete-members", false, "Delete existing members (overrides --mark-obsolete)")
	return cmd
}

func runMigrate(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	d, err := newDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.cleanup()

	svc := migrate.NewService(d.vendor, d.snaps, d.log, migrate.Options{
		Action:        cfg.Action(),
		DryRun:        cfg.DryRun,
		BackupEnabled: cfg.BackupEnabled,
		IgnoredEmails: cfg.AllIgnoredEmails(),
	})

	d.log.Info("starting migration run",
		zap.String("runId", d.runID),
		zap.Int("teams", len(d.teams)),
		zap.Stringer("action", cfg.Action()),
		zap.Bool("dryRun", cfg.DryRun))

	results := make([]teamResult, 0, len(d.teams))
	for _, team := range d.teams {
		res := svc.MigrateTeam(ctx, team)
		results = append(results, teamResult{team: team.TeamID, migrate: res})
		d.record(ctx, runlogport.Record{
			Mode:                  runlogport.ModeMigrate,
			TeamID:                team.TeamID,
			MembersFound:          res.MembersFound,
			MembersMarkedObsolete: res.MembersMarkedObsolete,
			MembersDeleted:        res.MembersDeleted,
			InvitationsSent:       res.InvitationsSent,
			SkippedMembers:        res.SkippedMembers,
			BackupPath:            res.BackupPath,
			Errors:                res.Errors,
		})
	}

	renderMigrateSummary(cmd.OutOrStdout(), results)
	// A non-empty error list is part of the report, not a process failure.
	return nil
}
