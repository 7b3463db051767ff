package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harborline/sso-migrate/internal/app/restore"
	"github.com/harborline/sso-migrate/internal/platform/config"
	runlogport "github.com/harborline/sso-migrate/internal/ports/out/runlog"
)

func newRestoreCommand() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replay a backup file as a batch of fresh invitations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") {
				cfg.RestoreFrom = from
			}
			if cfg.RestoreFrom == "" {
				return fmt.Errorf("a backup file is required (--from or SSOM_RESTORE_FROM)")
			}
			return runRestore(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Backup file to replay")
	return cmd
}

func runRestore(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	d, err := newDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.cleanup()

	svc := restore.NewService(d.vendor, d.snaps, d.log, restore.Options{
		DryRun:        cfg.DryRun,
		IgnoredEmails: cfg.AllIgnoredEmails(),
	})

	d.log.Info("starting restore run",
		zap.String("runId", d.runID),
		zap.String("from", cfg.RestoreFrom),
		zap.Int("teams", len(d.teams)),
		zap.Bool("dryRun", cfg.DryRun))

	results := make([]teamResult, 0, len(d.teams))
	for _, team := range d.teams {
		res := svc.RestoreTeam(ctx, cfg.RestoreFrom, team)
		results = append(results, teamResult{team: team.TeamID, restore: res})
		d.record(ctx, runlogport.Record{
			Mode:            runlogport.ModeRestore,
			TeamID:          team.TeamID,
			MembersRestored: res.MembersRestored,
			Errors:          res.Errors,
		})
	}

	renderRestoreSummary(cmd.OutOrStdout(), results)
	return nil
}
