package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/harborline/sso-migrate/internal/app/migrate"
	"github.com/harborline/sso-migrate/internal/app/restore"
	"github.com/harborline/sso-migrate/internal/domain"
)

// teamResult pairs one team with whichever orchestrator result the run
// produced.
type teamResult struct {
	team    domain.TeamID
	migrate *migrate.Result
	restore *restore.Result
}

func newSummaryWriter(out io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateRows = false
	return tw
}

func renderMigrateSummary(out io.Writer, results []teamResult) {
	tw := newSummaryWriter(out)
	tw.AppendHeader(table.Row{"TEAM", "FOUND", "OBSOLETED", "DELETED", "INVITED", "SKIPPED", "BACKUP", "ERRORS"})

	var total migrate.Result
	for _, r := range results {
		res := r.migrate
		backup := "-"
		if res.BackupCreated {
			backup = res.BackupPath
		}
		tw.AppendRow(table.Row{
			r.team,
			res.MembersFound,
			res.MembersMarkedObsolete,
			res.MembersDeleted,
			res.InvitationsSent,
			res.SkippedMembers,
			backup,
			len(res.Errors),
		})
		total.MembersFound += res.MembersFound
		total.MembersMarkedObsolete += res.MembersMarkedObsolete
		total.MembersDeleted += res.MembersDeleted
		total.InvitationsSent += res.InvitationsSent
		total.SkippedMembers += res.SkippedMembers
		total.Errors = append(total.Errors, res.Errors...)
	}
	tw.AppendFooter(table.Row{
		"TOTAL",
		total.MembersFound,
		total.MembersMarkedObsolete,
		total.MembersDeleted,
		total.InvitationsSent,
		total.SkippedMembers,
		"",
		len(total.Errors),
	})
	tw.Render()

	renderErrors(out, results)
}

func renderRestoreSummary(out io.Writer, results []teamResult) {
	tw := newSummaryWriter(out)
	tw.AppendHeader(table.Row{"TEAM", "RESTORED", "SUCCESS", "ERRORS"})

	restored, errs := 0, 0
	for _, r := range results {
		res := r.restore
		tw.AppendRow(table.Row{r.team, res.MembersRestored, res.Success, len(res.Errors)})
		restored += res.MembersRestored
		errs += len(res.Errors)
	}
	tw.AppendFooter(table.Row{"TOTAL", restored, "", errs})
	tw.Render()

	renderErrors(out, results)
}

func renderErrors(out io.Writer, results []teamResult) {
	for _, r := range results {
		var errs []string
		switch {
		case r.migrate != nil:
			errs = r.migrate.Errors
		case r.restore != nil:
			errs = r.restore.Errors
		}
		if len(errs) == 0 {
			continue
		}
		fmt.Fprintf(out, "\nErrors for team %s:\n", r.team)
		for _, e := range errs {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
}
