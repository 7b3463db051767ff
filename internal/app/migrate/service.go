package migrate

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/snapshot"
	"github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

// Service migrates one team at a time from password accounts to SSO:
// fetch members, snapshot them, retire or delete each record per Options,
// and re-invite every member under its original identity.
type Service struct {
	vendor    vendorapi.Client
	snapshots snapshot.Store
	log       *zap.Logger
	opts      Options

	ignored map[string]struct{}
}

func NewService(vendor vendorapi.Client, snapshots snapshot.Store, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	ignored := make(map[string]struct{}, len(opts.IgnoredEmails))
	for _, e := range opts.IgnoredEmails {
		ignored[domain.NormalizeEmail(e)] = struct{}{}
	}
	return &Service{
		vendor:    vendor,
		snapshots: snapshots,
		log:       log,
		opts:      opts,
		ignored:   ignored,
	}
}

// MigrateTeam runs the full migration sequence for one team and always
// returns a result, however partial. A connectivity fault never escapes the
// team boundary: it becomes the team-level error entry so the remaining
// teams of a run are unaffected.
func (s *Service) MigrateTeam(ctx context.Context, team domain.TeamConfig) *Result {
	res := &Result{}
	if err := s.run(ctx, team, res); err != nil {
		res.addErrorf("Error migrating team %s: %v", team.TeamID, err)
	}
	return res
}

func (s *Service) run(ctx context.Context, team domain.TeamConfig, res *Result) error {
	members, r, err := s.vendor.ListMembers(ctx, team)
	if err != nil {
		return err
	}
	if r.Status != http.StatusOK {
		res.addErrorf("Failed to get members: %s", r.StatusText)
		return nil
	}
	res.MembersFound = len(members)
	s.log.Info("fetched members",
		zap.String("team", string(team.TeamID)),
		zap.Int("count", len(members)),
		zap.Bool("dryRun", s.opts.DryRun),
		zap.Stringer("action", s.opts.Action))

	if s.opts.BackupEnabled && len(members) > 0 {
		if !s.backup(ctx, team, members, res) {
			return nil
		}
	}

	for _, m := range members {
		if s.isIgnored(m.Email) {
			res.SkippedMembers++
			s.log.Info("skipping ignored member", zap.String("email", m.Email))
			continue
		}
		if err := s.processMember(ctx, team, m, res); err != nil {
			// One member's fault must not abort the team.
			res.addErrorf("Error processing member %s: %v", m.Email, err)
		}
	}
	return nil
}

// backup persists the pre-migration member list. It reports whether member
// processing may proceed: a failed backup blocks only the live-delete
// combination, the one case where the data would otherwise be unrecoverable.
func (s *Service) backup(ctx context.Context, team domain.TeamConfig, members []domain.Member, res *Result) bool {
	path, err := s.snapshots.Save(ctx, team.TeamID, members)
	if err == nil {
		res.BackupCreated = true
		res.BackupPath = path
		s.log.Info("backup created", zap.String("path", path))
		return true
	}
	if s.opts.Action == ActionDelete && !s.opts.DryRun {
		res.addErrorf("Backup failed, aborting before deleting members: %v", err)
		return false
	}
	res.addErrorf("Backup failed: %v", err)
	return true
}

func (s *Service) processMember(ctx context.Context, team domain.TeamConfig, m domain.Member, res *Result) error {
	switch s.opts.Action {
	case ActionDelete:
		if err := s.deleteMember(ctx, team, m, res); err != nil {
			return err
		}
	case ActionMarkObsolete:
		if err := s.markObsolete(ctx, team, m, res); err != nil {
			return err
		}
	}
	// The invitation always uses the original identity, even right after the
	// record was renamed or deleted: the new invite is a fresh SSO account
	// for the same human, not for the obsolete shadow.
	return s.invite(ctx, team, m, res)
}

func (s *Service) deleteMember(ctx context.Context, team domain.TeamConfig, m domain.Member, res *Result) error {
	if s.opts.DryRun {
		res.MembersDeleted++
		s.log.Info("dry run: would delete member", zap.String("email", m.Email))
		return nil
	}
	r, err := s.vendor.DeleteMember(ctx, vendorapi.DeleteRequest{
		TeamID:  team.TeamID,
		Subject: m.Subject,
	}, team.APIKey)
	if err != nil {
		return err
	}
	if !r.OK() {
		// Real state unknown; treat the member as not deleted.
		res.addErrorf("Failed to delete member %s: %s", m.Email, r.StatusText)
		return nil
	}
	res.MembersDeleted++
	s.log.Info("deleted member", zap.String("email", m.Email))
	return nil
}

func (s *Service) markObsolete(ctx context.Context, team domain.TeamConfig, m domain.Member, res *Result) error {
	if s.opts.DryRun {
		res.MembersMarkedObsolete++
		s.log.Info("dry run: would mark member obsolete", zap.String("email", m.Email))
		return nil
	}
	r, err := s.vendor.UpdateMember(ctx, vendorapi.UpdateRequest{
		TeamID:   team.TeamID,
		Subject:  m.Subject,
		Name:     ObsoletePrefix + m.Name,
		Email:    m.Email,
		IsAdmin:  m.IsTeamAdmin,
		Projects: vendorapi.ProjectInvites(m),
	}, team.APIKey)
	if err != nil {
		return err
	}
	if !r.OK() {
		res.addErrorf("Failed to mark member %s as obsolete: %s", m.Email, r.StatusText)
		return nil
	}
	res.MembersMarkedObsolete++
	s.log.Info("marked member obsolete", zap.String("email", m.Email))
	return nil
}

func (s *Service) invite(ctx context.Context, team domain.TeamConfig, m domain.Member, res *Result) error {
	if s.opts.DryRun {
		res.InvitationsSent++
		s.log.Info("dry run: would invite member", zap.String("email", m.Email))
		return nil
	}
	r, err := s.vendor.InviteMember(ctx, vendorapi.InviteRequest{
		TeamID:    team.TeamID,
		Email:     m.Email,
		Name:      m.Name,
		IsAdmin:   m.IsTeamAdmin,
		Projects:  vendorapi.ProjectInvites(m),
		SendEmail: true,
	}, team.APIKey)
	if err != nil {
		return err
	}
	if !r.OK() {
		res.addErrorf("Failed to invite member %s: %s", m.Email, r.StatusText)
		return nil
	}
	res.InvitationsSent++
	s.log.Info("invitation sent", zap.String("email", m.Email))
	return nil
}

func (s *Service) isIgnored(email string) bool {
	_, ok := s.ignored[domain.NormalizeEmail(email)]
	return ok
}
