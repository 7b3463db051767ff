package restore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/snapshot"
	"github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

// Options configures a restore run. Restore reuses the migration run's
// ignore filter and dry-run switch but performs no mutations of its own:
// it only replays a snapshot as invitations.
type Options struct {
	DryRun        bool
	IgnoredEmails []string
}

// Result is one team's restore outcome.
type Result struct {
	Success         bool
	MembersRestored int
	Errors          []string
}

func (r *Result) addErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Service replays a saved snapshot as a batch of fresh invitations.
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

// RestoreTeam loads the snapshot at path and re-invites every non-ignored
// member it contains. Success means at least one member actually came back:
// replaying an empty snapshot is a failed restore even with zero errors.
func (s *Service) RestoreTeam(ctx context.Context, path string, team domain.TeamConfig) *Result {
	res := &Result{}

	members, err := s.snapshots.Load(ctx, path)
	if err != nil {
		res.addErrorf("Failed to load backup: %v", err)
		return res
	}
	s.log.Info("loaded backup",
		zap.String("path", path),
		zap.String("team", string(team.TeamID)),
		zap.Int("count", len(members)))

	if s.opts.DryRun {
		// Simulation is coarse here: the load is verified, members are not
		// individually inspected or counted.
		res.Success = true
		s.log.Info("dry run: backup is restorable", zap.Int("members", len(members)))
		return res
	}

	for _, m := range members {
		if s.isIgnored(m.Email) {
			s.log.Info("skipping ignored member", zap.String("email", m.Email))
			continue
		}
		if err := s.invite(ctx, team, m, res); err != nil {
			res.addErrorf("Error processing member %s: %v", m.Email, err)
		}
	}

	res.Success = res.MembersRestored > 0
	return res
}

func (s *Service) invite(ctx context.Context, team domain.TeamConfig, m domain.Member, res *Result) error {
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
	res.MembersRestored++
	s.log.Info("invitation sent", zap.String("email", m.Email))
	return nil
}

func (s *Service) isIgnored(email string) bool {
	_, ok := s.ignored[domain.NormalizeEmail(email)]
	return ok
}
