package vendorapi

import "github.com/harborline/sso-migrate/internal/domain"

// ProjectInvite is one project assignment carried on an invite or update.
type ProjectInvite struct {
	ProjectID   domain.ProjectID `json:"projectId"`
	Roles       []string         `json:"roles"`
	Permissions []string         `json:"permissions,omitempty"`
	UseCustom   bool             `json:"useCustom"`
}

// InviteRequest issues a fresh invitation carrying the member's identity and
// full project assignment forward.
type InviteRequest struct {
	TeamID    domain.TeamID   `json:"teamId"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	IsAdmin   bool            `json:"isAdmin"`
	Projects  []ProjectInvite `json:"projects"`
	SendEmail bool            `json:"sendEmail"`
}

// UpdateRequest rewrites an existing member record in place, keyed by subject.
type UpdateRequest struct {
	TeamID   domain.TeamID    `json:"teamId"`
	Subject  domain.SubjectID `json:"subject"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	IsAdmin  bool             `json:"isAdmin"`
	Projects []ProjectInvite  `json:"projects"`
}

// DeleteRequest removes one member record.
type DeleteRequest struct {
	TeamID  domain.TeamID    `json:"teamId"`
	Subject domain.SubjectID `json:"subject"`
}

// ProjectInvites maps a member's project assignments to the invite wire
// shape. UseCustom is set iff the assignment carries custom permissions.
// Project sets are unordered on the vendor side, so map iteration order is
// acceptable here.
func ProjectInvites(m domain.Member) []ProjectInvite {
	out := make([]ProjectInvite, 0, len(m.Projects))
	for id, pr := range m.Projects {
		out = append(out, ProjectInvite{
			ProjectID:   id,
			Roles:       pr.Roles,
			Permissions: pr.CustomPermissions,
			UseCustom:   len(pr.CustomPermissions) > 0,
		})
	}
	return out
}
