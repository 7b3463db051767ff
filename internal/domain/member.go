package domain

import "time"

// MemberType discriminates real accounts from API-key pseudo-members.
type MemberType string

const (
	MemberTypeMember MemberType = "member"
	MemberTypeAPIKey MemberType = "apiKey"
)

// ProjectRoles is a member's assignment on one project: an ordered set of
// role names plus optional custom permission tokens.
type ProjectRoles struct {
	Roles             []string `json:"roles"`
	CustomPermissions []string `json:"customPermissions,omitempty"`
}

// Member is one account in a team, exactly as the vendor reports it.
//
// The JSON tags are part of the external contract: the list endpoint returns
// members in this shape and backups persist them verbatim, so the domain type
// doubles as the wire record.
type Member struct {
	Subject     SubjectID                  `json:"subject"`
	Name        string                     `json:"name"`
	Email       string                     `json:"email"`
	IsTeamAdmin bool                       `json:"isTeamAdmin"`
	Projects    map[ProjectID]ProjectRoles `json:"projects"`
	Type        MemberType                 `json:"type"`
	MemberSince time.Time                  `json:"memberSince"`
}

// TeamConfig is the credential pair for one team. The key authorizes
// operations against that team only and is immutable during a run.
type TeamConfig struct {
	TeamID TeamID `json:"teamId"`
	APIKey string `json:"apiKey"`
}
