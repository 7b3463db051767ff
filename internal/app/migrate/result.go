package migrate

import "fmt"

// Result accumulates one team's migration outcome. It is created empty at
// the start of MigrateTeam, mutated in place while members are processed,
// and never touched after being returned.
type Result struct {
	MembersFound          int
	MembersMarkedObsolete int
	MembersDeleted        int
	InvitationsSent       int
	SkippedMembers        int

	BackupCreated bool
	BackupPath    string

	// Errors is ordered by discovery. A non-empty list does not by itself
	// mean the team failed; partial progress is normal.
	Errors []string
}

func (r *Result) addErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
