package migrate

// Action is what happens to each existing member record before it is
// re-invited. It is resolved once at configuration time so the per-member
// loop never weighs flag precedence.
type Action int

const (
	// ActionNone leaves existing records untouched; members are only re-invited.
	ActionNone Action = iota
	// ActionMarkObsolete renames each record with the obsolete prefix.
	ActionMarkObsolete
	// ActionDelete removes each record.
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionMarkObsolete:
		return "mark-obsolete"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// ResolveAction collapses the two mutation flags into one Action.
// Deletion and obsolete-marking are mutually exclusive; deletion wins.
func ResolveAction(markObsolete, deleteMembers bool) Action {
	if deleteMembers {
		return ActionDelete
	}
	if markObsolete {
		return ActionMarkObsolete
	}
	return ActionNone
}

// Options configures one migration run. The same Options apply to every team
// in the run.
type Options struct {
	Action        Action
	DryRun        bool
	BackupEnabled bool
	// IgnoredEmails are matched case-insensitively against member emails;
	// matching members are skipped entirely.
	IgnoredEmails []string
}

// ObsoletePrefix is prepended to a member's name when marking it obsolete.
const ObsoletePrefix = "OBSOLETE - "
