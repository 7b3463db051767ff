package domain

// TeamID identifies one tenant team on the platform.
type TeamID string

// SubjectID is the opaque account identifier assigned by the platform.
// It is stable across renames; its format is controlled by the vendor.
type SubjectID string

// ProjectID identifies a project within a team.
type ProjectID string
