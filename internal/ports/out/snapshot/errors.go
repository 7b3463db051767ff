package snapshot

import "errors"

var (
	// ErrNotFound indicates the requested snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorrupt indicates the snapshot exists but does not parse as a
	// member sequence.
	ErrCorrupt = errors.New("snapshot corrupt")
)
