package clock

import "time"

// Clock provides time to the application. An interface keeps snapshot
// naming deterministic in tests.
type Clock interface {
	Now() time.Time
}
