package runlog

import (
	"context"
	"sync"

	"github.com/harborline/sso-migrate/internal/ports/out/runlog"
)

// Recorder is an in-memory implementation of runlog.Recorder.
// It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	recs []runlog.Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, rec runlog.Record) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, cloneRecord(rec))
	return nil
}

func (r *Recorder) ListByRun(ctx context.Context, runID string) ([]runlog.Record, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]runlog.Record, 0)
	for _, rec := range r.recs {
		if rec.RunID == runID {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

var _ runlog.Recorder = (*Recorder)(nil)

func cloneRecord(rec runlog.Record) runlog.Record {
	out := rec
	out.Errors = append([]string(nil), rec.Errors...)
	return out
}
