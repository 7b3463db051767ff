package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/snapshot"
)

// Store is an in-memory implementation of snapshot.Store for tests and
// rehearsals. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	// SaveErr, when set, makes every Save fail.
	SaveErr error

	byPath  map[string][]domain.Member
	corrupt map[string]bool
	seq     int
}

func NewStore() *Store {
	return &Store{
		byPath:  make(map[string][]domain.Member),
		corrupt: make(map[string]bool),
	}
}

func (s *Store) Save(ctx context.Context, teamID domain.TeamID, members []domain.Member) (string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.seq++
	path := fmt.Sprintf("mem://team-%s-backup-%d.json", teamID, s.seq)
	s.byPath[path] = cloneMembers(members)
	return path, nil
}

func (s *Store) Load(ctx context.Context, path string) ([]domain.Member, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.corrupt[path] {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrCorrupt, path)
	}
	ms, ok := s.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrNotFound, path)
	}
	return cloneMembers(ms), nil
}

// Put seeds a snapshot at a caller-chosen path.
func (s *Store) Put(path string, members []domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPath[path] = cloneMembers(members)
}

// PutCorrupt seeds a path whose load fails with snapshot.ErrCorrupt.
func (s *Store) PutCorrupt(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corrupt[path] = true
}

var _ snapshot.Store = (*Store)(nil)

func cloneMembers(ms []domain.Member) []domain.Member {
	out := make([]domain.Member, len(ms))
	copy(out, ms)
	for i, m := range ms {
		if m.Projects == nil {
			continue
		}
		p := make(map[domain.ProjectID]domain.ProjectRoles, len(m.Projects))
		for id, pr := range m.Projects {
			p[id] = pr
		}
		out[i].Projects = p
	}
	return out
}
