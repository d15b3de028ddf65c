package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// Guard serializes mutating operations per project. Operations like submit
// and markPaid read several nested entities before writing, so interleaved
// writers against the same project are not safe.
type Guard struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*projectLock
}

type projectLock struct {
	mu   sync.Mutex
	refs int
}

func NewGuard() *Guard {
	return &Guard{locks: make(map[uuid.UUID]*projectLock)}
}

// Lock acquires the lock for a project id and returns the matching unlock.
// Lock entries are dropped once the last holder releases them.
func (g *Guard) Lock(projectID uuid.UUID) (unlock func()) {
	g.mu.Lock()

	l, ok := g.locks[projectID]
	if !ok {
		l = &projectLock{}
		g.locks[projectID] = l
	}

	l.refs++
	g.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, projectID)
		}
		g.mu.Unlock()
	}
}
