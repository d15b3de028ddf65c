package workflow_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lbastos/worklane/internal/workflow"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "MatchesByKind",
			err:    workflow.NotFound("milestone %s not found", "x"),
			target: workflow.ErrNotFound,
			want:   true,
		},
		{
			name:   "DifferentKind",
			err:    workflow.Validation("amount must be positive"),
			target: workflow.ErrState,
			want:   false,
		},
		{
			name:   "WrappedChain",
			err:    fmt.Errorf("saving: %w", workflow.Precondition("deliverables incomplete")),
			target: workflow.ErrPrecondition,
			want:   true,
		},
		{
			name:   "WrapKeepsKind",
			err:    workflow.Wrap(workflow.KindState, "delivery is read-only", errors.New("boom")),
			target: workflow.ErrState,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("db error")
	err := workflow.Wrap(workflow.KindNotFound, "loading phase", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "loading phase", err.Error())
}

func TestGuard_SerializesSameProject(t *testing.T) {
	guard := workflow.NewGuard()
	projectID := uuid.New()

	const workers = 8

	counter := 0

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock := guard.Lock(projectID)
			defer unlock()

			// Not atomic on purpose; the guard makes it safe.
			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestGuard_IndependentProjects(t *testing.T) {
	guard := workflow.NewGuard()

	unlockA := guard.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})

	go func() {
		unlockB := guard.Lock(uuid.New())
		unlockB()
		close(done)
	}()

	<-done // Must not deadlock while A is held.
}
