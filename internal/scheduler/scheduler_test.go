package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

type mockRecorder struct {
	mu   sync.Mutex
	runs map[string][]bool
}

func (m *mockRecorder) ObserveJob(job string, _ time.Duration, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runs == nil {
		m.runs = make(map[string][]bool)
	}
	m.runs[job] = append(m.runs[job], ok)
}

func TestScheduler_Run(t *testing.T) {
	rec := &mockRecorder{}
	s := New(context.Background(), time.Second, logger.New()).WithRecorder(rec)

	s.run("deletions", func(ctx context.Context) (int, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return 2, nil
	})
	s.run("deletions", func(ctx context.Context) (int, error) {
		return 0, errors.New("db down")
	})

	assert.Equal(t, []bool{true, false}, rec.runs["deletions"])
}

func TestScheduler_Add_InvalidSpec(t *testing.T) {
	s := New(context.Background(), time.Second, logger.New())
	err := s.Add("broken", "not a schedule", func(ctx context.Context) (int, error) { return 0, nil })
	require.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	rec := &mockRecorder{}
	s := New(context.Background(), time.Second, logger.New()).WithRecorder(rec)

	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) (int, error) {
		select {
		case ran <- struct{}{}:
		default:
		}
		return 1, nil
	}))
	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)
}
