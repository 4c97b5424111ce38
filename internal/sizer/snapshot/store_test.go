package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

type scriptedEvaluator struct {
	mu      sync.Mutex
	results []*model.Result
	errs    []error
	calls   int
}

func (e *scriptedEvaluator) Evaluate(context.Context) (*model.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.calls
	e.calls++
	return e.results[i], e.errs[i]
}

func result(n int) *model.Result {
	return &model.Result{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
		Candidates:  make([]model.CandidateSpec, n),
		Frontier:    make([]model.CandidateSpec, 1),
		Baseline:    []model.CandidateSpec{},
	}
}

func TestStoreLifecycle(t *testing.T) {
	first, second := result(3), result(5)
	boom := errors.New("boom")
	ev := &scriptedEvaluator{
		results: []*model.Result{first, nil, second},
		errs:    []error{nil, boom, nil},
	}
	s := NewStore(ev)

	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.Ready())
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateReady, s.State())
	got, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, got)

	// a failed refresh keeps serving the previous snapshot
	assert.ErrorIs(t, s.Refresh(context.Background()), boom)
	assert.Equal(t, StateFailed, s.State())
	got, err = s.Current()
	require.NoError(t, err)
	assert.Same(t, first, got)
	st := s.Status()
	assert.Equal(t, "boom", st.Error)
	assert.Equal(t, first.ID, st.ID)
	assert.Equal(t, 3, st.Candidates)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateReady, s.State())
	got, _ = s.Current()
	assert.Same(t, second, got)
	assert.Empty(t, s.Status().Error)
}

func TestStoreFirstRefreshFails(t *testing.T) {
	s := NewStore(&scriptedEvaluator{results: []*model.Result{nil}, errs: []error{errors.New("bad csv")}})

	assert.Error(t, s.Refresh(context.Background()))
	assert.Equal(t, StateFailed, s.State())
	assert.False(t, s.Ready())

	st := s.Status()
	assert.Equal(t, StateFailed, st.State)
	assert.Equal(t, uuid.Nil, st.ID)
	assert.Equal(t, "bad csv", st.Error)
}

func TestStoreConcurrentRefresh(t *testing.T) {
	const n = 8
	ev := &scriptedEvaluator{results: make([]*model.Result, n), errs: make([]error, n)}
	for i := range ev.results {
		ev.results[i] = result(i)
	}
	s := NewStore(ev)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Refresh(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, n, ev.calls)
	assert.Equal(t, StateReady, s.State())
	assert.True(t, s.Ready())
}

type contextEvaluator struct{}

func (contextEvaluator) Evaluate(ctx context.Context) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result(2), nil
}

func TestStoreRecoversFromCancelledRefresh(t *testing.T) {
	s := NewStore(contextEvaluator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Refresh(ctx), context.Canceled)
	assert.Equal(t, StateFailed, s.State())

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateReady, s.State())
	assert.True(t, s.Ready())

	// a cancelled reload after a good one still keeps the snapshot
	assert.ErrorIs(t, s.Refresh(ctx), context.Canceled)
	assert.Equal(t, StateFailed, s.State())
	_, err := s.Current()
	assert.NoError(t, err)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateReady, s.State())
}
