// Package snapshot holds the latest evaluation served by the API and drives
// its refresh lifecycle.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/looplab/fsm"

	fsmutil "github.com/autopeer-io/edfsizer/internal/pkg/util/fsm"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

const (
	StateIdle       = "idle"
	StateEvaluating = "evaluating"
	StateReady      = "ready"
	StateFailed     = "failed"
)

const (
	// EventEvaluate starts a refresh from any settled state.
	EventEvaluate = "event_evaluate"
	EventSuccess  = "event_success"
	EventFail     = "event_fail"
)

// ErrNotReady is returned while no evaluation has succeeded yet.
var ErrNotReady = errors.New("no snapshot available yet")

// Evaluator produces a fresh result. *service.Service satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context) (*model.Result, error)
}

// Status summarises the store for the snapshot endpoint.
type Status struct {
	State       string    `json:"state"`
	ID          uuid.UUID `json:"id,omitzero"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
	Candidates  int       `json:"candidates"`
	Frontier    int       `json:"frontier"`
	Baseline    int       `json:"baseline"`
	// Error is the last refresh failure; the previous result is still served.
	Error string `json:"error,omitempty"`
}

// Store keeps the last good Result. A failed refresh never discards it.
type Store struct {
	evaluator Evaluator

	// refreshMu serialises refreshes so the machine only sees one at a time.
	refreshMu sync.Mutex
	fsm       *fsm.FSM

	mu      sync.RWMutex
	current *model.Result
	lastErr error
}

func NewStore(evaluator Evaluator) *Store {
	s := &Store{evaluator: evaluator}

	events := fsm.Events{
		{Name: EventEvaluate, Src: []string{StateIdle, StateReady, StateFailed}, Dst: StateEvaluating},
		{Name: EventSuccess, Src: []string{StateEvaluating}, Dst: StateReady},
		{Name: EventFail, Src: []string{StateEvaluating}, Dst: StateFailed},
	}

	callbacks := fsm.Callbacks{
		"enter_" + StateReady:  fsmutil.WrapEvent(s.actionEnterReady),
		"enter_" + StateFailed: fsmutil.WrapEvent(s.actionEnterFailed),
	}

	s.fsm = fsm.NewFSM(StateIdle, events, callbacks)
	return s
}

// Refresh runs one evaluation and publishes its result on success.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	logger := logr.FromContextOrDiscard(ctx).WithName("snapshot")
	// fsm leaves a transition pending when its context is cancelled, so the
	// machine runs on a context that outlives the caller.
	fctx := context.WithoutCancel(ctx)

	if err := s.fsm.Event(fctx, EventEvaluate); fsmutil.IsRealError(err) {
		return err
	}

	res, err := s.evaluator.Evaluate(ctx)
	if err != nil {
		logger.Error(err, "Evaluation failed, keeping previous snapshot")
		if ferr := s.fsm.Event(fctx, EventFail, err); fsmutil.IsRealError(ferr) {
			return errors.Join(err, ferr)
		}
		return err
	}

	if err := s.fsm.Event(fctx, EventSuccess, res); fsmutil.IsRealError(err) {
		return err
	}
	logger.V(1).Info("Snapshot published", "id", res.ID)
	return nil
}

// actionEnterReady is a "Side-Effect" callback.
func (s *Store) actionEnterReady(_ context.Context, e *fsm.Event) error {
	res := e.Args[0].(*model.Result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = res
	s.lastErr = nil
	return nil
}

// actionEnterFailed is a "Side-Effect" callback.
func (s *Store) actionEnterFailed(_ context.Context, e *fsm.Event) error {
	err, _ := e.Args[0].(error)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	return nil
}

// Current returns the last published result or ErrNotReady.
func (s *Store) Current() (*model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotReady
	}
	return s.current, nil
}

// Ready reports whether a result has been published.
func (s *Store) Ready() bool {
	_, err := s.Current()
	return err == nil
}

// State is the lifecycle state of the most recent refresh.
func (s *Store) State() string {
	return s.fsm.Current()
}

func (s *Store) Status() Status {
	st := Status{State: s.State()}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	if c := s.current; c != nil {
		st.ID = c.ID
		st.GeneratedAt = c.GeneratedAt
		st.Candidates = len(c.Candidates)
		st.Frontier = len(c.Frontier)
		st.Baseline = len(c.Baseline)
	}
	return st
}
