package quiz

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

// Scheduler runs fn after d. The returned stop function cancels it if it has not fired.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	State    State
	Feedback *Feedback // last answer to the current question, nil until answered
}

// Session owns the quiz State and schedules the automatic advance after each answer.
// It is safe for concurrent use since fired timers run on their own goroutine.
type Session struct {
	mu       sync.Mutex
	state    State
	feedback *Feedback
	stop     func() bool

	picker   Picker
	pacing   Pacing
	sched    Scheduler
	logger   *zap.Logger
	onAnswer func(Feedback)
}

// Option configures a Session.
type Option func(*Session)

func WithPicker(p Picker) Option { return func(s *Session) { s.picker = p } }
func WithPacing(p Pacing) Option { return func(s *Session) { s.pacing = p } }
func WithScheduler(sc Scheduler) Option { return func(s *Session) { s.sched = sc } }
func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.logger = l } }

// WithAnswerHook registers fn to be called, outside the session lock, after every accepted answer.
func WithAnswerHook(fn func(Feedback)) Option { return func(s *Session) { s.onAnswer = fn } }

// NewSession returns an inactive session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		picker: DefaultPicker,
		pacing: DefaultPacing(),
		sched:  timerScheduler{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state and feedback.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Toggle switches quiz mode and returns the new snapshot. Turning the quiz off
// cancels any pending advance.
func (s *Session) Toggle() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	var q *domain.Question
	s.state, q = Toggle(s.state, s.picker)
	s.feedback = nil

	if q != nil {
		s.logger.Debug("quiz started", zap.String("command", q.Command), zap.Uint64("generation", s.state.Generation))
	} else {
		s.logger.Debug("quiz stopped", zap.Uint64("generation", s.state.Generation))
	}
	return s.snapshotLocked()
}

// Answer submits guess for the current question and schedules the next one.
// It reports false when the quiz is inactive or the question was already answered.
func (s *Session) Answer(guess domain.Key) (Feedback, bool) {
	s.mu.Lock()
	next, fb, ok := Submit(s.state, guess, s.pacing)
	if !ok {
		s.mu.Unlock()
		return Feedback{}, false
	}
	s.state = next
	s.feedback = &fb

	s.cancelLocked()
	gen := fb.Generation
	s.stop = s.sched.AfterFunc(fb.Delay, func() { s.advance(gen) })
	s.mu.Unlock()

	s.logger.Debug("quiz answer",
		zap.String("command", fb.Command),
		zap.Stringer("guess", fb.Guess),
		zap.Stringer("expected", fb.Expected),
		zap.Bool("correct", fb.Correct),
	)
	if s.onAnswer != nil {
		s.onAnswer(fb)
	}
	return fb, true
}

// Close cancels any pending advance.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, q, ok := Advance(s.state, gen, s.picker)
	if !ok {
		s.logger.Debug("stale quiz advance ignored", zap.Uint64("generation", gen))
		return
	}
	s.state = next
	s.feedback = nil
	s.stop = nil
	s.logger.Debug("next question", zap.String("command", q.Command), zap.Uint64("generation", s.state.Generation))
}

func (s *Session) cancelLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}
	return snap
}
