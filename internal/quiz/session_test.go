package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualScheduler records scheduled callbacks so tests can fire them on demand.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{delay: d, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		was := !task.stopped
		task.stopped = true
		return was
	}
}

func (m *manualScheduler) last() *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return nil
	}
	return m.tasks[len(m.tasks)-1]
}

func TestSessionAnswerSchedulesAdvance(t *testing.T) {
	sched := &manualScheduler{}
	var answers []Feedback
	s := NewSession(
		WithScheduler(sched),
		WithPicker(seqPicker(0, 3)), // CREATE, then SELECT
		WithAnswerHook(func(fb Feedback) { answers = append(answers, fb) }),
	)

	snap := s.Toggle()
	require.True(t, snap.State.Active)
	require.Equal(t, "CREATE", snap.State.Command)

	fb, ok := s.Answer(domain.DDL)
	require.True(t, ok)
	assert.True(t, fb.Correct)

	task := sched.last()
	require.NotNil(t, task)
	assert.Equal(t, DefaultPacing().Correct, task.delay)

	snap = s.Snapshot()
	require.NotNil(t, snap.Feedback)
	assert.True(t, snap.Feedback.Correct)

	task.fn()
	snap = s.Snapshot()
	assert.Nil(t, snap.Feedback)
	assert.Equal(t, "SELECT", snap.State.Command)
	assert.Equal(t, domain.DML, snap.State.Expected)
	require.Len(t, answers, 1)
}

func TestSessionIncorrectRevealsExpected(t *testing.T) {
	sched := &manualScheduler{}
	s := NewSession(WithScheduler(sched), WithPicker(fixedPicker(7))) // GRANT
	s.Toggle()

	fb, ok := s.Answer(domain.TCL)
	require.True(t, ok)
	assert.False(t, fb.Correct)
	assert.Equal(t, domain.DCL, fb.Expected)
	assert.Equal(t, DefaultPacing().Incorrect, sched.last().delay)
}

func TestSessionToggleOffDuringDelay(t *testing.T) {
	sched := &manualScheduler{}
	s := NewSession(WithScheduler(sched))
	s.Toggle()
	_, ok := s.Answer(domain.DDL)
	require.True(t, ok)
	task := sched.last()

	snap := s.Toggle()
	require.False(t, snap.State.Active)
	assert.True(t, task.stopped)

	// A callback that already fired past cancellation must not resurrect the quiz.
	task.fn()
	snap = s.Snapshot()
	assert.False(t, snap.State.Active)
	assert.Empty(t, snap.State.Command)
}

func TestSessionRejectsAnswers(t *testing.T) {
	sched := &manualScheduler{}
	s := NewSession(WithScheduler(sched))

	_, ok := s.Answer(domain.DDL)
	assert.False(t, ok, "inactive quiz accepts no answers")

	s.Toggle()
	_, ok = s.Answer(domain.DDL)
	require.True(t, ok)
	_, ok = s.Answer(domain.DML)
	assert.False(t, ok, "question already answered")
	assert.Len(t, sched.tasks, 1)
}

func TestSessionWithTimers(t *testing.T) {
	s := NewSession(WithPacing(Pacing{Correct: 5 * time.Millisecond, Incorrect: 5 * time.Millisecond}))
	defer s.Close()

	start := s.Toggle().State.Generation
	_, ok := s.Answer(domain.DDL)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.Feedback == nil && snap.State.Generation == start+1
	}, time.Second, time.Millisecond)
	assert.True(t, s.Snapshot().State.Active)
}
