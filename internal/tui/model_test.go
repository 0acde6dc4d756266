package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/sqlgroups/internal/domain"
	"github.com/conorfennell/sqlgroups/internal/quiz"
	"github.com/conorfennell/sqlgroups/internal/widget"
)

// captureScheduler keeps the latest callback instead of starting a timer.
type captureScheduler struct {
	fn func()
}

func (c *captureScheduler) AfterFunc(_ time.Duration, fn func()) func() bool {
	c.fn = fn
	return func() bool { return true }
}

func newTestModel(t *testing.T, sched quiz.Scheduler) Model {
	t.Helper()
	w := widget.New(nil, nil,
		quiz.WithScheduler(sched),
		quiz.WithPicker(quiz.PickerFunc(func(n int) int { return 4 % n })), // INSERT
	)
	t.Cleanup(w.Close)
	return New(w)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typed(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestClassifyFromInput(t *testing.T) {
	m := newTestModel(t, &captureScheduler{})

	m = send(t, m, typed("update t set a = 1"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.result)
	assert.True(t, m.result.IsFound())
	assert.Equal(t, domain.DML, m.result.Category.Key)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Data Manipulation Language")

	m = send(t, m, typed("vacuum"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.result.IsNotFound())
	assert.Contains(t, m.View(), "VACUUM")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.result.IsEmpty())
	assert.Contains(t, m.View(), "Please type a SQL command.")
}

func TestDigitsPickGroups(t *testing.T) {
	m := newTestModel(t, &captureScheduler{})

	m = send(t, m, typed("3"))
	require.NotNil(t, m.result)
	assert.Equal(t, domain.DCL, m.result.Category.Key)
	assert.Empty(t, m.input.Value())

	// Digits inside a command are plain input.
	m = send(t, m, typed("s"), typed("1"))
	assert.Equal(t, "s1", m.input.Value())
}

func TestQuizMode(t *testing.T) {
	sched := &captureScheduler{}
	m := newTestModel(t, sched)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.True(t, m.quiz.Active)
	assert.Equal(t, "INSERT", m.quiz.Question)
	assert.Contains(t, m.View(), "exit quiz")

	m = send(t, m, typed("2"))
	require.NotNil(t, m.quiz.Feedback)
	assert.True(t, m.quiz.Feedback.Correct)
	assert.Contains(t, m.View(), "Correct! Next question...")
	assert.Nil(t, m.result)

	require.NotNil(t, sched.fn)
	m = send(t, m, runMsg{fn: sched.fn})
	assert.Nil(t, m.quiz.Feedback)
	assert.True(t, m.quiz.Active)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.quiz.Active)
	assert.Contains(t, m.View(), "start quiz")
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &captureScheduler{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
