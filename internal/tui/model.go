// Package tui is the terminal front end: a bubbletea program around the widget.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/domain"
	"github.com/conorfennell/sqlgroups/internal/quiz"
	"github.com/conorfennell/sqlgroups/internal/widget"
)

// runMsg carries a fired quiz timer into the event loop so state only changes inside Update.
type runMsg struct{ fn func() }

// programScheduler delivers quiz timers to a running program.
type programScheduler struct {
	send func(tea.Msg)
}

func (p *programScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, func() { p.send(runMsg{fn: fn}) }).Stop
}

// Model is the bubbletea model.
type Model struct {
	widget *widget.Widget
	input  textinput.Model
	result *widget.Render // last classification or category shown
	quiz   widget.QuizView
	styles styles
}

// New returns a model driving w.
func New(w *widget.Widget) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. SELECT * FROM users"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return Model{
		widget: w,
		input:  ti,
		quiz:   w.Current().Quiz,
		styles: defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg.fn()
		m.quiz = m.widget.Current().Quiz
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			m.quiz = m.widget.ToggleQuiz().Quiz
			return m, nil
		case "enter":
			r := m.widget.SubmitCommand(m.input.Value())
			m.result = &r
			m.input.SetValue("")
			return m, nil
		case "1", "2", "3", "4":
			if m.input.Value() == "" {
				m.selectCategory(int(msg.String()[0] - '1'))
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) selectCategory(i int) {
	keys := domain.Keys()
	if i < 0 || i >= len(keys) {
		return
	}
	r := m.widget.SelectCategory(keys[i])
	if r.IsQuiz() {
		m.quiz = r.Quiz
		return
	}
	m.result = &r
	m.quiz = m.widget.Current().Quiz
}

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.title.Render("SQL command groups"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	var groups []string
	for i, c := range domain.Table() {
		groups = append(groups, fmt.Sprintf("%s %s", s.muted.Render(fmt.Sprintf("[%d]", i+1)), s.accent(c.Color).Render(string(c.Key))))
	}
	b.WriteString(strings.Join(groups, "   "))
	b.WriteString("\n\n")

	if m.result != nil {
		b.WriteString(s.panel.Render(m.renderResult(*m.result)))
		b.WriteString("\n")
	}
	if m.quiz.Active {
		b.WriteString(s.panel.Render(m.renderQuiz()))
		b.WriteString("\n")
	}

	quizHelp := "start quiz"
	if m.quiz.Active {
		quizHelp = "exit quiz"
	}
	b.WriteString(s.muted.Render(fmt.Sprintf("enter: check command • 1-4: pick group • ctrl+t: %s • esc: quit", quizHelp)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderResult(r widget.Render) string {
	s := m.styles
	switch {
	case r.IsFound():
		return renderCategory(s, r.Category)
	case r.IsNotFound():
		return s.errText.Render("The command ") + s.code.Render(r.NotFoundToken) +
			s.errText.Render(" was not found or is not one of the main examples. Try another one!")
	default:
		return s.warning.Render("Please type a SQL command.")
	}
}

func (m Model) renderQuiz() string {
	s := m.styles
	var b strings.Builder
	b.WriteString("Which group does the command ")
	b.WriteString(s.code.Render(m.quiz.Question))
	b.WriteString(" belong to?\n")

	fb := m.quiz.Feedback
	switch {
	case fb == nil:
		b.WriteString(s.muted.Render("Pick one of the groups above to answer."))
	case fb.Correct:
		b.WriteString(s.correct.Render("Correct! Next question..."))
	default:
		b.WriteString(s.errText.Render(fmt.Sprintf("Wrong! The answer was %s. Try the next one.", fb.Expected)))
	}
	return b.String()
}

func renderCategory(s styles, c domain.Category) string {
	var b strings.Builder
	b.WriteString(s.accent(c.Color).Render(string(c.Key)))
	b.WriteString("  ")
	b.WriteString(c.Name)
	b.WriteString("\n")
	b.WriteString(c.Description)
	b.WriteString("\nExamples: ")
	ex := make([]string, len(c.Examples))
	for i, e := range c.Examples {
		ex[i] = s.code.Render(e)
	}
	b.WriteString(strings.Join(ex, " "))
	return b.String()
}

// Run starts the terminal UI and blocks until the user quits.
func Run(store widget.AnswerStore, logger *zap.Logger, pacing quiz.Pacing) error {
	sched := &programScheduler{}
	w := widget.New(store, logger, quiz.WithPacing(pacing), quiz.WithScheduler(sched))
	defer w.Close()

	p := tea.NewProgram(New(w))
	sched.send = p.Send
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}
