// Package quiz implements the category quiz: a two-state machine (inactive, active)
// whose transitions are pure functions over an explicit State value.
package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

func (f PickerFunc) IntN(n int) int { return f(n) }

// DefaultPicker draws from the shared math/rand/v2 source.
var DefaultPicker Picker = PickerFunc(rand.IntN)

// Pacing holds how long feedback stays on screen before the next question.
type Pacing struct {
	Correct   time.Duration
	Incorrect time.Duration
}

// DefaultPacing matches the widget's original timings.
func DefaultPacing() Pacing {
	return Pacing{
		Correct:   1500 * time.Millisecond,
		Incorrect: 2500 * time.Millisecond,
	}
}

// State is the whole quiz session. Expected is set whenever Active is true.
// Generation changes on every draw and on deactivation; a delayed advance
// only applies while the generation it captured is still current.
type State struct {
	Active     bool
	Expected   domain.Key
	Command    string
	Answered   bool
	Generation uint64
}

// Feedback is the result of answering the current question.
type Feedback struct {
	Correct    bool
	Guess      domain.Key
	Expected   domain.Key
	Command    string
	Delay      time.Duration
	Generation uint64
}

// Toggle flips the quiz between inactive and active. Activating draws the first question.
func Toggle(s State, p Picker) (State, *domain.Question) {
	if s.Active {
		return State{Generation: s.Generation + 1}, nil
	}
	s.Active = true
	next, q := Draw(s, p)
	return next, &q
}

// Draw picks a question uniformly over every (command, category) pair in the table.
// Categories with more examples are asked proportionally more often.
func Draw(s State, p Picker) (State, domain.Question) {
	qs := domain.Questions()
	q := qs[p.IntN(len(qs))]

	s.Expected = q.Key
	s.Command = q.Command
	s.Answered = false
	s.Generation++
	return s, q
}

// Submit checks guess against the expected answer. It reports false, leaving s
// untouched, when the quiz is inactive or the current question was already answered.
// Unknown keys are treated as wrong answers.
func Submit(s State, guess domain.Key, pacing Pacing) (State, Feedback, bool) {
	if !s.Active || s.Answered {
		return s, Feedback{}, false
	}

	fb := Feedback{
		Correct:    guess.Valid() && guess == s.Expected,
		Guess:      guess,
		Expected:   s.Expected,
		Command:    s.Command,
		Generation: s.Generation,
	}
	if fb.Correct {
		fb.Delay = pacing.Correct
	} else {
		fb.Delay = pacing.Incorrect
	}

	s.Answered = true
	return s, fb, true
}

// Advance draws the next question if gen still identifies the current question
// of an active quiz. Stale advances are ignored.
func Advance(s State, gen uint64, p Picker) (State, *domain.Question, bool) {
	if !s.Active || gen != s.Generation {
		return s, nil, false
	}
	next, q := Draw(s, p)
	return next, &q, true
}
