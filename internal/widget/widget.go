// Package widget exposes the entry points a front end calls in response to user
// events and returns what should be rendered.
package widget

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/conorfennell/sqlgroups/internal/classifier"
	"github.com/conorfennell/sqlgroups/internal/domain"
	"github.com/conorfennell/sqlgroups/internal/quiz"
	"github.com/conorfennell/sqlgroups/internal/storage"
)

// Kind tells a front end which view to draw.
type Kind int

const (
	KindFound Kind = iota
	KindNotFound
	KindEmpty
	KindQuiz
	KindFeedback
)

// QuizView is the visible part of the quiz.
type QuizView struct {
	Active     bool
	Question   string
	Feedback   *quiz.Feedback
	Generation uint64
}

// Render is a render instruction.
type Render struct {
	Kind          Kind
	Category      domain.Category // KindFound
	NotFoundToken string          // KindNotFound
	Quiz          QuizView        // KindQuiz and KindFeedback
}

// AnswerStore records quiz answers.
type AnswerStore interface {
	InsertAnswer(ctx context.Context, a storage.Answer) (storage.Answer, error)
}

// Widget connects the classifier and a quiz session.
type Widget struct {
	session *quiz.Session
	logger  *zap.Logger
}

// New returns a widget with an inactive quiz. Answers are recorded to store when
// it is not nil.
func New(store AnswerStore, logger *zap.Logger, opts ...quiz.Option) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Widget{logger: logger}

	opts = append([]quiz.Option{quiz.WithLogger(logger.Named("quiz"))}, opts...)
	if store != nil {
		opts = append(opts, quiz.WithAnswerHook(func(fb quiz.Feedback) {
			w.record(store, fb)
		}))
	}
	w.session = quiz.NewSession(opts...)
	return w
}

// SubmitCommand classifies text.
func (w *Widget) SubmitCommand(text string) Render {
	res := classifier.Classify(text)
	w.logger.Debug("classify", zap.String("token", res.Token), zap.Stringer("status", res.Status))

	switch res.Status {
	case classifier.Found:
		return Render{Kind: KindFound, Category: res.Category}
	case classifier.NotFound:
		return Render{Kind: KindNotFound, NotFoundToken: res.Token}
	default:
		return Render{Kind: KindEmpty}
	}
}

// SelectCategory shows the category while the quiz is off, and answers the
// current question while it is on.
func (w *Widget) SelectCategory(key domain.Key) Render {
	if !w.session.Snapshot().State.Active {
		c, ok := domain.Lookup(key)
		if !ok {
			return Render{Kind: KindNotFound, NotFoundToken: string(key)}
		}
		return Render{Kind: KindFound, Category: c}
	}

	if _, ok := w.session.Answer(key); !ok {
		w.logger.Debug("answer ignored", zap.Stringer("guess", key))
	}
	return w.quizRender()
}

// ToggleQuiz switches quiz mode on or off.
func (w *Widget) ToggleQuiz() Render {
	snap := w.session.Toggle()
	return Render{Kind: KindQuiz, Quiz: view(snap)}
}

// Current returns the quiz as it stands, for front ends that poll.
func (w *Widget) Current() Render {
	return w.quizRender()
}

// Close stops any pending quiz advance.
func (w *Widget) Close() {
	w.session.Close()
}

func (w *Widget) quizRender() Render {
	snap := w.session.Snapshot()
	r := Render{Kind: KindQuiz, Quiz: view(snap)}
	if snap.Feedback != nil {
		r.Kind = KindFeedback
	}
	return r
}

func (w *Widget) record(store AnswerStore, fb quiz.Feedback) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := store.InsertAnswer(ctx, storage.Answer{
		Command:  fb.Command,
		Expected: fb.Expected,
		Guess:    fb.Guess,
		Correct:  fb.Correct,
	})
	if err != nil {
		w.logger.Warn("failed to record answer", zap.Error(err))
	}
}

func view(snap quiz.Snapshot) QuizView {
	return QuizView{
		Active:     snap.State.Active,
		Question:   snap.State.Command,
		Feedback:   snap.Feedback,
		Generation: snap.State.Generation,
	}
}

func (r Render) IsFound() bool { return r.Kind == KindFound }
func (r Render) IsNotFound() bool { return r.Kind == KindNotFound }
func (r Render) IsEmpty() bool { return r.Kind == KindEmpty }

// IsQuiz reports whether the render shows the quiz panel, with or without feedback.
func (r Render) IsQuiz() bool { return r.Kind == KindQuiz || r.Kind == KindFeedback }
