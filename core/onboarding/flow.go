package onboarding

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrUnanswered    = errors.New("the current question is not answered")
	ErrInvalidAnswer = errors.New("invalid answer")
	ErrFlowComplete  = errors.New("onboarding already complete")
)

type (
	// Submitter receives the full answer set at the end of a Flow.
	Submitter interface {
		SubmitAnswers(ctx context.Context, answers Answers) error
	}

	// SubmitterFunc adapts a function to the Submitter interface.
	SubmitterFunc func(ctx context.Context, answers Answers) error

	// Flow walks a user through the questionnaire, one question at a time.
	// A Flow is not safe for concurrent use.
	Flow struct {
		submitter Submitter
		step      int
		answers   Answers
		complete  bool
	}
)

func (f SubmitterFunc) SubmitAnswers(ctx context.Context, answers Answers) error {
	return f(ctx, answers)
}

func NewFlow(submitter Submitter) *Flow {
	return &Flow{submitter: submitter, answers: make(Answers)}
}

// Step returns the 0-based index of the current question.
func (f *Flow) Step() int { return f.step }

func (f *Flow) Current() Question { return Questions[f.step] }

func (f *Flow) IsLast() bool { return f.step == len(Questions)-1 }

func (f *Flow) Complete() bool { return f.complete }

// Answers returns a copy of the recorded answers.
func (f *Flow) Answers() Answers { return f.answers.Clone() }

// Answer records answer for the current question, replacing any previous one.
func (f *Flow) Answer(answer string) error {
	if f.complete {
		return ErrFlowComplete
	}
	q := f.Current()
	if !q.Accepts(answer) {
		return errors.Wrapf(ErrInvalidAnswer, "question %d: %q", q.ID, answer)
	}
	f.answers[q.ID] = answer
	return nil
}

// Next moves to the following question if the current one is answered.
// On the last question, it submits every answer and completes the flow.
// A failed submission keeps the flow on the last question with its answers.
func (f *Flow) Next(ctx context.Context) error {
	if f.complete {
		return ErrFlowComplete
	}
	if _, ok := f.answers[f.Current().ID]; !ok {
		return ErrUnanswered
	}
	if !f.IsLast() {
		f.step++
		return nil
	}

	if err := f.submitter.SubmitAnswers(ctx, f.answers.Clone()); err != nil {
		return errors.Wrap(err, "submitting onboarding")
	}
	f.complete = true
	return nil
}

// Previous moves back one question. It returns false on the first question.
func (f *Flow) Previous() bool {
	if f.complete || f.step == 0 {
		return false
	}
	f.step--
	return true
}
