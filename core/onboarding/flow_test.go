package onboarding_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelasdev/kelas/core/onboarding"
)

type recordingSubmitter struct {
	calls []onboarding.Answers
	err   error
}

func (s *recordingSubmitter) SubmitAnswers(_ context.Context, answers onboarding.Answers) error {
	s.calls = append(s.calls, answers)
	return s.err
}

// firstOptions answers every question with its first english option.
func firstOptions() []string {
	answers := make([]string, len(onboarding.Questions))
	for i, q := range onboarding.Questions {
		answers[i] = q.Options.En[0]
	}
	return answers
}

func TestFlow_Navigation(t *testing.T) {
	ctx := context.Background()
	sub := new(recordingSubmitter)
	f := onboarding.NewFlow(sub)

	assert.Equal(t, 0, f.Step())
	assert.False(t, f.Previous(), "previous is floored at the first question")
	assert.Equal(t, 0, f.Step())

	assert.True(t, errors.Is(f.Next(ctx), onboarding.ErrUnanswered))
	assert.Equal(t, 0, f.Step())

	assert.True(t, errors.Is(f.Answer("Expert wizard"), onboarding.ErrInvalidAnswer))
	require.NoError(t, f.Answer("Complete beginner"))
	require.NoError(t, f.Answer("Mahir"), "answers are accepted in any language")
	require.NoError(t, f.Next(ctx))
	assert.Equal(t, 1, f.Step())
	assert.Equal(t, onboarding.QuestionLanguage, f.Current().ID)

	assert.True(t, f.Previous())
	assert.Equal(t, 0, f.Step())
	assert.Equal(t, "Mahir", f.Answers()[onboarding.QuestionExperience], "going back keeps answers")
	assert.Empty(t, sub.calls)
}

func TestFlow_NextOnUnansweredLastQuestion(t *testing.T) {
	ctx := context.Background()
	sub := new(recordingSubmitter)
	f := onboarding.NewFlow(sub)

	answers := firstOptions()
	for _, a := range answers[:len(answers)-1] {
		require.NoError(t, f.Answer(a))
		require.NoError(t, f.Next(ctx))
	}
	require.True(t, f.IsLast())

	err := f.Next(ctx)
	assert.True(t, errors.Is(err, onboarding.ErrUnanswered))
	assert.Equal(t, len(answers)-1, f.Step())
	assert.False(t, f.Complete())
	assert.Empty(t, sub.calls, "nothing is submitted until the last question is answered")
}

func TestFlow_Submit(t *testing.T) {
	ctx := context.Background()
	sub := new(recordingSubmitter)
	f := onboarding.NewFlow(sub)

	answers := firstOptions()
	for _, a := range answers {
		require.NoError(t, f.Answer(a))
		require.NoError(t, f.Next(ctx))
	}

	assert.True(t, f.Complete())
	require.Len(t, sub.calls, 1)
	want := onboarding.Answers{}
	for i, q := range onboarding.Questions {
		want[q.ID] = answers[i]
	}
	assert.Equal(t, want, sub.calls[0])

	assert.True(t, errors.Is(f.Next(ctx), onboarding.ErrFlowComplete))
	assert.True(t, errors.Is(f.Answer(answers[0]), onboarding.ErrFlowComplete))
	assert.False(t, f.Previous())
	assert.Len(t, sub.calls, 1)
}

func TestFlow_SubmitFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{err: errors.New("network down")}
	f := onboarding.NewFlow(sub)

	for _, a := range firstOptions() {
		require.NoError(t, f.Answer(a))
		if !f.IsLast() {
			require.NoError(t, f.Next(ctx))
		}
	}
	before := f.Answers()

	err := f.Next(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.False(t, f.Complete())
	assert.True(t, f.IsLast())
	assert.Equal(t, before, f.Answers())

	// retry succeeds with the same answers
	sub.err = nil
	require.NoError(t, f.Next(ctx))
	assert.True(t, f.Complete())
	require.Len(t, sub.calls, 2)
	assert.Equal(t, before, sub.calls[1])
}

func TestQuestions(t *testing.T) {
	require.Len(t, onboarding.Questions, 5)
	for i, q := range onboarding.Questions {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options.ID, len(q.Options.En), "question %d", q.ID)
	}

	views := onboarding.QuestionsIn(onboarding.ParseLanguage("id"))
	assert.Equal(t, "Jenis projek apakah yang anda ingin bina?", views[4].Question)
	views = onboarding.QuestionsIn(onboarding.ParseLanguage("fr"))
	assert.Equal(t, "What type of projects would you like to build?", views[4].Question)

	_, ok := onboarding.QuestionByID(6)
	assert.False(t, ok)
}

func TestAnswers_Validate(t *testing.T) {
	valid := onboarding.Answers{1: "Intermediate", 2: "Go", 3: "Just for fun", 4: "16+ jam", 5: "Games"}
	err := valid.Validate()
	require.Error(t, err, "Go is not an option")

	valid[2] = "TypeScript"
	assert.NoError(t, valid.Validate())

	valid[9] = "Games"
	delete(valid, 3)
	err = valid.Validate()
	assert.EqualError(t, err, "answers.9: unknown question")
}
