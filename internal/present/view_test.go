package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizzler/internal/app"
	"quizzler/internal/domain"
)

type fixedShuffler struct{}

func (fixedShuffler) Shuffle(correct string, incorrect []string) []string {
	return append([]string{correct}, incorrect...)
}

func TestDecode(t *testing.T) {
	assert.Equal(t, `Who wrote "Hamlet"?`, Decode("Who wrote &quot;Hamlet&quot;?"))
	assert.Equal(t, "Rock & Roll", Decode("Rock &amp; Roll"))
	assert.Equal(t, "It's", Decode("It&#039;s"))
	assert.Equal(t, "plain", Decode("plain"))
}

func TestQuestionViewDecodesLabelsButKeepsValues(t *testing.T) {
	engine := app.NewEngine(fixedShuffler{})
	require.NoError(t, engine.StartSession([]domain.Question{
		{Text: "Who&#039;s there?", CorrectAnswer: "Tom &amp; Jerry", IncorrectAnswers: []string{"Ben"}, Category: "Entertainment: Cartoon &amp; Animations"},
	}))

	view, err := Question(engine)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Number)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "Who's there?", view.Text)
	assert.Equal(t, "Entertainment: Cartoon & Animations", view.Category)
	require.Len(t, view.Choices, 2)
	assert.Equal(t, Choice{Label: "Tom & Jerry", Value: "Tom &amp; Jerry"}, view.Choices[0])
	assert.False(t, view.Answered)

	// The raw value is what scores.
	outcome, err := engine.SubmitAnswer(view.Choices[0].Value)
	require.NoError(t, err)
	assert.True(t, outcome.IsCorrect)

	view, err = Question(engine)
	require.NoError(t, err)
	assert.True(t, view.Answered)
	assert.Equal(t, 1, view.Score)
}

func TestQuestionViewRequiresSession(t *testing.T) {
	_, err := Question(app.NewEngine(fixedShuffler{}))
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestFeedbackAndResult(t *testing.T) {
	fb := Feedback(domain.AnswerOutcome{IsCorrect: false, CorrectAnswer: "A &amp; B"}, 3)
	assert.Equal(t, "Incorrect; the correct answer is A & B", fb.Message)
	assert.Equal(t, 3, fb.Score)

	fb = Feedback(domain.AnswerOutcome{IsCorrect: true, CorrectAnswer: "x"}, 4)
	assert.Equal(t, "Correct!", fb.Message)

	res := Result(domain.AdvanceOutcome{Kind: domain.AdvanceCompleted, Rank: domain.RankQuizzard, Score: 7, Total: 10})
	assert.Equal(t, "Quiz Completed! Your Score: 7/10", res.Message)
	assert.Equal(t, domain.RankQuizzard, res.Rank)
}
