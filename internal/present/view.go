// Package present turns engine state into decoded, display-ready views shared
// by the WebSocket and terminal adapters.
package present

import (
	"fmt"
	"html"

	"quizzler/internal/app"
	"quizzler/internal/domain"
)

// Decode resolves HTML entities such as &quot; and &#039; in provider text.
func Decode(s string) string {
	return html.UnescapeString(s)
}

// Choice pairs the decoded label shown to players with the raw value the
// engine compares against.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuestionView is everything needed to render the current question.
type QuestionView struct {
	Number     int      `json:"number"`
	Total      int      `json:"total"`
	Text       string   `json:"text"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Choices    []Choice `json:"choices"`
	Score      int      `json:"score"`
	Answered   bool     `json:"answered"`
}

// FeedbackView describes the alert shown after an answer.
type FeedbackView struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Message       string `json:"message"`
	Score         int    `json:"score"`
}

// ResultView is the completion summary.
type ResultView struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Rank    string `json:"rank"`
	Message string `json:"message"`
}

// Question builds the view for the engine's current question.
func Question(engine *app.Engine) (QuestionView, error) {
	q, err := engine.CurrentQuestion()
	if err != nil {
		return QuestionView{}, err
	}
	choices, err := engine.CurrentChoices()
	if err != nil {
		return QuestionView{}, err
	}

	snap := engine.Snapshot()
	view := QuestionView{
		Number:     snap.Index + 1,
		Total:      snap.Total,
		Text:       Decode(q.Text),
		Category:   Decode(q.Category),
		Difficulty: q.Difficulty,
		Choices:    make([]Choice, 0, len(choices)),
		Score:      snap.Score,
		Answered:   snap.State == domain.StateAnswered,
	}
	for _, c := range choices {
		view.Choices = append(view.Choices, Choice{Label: Decode(c), Value: c})
	}
	return view, nil
}

// Feedback builds the alert for an answer outcome.
func Feedback(outcome domain.AnswerOutcome, score int) FeedbackView {
	correct := Decode(outcome.CorrectAnswer)
	msg := "Correct!"
	if !outcome.IsCorrect {
		msg = "Incorrect; the correct answer is " + correct
	}
	return FeedbackView{
		Correct:       outcome.IsCorrect,
		CorrectAnswer: correct,
		Message:       msg,
		Score:         score,
	}
}

// Result builds the completion summary. It expects a completed outcome.
func Result(outcome domain.AdvanceOutcome) ResultView {
	return ResultView{
		Score:   outcome.Score,
		Total:   outcome.Total,
		Rank:    outcome.Rank,
		Message: fmt.Sprintf("Quiz Completed! Your Score: %d/%d", outcome.Score, outcome.Total),
	}
}
