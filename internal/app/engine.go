package app

import (
	"slices"

	"quizzler/internal/domain"
)

// Engine runs a single quiz session. It is not safe for concurrent use: the
// owning adapter issues calls one at a time.
type Engine struct {
	shuffler Shuffler
	session  domain.Session
	// choices is the shuffled order for the current question only.
	choices []string
}

func NewEngine(shuffler Shuffler) *Engine {
	if shuffler == nil {
		shuffler = NewShuffler()
	}
	return &Engine{shuffler: shuffler}
}

// StartSession replaces any previous session with the given questions and
// shows the first one. On error the engine is left untouched.
func (e *Engine) StartSession(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptyQuestionSet
	}

	owned := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.IncorrectAnswers = slices.Clone(q.IncorrectAnswers)
		owned[i] = q
	}

	e.session = domain.Session{
		Questions:    owned,
		CurrentIndex: 0,
		Score:        0,
		State:        domain.StateAwaitingAnswer,
	}
	e.shuffleCurrent()
	return nil
}

// CurrentQuestion returns the question at the current index. There is none
// while idle or after completion.
func (e *Engine) CurrentQuestion() (domain.Question, error) {
	if !e.hasCurrent() {
		return domain.Question{}, e.stateErr("current question")
	}
	return e.session.Questions[e.session.CurrentIndex], nil
}

// CurrentChoices returns the cached answer order for the current question.
func (e *Engine) CurrentChoices() ([]string, error) {
	if !e.hasCurrent() {
		return nil, e.stateErr("current choices")
	}
	return slices.Clone(e.choices), nil
}

// SubmitAnswer scores choice against the current question. Only one answer is
// accepted per question.
func (e *Engine) SubmitAnswer(choice string) (domain.AnswerOutcome, error) {
	if e.session.State != domain.StateAwaitingAnswer {
		return domain.AnswerOutcome{}, e.stateErr("submit answer")
	}

	question := e.session.Questions[e.session.CurrentIndex]
	correct := choice == question.CorrectAnswer
	if correct {
		e.session.Score++
	}
	e.session.State = domain.StateAnswered

	return domain.AnswerOutcome{
		IsCorrect:     correct,
		CorrectAnswer: question.CorrectAnswer,
	}, nil
}

// Advance moves past an answered question, either to the next one or to completion.
func (e *Engine) Advance() (domain.AdvanceOutcome, error) {
	if e.session.State != domain.StateAnswered {
		return domain.AdvanceOutcome{}, e.stateErr("advance")
	}

	e.session.CurrentIndex++
	if e.session.CurrentIndex < len(e.session.Questions) {
		e.shuffleCurrent()
		e.session.State = domain.StateAwaitingAnswer
		return domain.AdvanceOutcome{Kind: domain.AdvanceNextQuestion}, nil
	}

	e.choices = nil
	e.session.State = domain.StateCompleted
	total := len(e.session.Questions)
	return domain.AdvanceOutcome{
		Kind:  domain.AdvanceCompleted,
		Rank:  domain.Rank(e.session.Score, total),
		Score: e.session.Score,
		Total: total,
	}, nil
}

// Reset drops the session and returns to idle.
func (e *Engine) Reset() {
	e.session = domain.Session{State: domain.StateIdle}
	e.choices = nil
}

func (e *Engine) State() domain.SessionState {
	return e.session.State
}

// Snapshot returns the scoreboard view of the session.
func (e *Engine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		State: e.session.State,
		Index: e.session.CurrentIndex,
		Total: len(e.session.Questions),
		Score: e.session.Score,
	}
}

func (e *Engine) hasCurrent() bool {
	switch e.session.State {
	case domain.StateAwaitingAnswer, domain.StateAnswered:
		return true
	default:
		return false
	}
}

func (e *Engine) shuffleCurrent() {
	q := e.session.Questions[e.session.CurrentIndex]
	e.choices = e.shuffler.Shuffle(q.CorrectAnswer, q.IncorrectAnswers)
}

func (e *Engine) stateErr(op string) error {
	return &domain.StateError{Op: op, State: e.session.State}
}
