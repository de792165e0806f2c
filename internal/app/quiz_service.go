package app

import (
	"context"

	"quizzler/internal/domain"
)

// SessionRepository tracks engines owned by live connections (in-memory, Redis, etc).
type SessionRepository interface {
	Create(id string) *Engine
	Get(id string) (*Engine, bool)
	Touch(id string)
	Delete(id string)
	Count() int
}

// QuizService wires the fetch gateway to engines owned by presentation adapters.
type QuizService struct {
	gateway       *Gateway
	questionCount int
}

func NewQuizService(gateway *Gateway, questionCount int) *QuizService {
	if questionCount <= 0 {
		questionCount = domain.DefaultQuestionCount
	}
	return &QuizService{gateway: gateway, questionCount: questionCount}
}

// Categories lists the categories a player can pick from.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.gateway.FetchCategories(ctx)
}

// Questions fetches a full batch for a category without touching any engine.
func (s *QuizService) Questions(ctx context.Context, categoryID string) ([]domain.Question, error) {
	return s.gateway.FetchQuestions(ctx, categoryID, s.questionCount)
}

// Start fetches a batch and hands it to engine. The engine is only mutated once
// the fetch has fully succeeded, so a failed fetch leaves it in its prior state.
func (s *QuizService) Start(ctx context.Context, engine *Engine, categoryID string) error {
	questions, err := s.Questions(ctx, categoryID)
	if err != nil {
		return err
	}
	return engine.StartSession(questions)
}

// QuestionCount is the configured batch size.
func (s *QuizService) QuestionCount() int {
	return s.questionCount
}
