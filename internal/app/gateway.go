package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"quizzler/internal/domain"
)

// CategoryProvider lists selectable categories (Open Trivia DB, Postgres, caches).
type CategoryProvider interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// QuestionProvider returns a batch of questions. An empty categoryID means any category.
type QuestionProvider interface {
	Questions(ctx context.Context, categoryID string, count int) ([]domain.Question, error)
}

// Gateway normalizes provider results so every failure reaching callers is a
// *domain.FetchError. Each call is a single attempt.
type Gateway struct {
	categories CategoryProvider
	questions  QuestionProvider
}

func NewGateway(categories CategoryProvider, questions QuestionProvider) *Gateway {
	return &Gateway{categories: categories, questions: questions}
}

func (g *Gateway) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := g.categories.Categories(ctx)
	if err != nil {
		err = normalizeFetchError("fetch categories", err)
		log.Printf("fetch categories failed: %v", err)
		return nil, err
	}
	return categories, nil
}

func (g *Gateway) FetchQuestions(ctx context.Context, categoryID string, count int) ([]domain.Question, error) {
	if count <= 0 {
		count = domain.DefaultQuestionCount
	}

	questions, err := g.questions.Questions(ctx, categoryID, count)
	if err != nil {
		err = normalizeFetchError("fetch questions", err)
		log.Printf("fetch questions (category=%q) failed: %v", categoryID, err)
		return nil, err
	}
	if len(questions) == 0 {
		log.Printf("fetch questions (category=%q): provider returned no questions", categoryID)
		return nil, domain.NewFetchError(domain.ErrNoQuestionsAvailable, "fetch questions", nil)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" || q.CorrectAnswer == "" {
			log.Printf("fetch questions (category=%q): question %d is incomplete", categoryID, i)
			return nil, domain.NewFetchError(domain.ErrMalformedPayload, "fetch questions", errors.New("question without text or correct answer"))
		}
	}
	return questions, nil
}

// normalizeFetchError keeps typed provider errors and treats everything else
// (transport, context cancellation) as a network failure.
func normalizeFetchError(op string, err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return domain.NewFetchError(domain.ErrNetworkFailure, op, err)
}
