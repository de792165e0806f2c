package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"quizzler/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionBank serves categories and random question batches from Postgres.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

func (b *QuestionBank) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "postgres categories"

	rows, err := b.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, domain.NewFetchError(domain.ErrMalformedPayload, op, err)
		}
		categories = append(categories, domain.Category{ID: strconv.Itoa(id), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	return categories, nil
}

// Questions picks count random questions. An empty categoryID draws from every category.
func (b *QuestionBank) Questions(ctx context.Context, categoryID string, count int) ([]domain.Question, error) {
	const op = "postgres questions"

	categoryFilter := 0
	if categoryID != "" {
		id, err := strconv.Atoi(categoryID)
		if err != nil || id <= 0 {
			return nil, domain.NewFetchError(domain.ErrBadStatus, op, fmt.Errorf("invalid category id %q", categoryID))
		}
		categoryFilter = id
	}

	rows, err := b.pool.Query(ctx, `
		SELECT q.question, q.correct_answer, q.incorrect_answers, q.difficulty, q.type, c.name
		FROM questions q
		JOIN categories c ON c.id = q.category_id
		WHERE $1 = 0 OR q.category_id = $1
		ORDER BY random()
		LIMIT $2`, categoryFilter, count)
	if err != nil {
		return nil, domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q         domain.Question
			incorrect []byte
		)
		if err := rows.Scan(&q.Text, &q.CorrectAnswer, &incorrect, &q.Difficulty, &q.Type, &q.Category); err != nil {
			return nil, domain.NewFetchError(domain.ErrMalformedPayload, op, err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return nil, domain.NewFetchError(domain.ErrMalformedPayload, op, fmt.Errorf("unmarshal incorrect answers: %w", err))
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	if len(questions) == 0 {
		return nil, domain.NewFetchError(domain.ErrNoQuestionsAvailable, op, errors.New("question bank is empty for category"))
	}
	return questions, nil
}
