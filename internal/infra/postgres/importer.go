package postgres

import (
	"context"
	"fmt"
	"strconv"

	"quizzler/internal/domain"

	"github.com/uptrace/bun"
)

type categoryRow struct {
	bun.BaseModel `bun:"table:categories"`

	ID   int    `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID               int64    `bun:"id,pk,autoincrement"`
	CategoryID       int      `bun:"category_id,notnull"`
	Type             string   `bun:"type"`
	Difficulty       string   `bun:"difficulty"`
	Question         string   `bun:"question,notnull"`
	CorrectAnswer    string   `bun:"correct_answer,notnull"`
	IncorrectAnswers []string `bun:"incorrect_answers,type:jsonb"`
}

// Importer writes provider data into the question bank.
type Importer struct {
	db *bun.DB
}

func NewImporter(db *bun.DB) *Importer {
	return &Importer{db: db}
}

// UpsertCategories inserts categories, renaming existing ids.
func (i *Importer) UpsertCategories(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]categoryRow, 0, len(categories))
	for _, c := range categories {
		id, err := strconv.Atoi(c.ID)
		if err != nil {
			return fmt.Errorf("category %q: non-numeric id: %w", c.Name, err)
		}
		rows = append(rows, categoryRow{ID: id, Name: c.Name})
	}

	_, err := i.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert categories: %w", err)
	}
	return nil
}

// InsertQuestions stores questions under categoryID, skipping ones already present.
// It returns how many rows were new.
func (i *Importer) InsertQuestions(ctx context.Context, categoryID string, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	id, err := strconv.Atoi(categoryID)
	if err != nil {
		return 0, fmt.Errorf("non-numeric category id %q: %w", categoryID, err)
	}

	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		incorrect := q.IncorrectAnswers
		if incorrect == nil {
			incorrect = []string{}
		}
		rows = append(rows, questionRow{
			CategoryID:       id,
			Type:             q.Type,
			Difficulty:       q.Difficulty,
			Question:         q.Text,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: incorrect,
		})
	}

	res, err := i.db.NewInsert().
		Model(&rows).
		On("CONFLICT (category_id, question) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert questions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert questions: %w", err)
	}
	return int(n), nil
}
