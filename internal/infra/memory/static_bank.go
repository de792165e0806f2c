package memory

import (
	"context"
	"sort"

	"quizzler/internal/domain"
)

// StaticBank is a question provider backed by an in-memory map keyed by
// category (useful for tests/demos and offline play).
type StaticBank struct {
	categories []domain.Category
	questions  map[string][]domain.Question
}

func NewStaticBank(categories []domain.Category, questions map[string][]domain.Question) *StaticBank {
	return &StaticBank{categories: categories, questions: questions}
}

func (b *StaticBank) Categories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), b.categories...), nil
}

// Questions returns up to count questions. An empty categoryID mixes every
// category in a stable order.
func (b *StaticBank) Questions(_ context.Context, categoryID string, count int) ([]domain.Question, error) {
	var pool []domain.Question
	if categoryID == "" {
		keys := make([]string, 0, len(b.questions))
		for k := range b.questions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pool = append(pool, b.questions[k]...)
		}
	} else {
		pool = b.questions[categoryID]
	}

	if len(pool) == 0 {
		return nil, domain.NewFetchError(domain.ErrNoQuestionsAvailable, "static questions", nil)
	}
	if count > 0 && count < len(pool) {
		pool = pool[:count]
	}
	return append([]domain.Question(nil), pool...), nil
}

// SampleBank provides a small built-in question set for offline play.
func SampleBank() *StaticBank {
	return NewStaticBank(
		[]domain.Category{
			{ID: "9", Name: "General Knowledge"},
			{ID: "22", Name: "Geography"},
		},
		map[string][]domain.Question{
			"9": {
				{
					Text:             "What is 2 + 2?",
					CorrectAnswer:    "4",
					IncorrectAnswers: []string{"3", "5", "22"},
					Category:         "General Knowledge",
					Difficulty:       "easy",
					Type:             "multiple",
				},
				{
					Text:             "&quot;HTML&quot; stands for Hypertext Markup Language.",
					CorrectAnswer:    "True",
					IncorrectAnswers: []string{"False"},
					Category:         "General Knowledge",
					Difficulty:       "easy",
					Type:             "boolean",
				},
			},
			"22": {
				{
					Text:             "What is the capital of France?",
					CorrectAnswer:    "Paris",
					IncorrectAnswers: []string{"Berlin", "Rome", "Madrid"},
					Category:         "Geography",
					Difficulty:       "easy",
					Type:             "multiple",
				},
				{
					Text:             "Which river flows through Cairo?",
					CorrectAnswer:    "Nile",
					IncorrectAnswers: []string{"Amazon", "Danube", "Tigris"},
					Category:         "Geography",
					Difficulty:       "easy",
					Type:             "multiple",
				},
			},
		},
	)
}
