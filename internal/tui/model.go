// Package tui is the terminal front end: a Bubble Tea program that renders the
// engine's current question and feeds key presses back into it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"quizzler/internal/app"
	"quizzler/internal/domain"
	"quizzler/internal/present"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLoading screen = iota
	screenCategories
	screenFetching
	screenQuestion
	screenResult
)

// anyCategory lets the provider pick a mix of categories.
var anyCategory = domain.Category{ID: "", Name: "Any Category"}

type categoriesMsg struct {
	categories []domain.Category
	err        error
}

type questionsMsg struct {
	questions []domain.Question
	err       error
}

// Model is the root Bubble Tea model. The engine is only touched from Update,
// so fetches finish before any session change.
type Model struct {
	service *app.QuizService
	engine  *app.Engine
	ctx     context.Context
	keys    KeyMap

	screen     screen
	categories []domain.Category
	cursor     int
	question   present.QuestionView
	feedback   *present.FeedbackView
	result     present.ResultView
	alert      string
	width      int
}

// New creates the root model.
func New(ctx context.Context, service *app.QuizService, engine *app.Engine) Model {
	return Model{
		service:    service,
		engine:     engine,
		ctx:        ctx,
		keys:       DefaultKeyMap(),
		screen:     screenLoading,
		categories: []domain.Category{anyCategory},
	}
}

// Init loads the category list.
func (m Model) Init() tea.Cmd {
	return m.fetchCategories()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case categoriesMsg:
		m.screen = screenCategories
		m.cursor = 0
		if msg.err != nil {
			m.alert = "unable to fetch categories: " + msg.err.Error()
			return m, nil
		}
		m.alert = ""
		m.categories = append([]domain.Category{anyCategory}, msg.categories...)
		return m, nil

	case questionsMsg:
		if msg.err != nil {
			m.screen = screenCategories
			m.alert = "unable to fetch questions: " + msg.err.Error()
			return m, nil
		}
		if err := m.engine.StartSession(msg.questions); err != nil {
			m.screen = screenCategories
			m.alert = err.Error()
			return m, nil
		}
		m.alert = ""
		m.showQuestion()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenCategories:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = wrap(m.cursor-1, len(m.categories))
		case key.Matches(msg, m.keys.Down):
			m.cursor = wrap(m.cursor+1, len(m.categories))
		case key.Matches(msg, m.keys.Reload):
			m.screen = screenLoading
			return m, m.fetchCategories()
		case key.Matches(msg, m.keys.Enter):
			m.screen = screenFetching
			m.alert = ""
			return m, m.fetchQuestions(m.categories[m.cursor].ID)
		}

	case screenQuestion:
		if key.Matches(msg, m.keys.Reset) {
			m.reset()
			return m, nil
		}
		if m.feedback != nil {
			if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Next) {
				m.advance()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = wrap(m.cursor-1, len(m.question.Choices))
		case key.Matches(msg, m.keys.Down):
			m.cursor = wrap(m.cursor+1, len(m.question.Choices))
		case key.Matches(msg, m.keys.Enter):
			m.submit()
		}

	case screenResult:
		if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Reset) {
			m.reset()
		}
	}
	return m, nil
}

func (m *Model) submit() {
	if len(m.question.Choices) == 0 {
		return
	}
	outcome, err := m.engine.SubmitAnswer(m.question.Choices[m.cursor].Value)
	if err != nil {
		m.alert = err.Error()
		return
	}
	fb := present.Feedback(outcome, m.engine.Snapshot().Score)
	m.feedback = &fb
	m.question.Answered = true
	m.question.Score = fb.Score
}

func (m *Model) advance() {
	outcome, err := m.engine.Advance()
	if err != nil {
		m.alert = err.Error()
		return
	}
	if outcome.Completed() {
		m.result = present.Result(outcome)
		m.feedback = nil
		m.screen = screenResult
		return
	}
	m.showQuestion()
}

func (m *Model) showQuestion() {
	view, err := present.Question(m.engine)
	if err != nil {
		m.alert = err.Error()
		return
	}
	m.question = view
	m.feedback = nil
	m.cursor = 0
	m.screen = screenQuestion
}

func (m *Model) reset() {
	m.engine.Reset()
	m.question = present.QuestionView{}
	m.feedback = nil
	m.result = present.ResultView{}
	m.alert = ""
	m.cursor = 0
	m.screen = screenCategories
}

func (m Model) fetchCategories() tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		categories, err := service.Categories(ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

func (m Model) fetchQuestions(categoryID string) tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		questions, err := service.Questions(ctx, categoryID)
		return questionsMsg{questions: questions, err: err}
	}
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quizzler"))
	b.WriteString("\n\n")

	switch m.screen {
	case screenLoading:
		b.WriteString(dimStyle.Render("Loading categories..."))
	case screenFetching:
		b.WriteString(dimStyle.Render("Fetching questions..."))
	case screenCategories:
		b.WriteString(m.viewCategories())
	case screenQuestion:
		b.WriteString(m.viewQuestion())
	case screenResult:
		b.WriteString(m.viewResult())
	}

	if m.alert != "" {
		b.WriteString("\n\n")
		b.WriteString(dangerStyle.Render(m.alert))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help()))

	style := panelStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(b.String())
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString("Choose a category:\n\n")
	for i, c := range m.categories {
		b.WriteString(m.line(i, c.Name))
	}
	return b.String()
}

func (m Model) viewQuestion() string {
	q := m.question
	var b strings.Builder

	header := fmt.Sprintf("Question %d/%d", q.Number, q.Total)
	if q.Category != "" {
		header += "  ·  " + q.Category
	}
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n")

	for i, c := range q.Choices {
		if m.feedback != nil {
			b.WriteString(m.answeredLine(i, c))
			continue
		}
		b.WriteString(m.line(i, c.Label))
	}

	b.WriteString("\n")
	if m.feedback != nil {
		if m.feedback.Correct {
			b.WriteString(successStyle.Render(m.feedback.Message))
		} else {
			b.WriteString(dangerStyle.Render(m.feedback.Message))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Score: %d", q.Score))
	return b.String()
}

func (m Model) viewResult() string {
	return fmt.Sprintf("%s\nRank: %s",
		m.result.Message,
		successStyle.Render(m.result.Rank))
}

func (m Model) line(i int, label string) string {
	if i == m.cursor {
		return cursorStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

func (m Model) answeredLine(i int, c present.Choice) string {
	prefix := "  "
	if i == m.cursor {
		prefix = "> "
	}
	if c.Label == m.feedback.CorrectAnswer {
		return successStyle.Render(prefix+c.Label) + "\n"
	}
	return dimStyle.Render(prefix+c.Label) + "\n"
}

func (m Model) help() string {
	switch m.screen {
	case screenCategories:
		return "↑/↓ move · enter start · c reload · q quit"
	case screenQuestion:
		if m.feedback != nil {
			return "enter/n next · r reset · q quit"
		}
		return "↑/↓ move · enter answer · r reset · q quit"
	case screenResult:
		return "enter play again · q quit"
	default:
		return "q quit"
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}
