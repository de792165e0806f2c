package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quizzler/internal/domain"
)

// DefaultBaseURL is the public Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// Response codes documented by Open Trivia DB.
const (
	codeSuccess   = 0
	codeNoResults = 1
)

// Client talks to Open Trivia DB over HTTP. It implements both the category and
// the question provider.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type categoryResponse struct {
	TriviaCategories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"trivia_categories"`
}

// rawQuestion is the wire shape of a question record.
type rawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionResponse struct {
	ResponseCode *int          `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// Categories fetches /api_category.php.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "opentdb categories"

	var payload categoryResponse
	if err := c.get(ctx, op, "/api_category.php", nil, &payload); err != nil {
		return nil, err
	}
	if payload.TriviaCategories == nil {
		return nil, domain.NewFetchError(domain.ErrMalformedPayload, op, fmt.Errorf("missing trivia_categories"))
	}

	categories := make([]domain.Category, 0, len(payload.TriviaCategories))
	for _, item := range payload.TriviaCategories {
		categories = append(categories, domain.Category{
			ID:   strconv.Itoa(item.ID),
			Name: item.Name,
		})
	}
	return categories, nil
}

// Questions fetches /api.php?amount=N[&category=ID].
func (c *Client) Questions(ctx context.Context, categoryID string, count int) ([]domain.Question, error) {
	const op = "opentdb questions"

	query := url.Values{}
	query.Set("amount", strconv.Itoa(count))
	if categoryID != "" {
		query.Set("category", categoryID)
	}

	var payload questionResponse
	if err := c.get(ctx, op, "/api.php", query, &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode == nil {
		return nil, domain.NewFetchError(domain.ErrMalformedPayload, op, fmt.Errorf("missing response_code"))
	}

	switch code := *payload.ResponseCode; code {
	case codeSuccess:
	case codeNoResults:
		return nil, domain.NewFetchError(domain.ErrNoQuestionsAvailable, op, nil)
	default:
		return nil, domain.NewFetchError(domain.ErrBadStatus, op, fmt.Errorf("response code %d", code))
	}

	if len(payload.Results) == 0 {
		return nil, domain.NewFetchError(domain.ErrNoQuestionsAvailable, op, nil)
	}
	return toDomain(payload.Results), nil
}

// toDomain converts wire records to domain questions. Text is kept encoded.
func toDomain(raw []rawQuestion) []domain.Question {
	questions := make([]domain.Question, 0, len(raw))
	for _, item := range raw {
		questions = append(questions, domain.Question{
			Text:             item.Question,
			CorrectAnswer:    item.CorrectAnswer,
			IncorrectAnswers: append([]string(nil), item.IncorrectAnswers...),
			Category:         item.Category,
			Difficulty:       item.Difficulty,
			Type:             item.Type,
		})
	}
	return questions
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.NewFetchError(domain.ErrNetworkFailure, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.FetchError{
			Kind:   domain.ErrBadStatus,
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("GET %s: %s", path, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewFetchError(domain.ErrMalformedPayload, op, err)
	}
	return nil
}
