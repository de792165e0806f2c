package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizzler/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second)
}

func TestCategories(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api_category.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"trivia_categories":[{"id":9,"name":"General Knowledge"},{"id":22,"name":"Geography"}]}`))
	})

	categories, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].ID != "9" || categories[0].Name != "General Knowledge" {
		t.Fatalf("unexpected first category %+v", categories[0])
	}
}

func TestQuestionsPassesParameters(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("amount"); got != "10" {
			t.Errorf("amount = %q", got)
		}
		if got := r.URL.Query().Get("category"); got != "22" {
			t.Errorf("category = %q", got)
		}
		w.Write([]byte(`{"response_code":0,"results":[{"category":"Geography","type":"multiple","difficulty":"easy",
			"question":"Capital of &quot;France&quot;?","correct_answer":"Paris","incorrect_answers":["Rome","Berlin","Madrid"]}]}`))
	})

	questions, err := client.Questions(context.Background(), "22", 10)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Text != "Capital of &quot;France&quot;?" {
		t.Fatalf("text should stay encoded, got %q", q.Text)
	}
	if q.CorrectAnswer != "Paris" || len(q.IncorrectAnswers) != 3 || q.Difficulty != "easy" {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestQuestionsOmitsEmptyCategory(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["category"]; ok {
			t.Errorf("category should be omitted")
		}
		w.Write([]byte(`{"response_code":0,"results":[{"question":"q","correct_answer":"a","incorrect_answers":[]}]}`))
	})

	if _, err := client.Questions(context.Background(), "", 5); err != nil {
		t.Fatalf("questions: %v", err)
	}
}

func TestQuestionsErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "bad status", status: http.StatusServiceUnavailable, body: "down", want: domain.ErrBadStatus},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"response_code":5,"results":[]}`, want: domain.ErrBadStatus},
		{name: "malformed", status: http.StatusOK, body: `{"response_code":`, want: domain.ErrMalformedPayload},
		{name: "missing code", status: http.StatusOK, body: `{"results":[]}`, want: domain.ErrMalformedPayload},
		{name: "no results code", status: http.StatusOK, body: `{"response_code":1,"results":[]}`, want: domain.ErrNoQuestionsAvailable},
		{name: "empty results", status: http.StatusOK, body: `{"response_code":0,"results":[]}`, want: domain.ErrNoQuestionsAvailable},
		{name: "invalid parameter", status: http.StatusOK, body: `{"response_code":2,"results":[]}`, want: domain.ErrBadStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := client.Questions(context.Background(), "9", 10)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.Categories(context.Background())
	if !errors.Is(err, domain.ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestBadStatusCarriesCode(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.Categories(context.Background())

	var fe *domain.FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500 in error, got %v", err)
	}
}
