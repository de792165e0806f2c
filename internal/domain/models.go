package domain

// Category is a selectable topic for a quiz.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Question is a single trivia item as received from a provider. Text fields may
// still contain HTML entities; decoding happens at presentation time.
type Question struct {
	Text             string   `json:"question"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`

	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Type       string `json:"type,omitempty"`
}

// SessionState is the lifecycle position of a quiz session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingAnswer
	StateAnswered
	StateCompleted
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateAnswered:
		return "answered"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is the state owned by a single engine.
type Session struct {
	Questions    []Question
	CurrentIndex int
	Score        int
	State        SessionState
}

// Snapshot is a read-only view of a session for adapters.
type Snapshot struct {
	State SessionState `json:"state"`
	Index int          `json:"index"`
	Total int          `json:"total"`
	Score int          `json:"score"`
}

// AnswerOutcome is the result of submitting an answer.
type AnswerOutcome struct {
	IsCorrect     bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// AdvanceKind tells whether an advance moved to another question or finished the session.
type AdvanceKind int

const (
	AdvanceNextQuestion AdvanceKind = iota
	AdvanceCompleted
)

// AdvanceOutcome is the result of moving past an answered question.
// Rank, Score and Total are only set when Kind is AdvanceCompleted.
type AdvanceOutcome struct {
	Kind  AdvanceKind
	Rank  string
	Score int
	Total int
}

// Completed reports whether the session finished.
func (o AdvanceOutcome) Completed() bool { return o.Kind == AdvanceCompleted }
