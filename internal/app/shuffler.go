package app

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler produces the displayed order of a question's answers.
type Shuffler interface {
	Shuffle(correct string, incorrect []string) []string
}

// RandShuffler is a Fisher-Yates shuffler backed by math/rand. It is safe for
// concurrent use so one instance can serve every engine in a process.
type RandShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewShuffler() *RandShuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

// NewSeededShuffler is used by tests that need a reproducible order.
func NewSeededShuffler(seed int64) *RandShuffler {
	return &RandShuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a new slice holding the correct answer and every incorrect
// answer exactly once. The inputs are not modified.
func (s *RandShuffler) Shuffle(correct string, incorrect []string) []string {
	answers := make([]string, 0, len(incorrect)+1)
	answers = append(answers, incorrect...)
	answers = append(answers, correct)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(answers) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}
	return answers
}
