package app_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"quizzler/internal/app"
)

func TestShuffleIsPermutation(t *testing.T) {
	shuffler := app.NewSeededShuffler(42)
	cases := []struct {
		correct   string
		incorrect []string
	}{
		{"a", nil},
		{"a", []string{"b"}},
		{"a", []string{"b", "c", "d"}},
		{"x", []string{"x", "y", "x"}},
	}

	for _, tc := range cases {
		for i := 0; i < 50; i++ {
			got := shuffler.Shuffle(tc.correct, tc.incorrect)

			want := append([]string{tc.correct}, tc.incorrect...)
			sort.Strings(want)
			sorted := append([]string{}, got...)
			sort.Strings(sorted)
			assert.Equal(t, want, sorted)
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	shuffler := app.NewSeededShuffler(7)
	incorrect := []string{"b", "c", "d"}

	for i := 0; i < 20; i++ {
		_ = shuffler.Shuffle("a", incorrect)
	}
	assert.Equal(t, []string{"b", "c", "d"}, incorrect)
}

func TestShuffleVariesOrder(t *testing.T) {
	shuffler := app.NewSeededShuffler(99)
	positions := make(map[int]bool)
	for i := 0; i < 200; i++ {
		got := shuffler.Shuffle("a", []string{"b", "c", "d"})
		for idx, v := range got {
			if v == "a" {
				positions[idx] = true
			}
		}
	}
	assert.Len(t, positions, 4, "correct answer should appear in every slot")
}
