package domain

// DefaultQuestionCount is the batch size the rank thresholds were tuned for.
const DefaultQuestionCount = 10

const (
	RankNoob       = "Quiz Noob"
	RankApprentice = "Quizlet Apprentice"
	RankQuizzard   = "Quizzard"
	RankUltimate   = "Ultimate Quizzler"
)

// Rank maps a final score to a label. Thresholds are inclusive upper bounds of
// 3, 6 and 8 out of 10 and scale proportionally for other batch sizes.
func Rank(score, total int) string {
	if total <= 0 {
		total = DefaultQuestionCount
	}
	scaled := score * DefaultQuestionCount
	switch {
	case scaled <= 3*total:
		return RankNoob
	case scaled <= 6*total:
		return RankApprentice
	case scaled <= 8*total:
		return RankQuizzard
	default:
		return RankUltimate
	}
}
