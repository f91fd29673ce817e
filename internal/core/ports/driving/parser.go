package driving

import "github.com/dawsonl1/halda-serper/internal/core/domain"

// QuestionParser turns Q-coded text into questions.
type QuestionParser interface {
	// Parse never fails; malformed input yields fewer or emptier questions.
	Parse(rawText string) []domain.Question
}
