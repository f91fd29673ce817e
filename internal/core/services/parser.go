package services

import (
	"regexp"
	"strings"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure QuestionParser implements the interface.
var _ driving.QuestionParser = (*QuestionParser)(nil)

// ignoredQuestionCodes are screener questions that never reach the output.
var ignoredQuestionCodes = map[string]struct{}{
	"Q1":  {},
	"Q2":  {},
	"Q3":  {},
	"Q4":  {},
	"Q10": {},
}

var (
	questionLine = regexp.MustCompile(`^Q(\d+):\s*(.+)$`)
	optionLine   = regexp.MustCompile(`^Q(\d+)([A-Z]+):\s*(.+)$`)
	lineBreak    = regexp.MustCompile(`\r\n|\r|\n`)
)

// QuestionParser extracts questions and options from Q-coded text.
// It holds no state between calls.
type QuestionParser struct{}

// NewQuestionParser creates a new parser.
func NewQuestionParser() *QuestionParser {
	return &QuestionParser{}
}

// parsedQuestion carries the parse-time ignored marker.
type parsedQuestion struct {
	domain.Question
	ignored bool
}

// Parse converts raw text into questions in first-seen order.
// Option lines attach to the current question without checking that the
// numeric prefix matches its code.
func (p *QuestionParser) Parse(rawText string) []domain.Question {
	var (
		parsed  []*parsedQuestion
		current *parsedQuestion
		dropped int
	)

	for _, line := range lineBreak.Split(rawText, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := questionLine.FindStringSubmatch(line); m != nil {
			code := "Q" + m[1]
			_, ignored := ignoredQuestionCodes[code]
			current = &parsedQuestion{
				Question: domain.Question{
					Code:    code,
					Text:    strings.TrimSpace(m[2]),
					Type:    domain.QuestionTypeOpenResponse,
					Options: []domain.Option{},
				},
				ignored: ignored,
			}
			if !ignored {
				parsed = append(parsed, current)
			}
			continue
		}

		if m := optionLine.FindStringSubmatch(line); m != nil && current != nil && !current.ignored {
			current.Type = domain.QuestionTypeMultipleChoice
			current.Options = append(current.Options, domain.Option{
				Code:  "Q" + m[1] + m[2],
				Label: strings.TrimSpace(m[3]),
			})
			continue
		}

		dropped++
	}

	questions := make([]domain.Question, len(parsed))
	for i, q := range parsed {
		questions[i] = q.Question
	}

	logger.Debug("Parsed %d questions (%d lines discarded)", len(questions), dropped)
	return questions
}
