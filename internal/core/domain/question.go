package domain

// QuestionType classifies a question by whether it offers answer options.
type QuestionType string

const (
	// QuestionTypeOpenResponse is a question without options.
	QuestionTypeOpenResponse QuestionType = "open response"

	// QuestionTypeMultipleChoice is a question with at least one option.
	QuestionTypeMultipleChoice QuestionType = "multiple choice"
)

// String returns the string representation.
func (t QuestionType) String() string {
	return string(t)
}

// Question is a survey question parsed from Q-coded text.
type Question struct {
	// Code is the question identifier, e.g. "Q5".
	Code string `json:"code"`

	// Text is the trimmed question label.
	Text string `json:"text"`

	// Type is promoted to multiple choice when the first option attaches.
	Type QuestionType `json:"type"`

	// Options are kept in source order.
	Options []Option `json:"options"`
}

// Option is an answer option of a question.
type Option struct {
	// Code is the option identifier, e.g. "Q5A".
	Code string `json:"code"`

	// Label is the trimmed answer text.
	Label string `json:"label"`
}

// FindOption returns the question and option whose option code matches.
// A non-empty questionCode restricts the search to questions with that
// code. The first match in question order wins.
func FindOption(questions []Question, questionCode, optionCode string) (*Question, *Option, bool) {
	for i := range questions {
		if questionCode != "" && questions[i].Code != questionCode {
			continue
		}
		for j := range questions[i].Options {
			if questions[i].Options[j].Code == optionCode {
				return &questions[i], &questions[i].Options[j], true
			}
		}
	}
	return nil, nil, false
}
