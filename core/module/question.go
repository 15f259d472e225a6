package module

import (
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionMatching       QuestionType = "matching"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionInteractive    QuestionType = "interactive"
)

func (qt QuestionType) Valid() bool {
	switch qt {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionMatching, QuestionShortAnswer, QuestionInteractive:
		return true
	}
	return false
}

// Answer is either a single string or, for matching questions, an ordered
// list. It round-trips both JSON shapes.
type Answer struct {
	Value  string
	Values []string
}

func (a Answer) IsZero() bool { return a.Value == "" && len(a.Values) == 0 }

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Values != nil {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{Value: s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	*a = Answer{Values: ss}
	return nil
}

type Feedback struct {
	Correct   string `json:"correct,omitempty"`
	Incorrect string `json:"incorrect,omitempty"`
}

// Question powers quiz_data / quick_check_data payloads and the module's
// standalone assessment question list.
type Question struct {
	Type             QuestionType `json:"type"`
	Question         string       `json:"question"`
	Options          []string     `json:"options,omitempty"`
	CorrectAnswer    Answer       `json:"correct_answer,omitempty"`
	Points           int          `json:"points"`
	TimeLimitSeconds int          `json:"time_limit_seconds,omitempty"`
	Hints            []string     `json:"hints,omitempty"`
	Explanation      string       `json:"explanation,omitempty"`
	Feedback         *Feedback    `json:"feedback,omitempty"`
}

// RequiresOptions reports whether the question type needs an options list.
func (q Question) RequiresOptions() bool {
	return q.Type == QuestionMultipleChoice || q.Type == QuestionMatching
}

// ManualGrading reports whether the question has no stored answer and must
// be graded by a teacher.
func (q Question) ManualGrading() bool {
	return q.Type == QuestionShortAnswer && q.CorrectAnswer.IsZero()
}

func questionMissingFields(q *Question, key string) []string {
	if q == nil {
		return []string{key}
	}
	var missing []string
	if q.Question == "" {
		missing = append(missing, key+".question")
	}
	if q.RequiresOptions() && len(q.Options) < 2 {
		missing = append(missing, key+".options")
	}
	// short_answer without a stored answer is left for manual grading
	if q.CorrectAnswer.IsZero() && !q.ManualGrading() && q.Type != QuestionInteractive {
		missing = append(missing, key+".correct_answer")
	}
	return missing
}

// AnswerResult is the graded outcome of one submission. Pending results
// await manual grading.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	Pending       bool   `json:"pending,omitempty"`
	PointsAwarded int    `json:"points_awarded"`
	Explanation   string `json:"explanation,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
	Submitted     Answer `json:"submitted"`
}

// Grade scores a submitted answer against the question. Matching questions
// compare the ordered list; short answers compare case-insensitively after
// trimming; interactive questions are credited on submission.
func Grade(q Question, ans Answer) AnswerResult {
	res := AnswerResult{Submitted: ans, Explanation: q.Explanation}

	switch q.Type {
	case QuestionMatching:
		res.Correct = equalOrdered(ans.Values, q.CorrectAnswer.Values)
	case QuestionShortAnswer:
		if q.ManualGrading() {
			res.Pending = true
			return res
		}
		res.Correct = strings.EqualFold(strings.TrimSpace(ans.Value), strings.TrimSpace(q.CorrectAnswer.Value))
	case QuestionInteractive:
		res.Correct = true
	default: // multiple_choice, true_false
		res.Correct = ans.Value == q.CorrectAnswer.Value
	}

	if res.Correct {
		res.PointsAwarded = q.Points
	}
	if q.Feedback != nil {
		if res.Correct {
			res.Feedback = q.Feedback.Correct
		} else {
			res.Feedback = q.Feedback.Incorrect
		}
	}
	return res
}

func equalOrdered(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
