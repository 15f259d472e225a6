package module

import "testing"

func TestGrade(t *testing.T) {
	tests := []struct {
		name       string
		q          Question
		ans        Answer
		wantOK     bool
		wantPend   bool
		wantPoints int
		wantFeed   string
	}{
		{
			name:       "multiple choice correct",
			q:          Question{Type: QuestionMultipleChoice, CorrectAnswer: Answer{Value: "B"}, Points: 5},
			ans:        Answer{Value: "B"},
			wantOK:     true,
			wantPoints: 5,
		},
		{
			name: "multiple choice wrong",
			q:    Question{Type: QuestionMultipleChoice, CorrectAnswer: Answer{Value: "B"}, Points: 5},
			ans:  Answer{Value: "A"},
		},
		{
			name:       "true false",
			q:          Question{Type: QuestionTrueFalse, CorrectAnswer: Answer{Value: "true"}, Points: 1},
			ans:        Answer{Value: "true"},
			wantOK:     true,
			wantPoints: 1,
		},
		{
			name:       "matching ordered compare",
			q:          Question{Type: QuestionMatching, CorrectAnswer: Answer{Values: []string{"a-1", "b-2"}}, Points: 2},
			ans:        Answer{Values: []string{"a-1", "b-2"}},
			wantOK:     true,
			wantPoints: 2,
		},
		{
			name: "matching order matters",
			q:    Question{Type: QuestionMatching, CorrectAnswer: Answer{Values: []string{"a-1", "b-2"}}, Points: 2},
			ans:  Answer{Values: []string{"b-2", "a-1"}},
		},
		{
			name:       "short answer trims and ignores case",
			q:          Question{Type: QuestionShortAnswer, CorrectAnswer: Answer{Value: "Pension"}, Points: 3},
			ans:        Answer{Value: "  pension "},
			wantOK:     true,
			wantPoints: 3,
		},
		{
			name:     "short answer without key is pending",
			q:        Question{Type: QuestionShortAnswer, Points: 3},
			ans:      Answer{Value: "anything"},
			wantPend: true,
		},
		{
			name:       "interactive credits on submission",
			q:          Question{Type: QuestionInteractive, Points: 2},
			ans:        Answer{Value: "done"},
			wantOK:     true,
			wantPoints: 2,
		},
		{
			name: "incorrect feedback surfaces",
			q: Question{
				Type: QuestionMultipleChoice, CorrectAnswer: Answer{Value: "A"}, Points: 1,
				Feedback: &Feedback{Correct: "nice", Incorrect: "review the section"},
			},
			ans:      Answer{Value: "C"},
			wantFeed: "review the section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Grade(tt.q, tt.ans)
			if res.Correct != tt.wantOK {
				t.Errorf("Correct = %v; want %v", res.Correct, tt.wantOK)
			}
			if res.Pending != tt.wantPend {
				t.Errorf("Pending = %v; want %v", res.Pending, tt.wantPend)
			}
			if res.PointsAwarded != tt.wantPoints {
				t.Errorf("PointsAwarded = %d; want %d", res.PointsAwarded, tt.wantPoints)
			}
			if tt.wantFeed != "" && res.Feedback != tt.wantFeed {
				t.Errorf("Feedback = %q; want %q", res.Feedback, tt.wantFeed)
			}
		})
	}
}

func TestQuestion_missingFields(t *testing.T) {
	tests := []struct {
		name string
		q    *Question
		want []string
	}{
		{
			name: "nil payload",
			q:    nil,
			want: []string{"quiz_data"},
		},
		{
			name: "complete multiple choice",
			q: &Question{
				Type: QuestionMultipleChoice, Question: "q?",
				Options: []string{"A", "B"}, CorrectAnswer: Answer{Value: "A"},
			},
			want: nil,
		},
		{
			name: "one option is not enough",
			q: &Question{
				Type: QuestionMultipleChoice, Question: "q?",
				Options: []string{"A"}, CorrectAnswer: Answer{Value: "A"},
			},
			want: []string{"quiz_data.options"},
		},
		{
			name: "true false needs an answer",
			q:    &Question{Type: QuestionTrueFalse, Question: "q?"},
			want: []string{"quiz_data.correct_answer"},
		},
		{
			name: "manual short answer is fine",
			q:    &Question{Type: QuestionShortAnswer, Question: "q?"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := questionMissingFields(tt.q, "quiz_data")
			if len(got) != len(tt.want) {
				t.Fatalf("missing = %v; want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("missing[%d] = %q; want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
