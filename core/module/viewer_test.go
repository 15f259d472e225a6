package module

import (
	"testing"
)

// threeSectionDoc mirrors the canonical delivery scenario: text,
// assessment (multiple choice, two options) and activity.
func threeSectionDoc() Module {
	return Module{
		ID: "mod-1",
		Sections: []ContentSection{
			{ID: "s-text", ContentType: ContentText, Position: 1, Content: &TextContent{Text: "read me"}},
			{ID: "s-quiz", ContentType: ContentAssessment, Position: 2, Content: &AssessmentContent{Quiz: &Question{
				Type:          QuestionMultipleChoice,
				Question:      "Pick one",
				Options:       []string{"A", "B"},
				CorrectAnswer: Answer{Value: "A"},
				Points:        1,
				Explanation:   "A was right all along.",
			}}},
			{ID: "s-act", ContentType: ContentActivity, Position: 3, Content: &ActivityContent{Activity: &ActivityData{
				Title: "Do it", Description: "hands on", Instructions: []string{"step 1"},
			}}},
		},
	}
}

func TestViewer_navigationBounds(t *testing.T) {
	v := NewViewer(threeSectionDoc(), ViewerOptions{})

	if v.CurrentIndex() != 0 {
		t.Fatalf("CurrentIndex() = %d; want 0", v.CurrentIndex())
	}
	if v.Back() {
		t.Error("Back() at first section reported movement")
	}
	if v.CurrentIndex() != 0 {
		t.Errorf("Back at 0 changed index to %d", v.CurrentIndex())
	}

	v.Next()
	v.Next()
	if v.CurrentIndex() != 2 {
		t.Fatalf("CurrentIndex() = %d; want 2", v.CurrentIndex())
	}
	// advancing past the last section is a no-op, not an error
	if v.Next() {
		t.Error("Next() at last section reported movement")
	}
	if v.CurrentIndex() != 2 {
		t.Errorf("Next at last section changed index to %d", v.CurrentIndex())
	}

	if v.GoTo(99) {
		t.Error("GoTo(99) reported movement")
	}
	if !v.GoTo(1) {
		t.Error("GoTo(1) failed")
	}
}

func TestViewer_assessmentFlow(t *testing.T) {
	var completions []string
	var done []string
	v := NewViewer(threeSectionDoc(), ViewerOptions{
		OnCompletion:  func(id string, completed bool) { completions = append(completions, id) },
		OnSectionDone: func(id string) { done = append(done, id) },
	})

	res, err := v.SubmitAnswer("s-quiz", Answer{Value: "A"})
	if err != nil {
		t.Fatalf("SubmitAnswer(): %v", err)
	}
	if !res.Correct {
		t.Error("res.Correct = false; want true")
	}
	if res.Explanation != "A was right all along." {
		t.Errorf("Explanation = %q; want the stored explanation", res.Explanation)
	}
	if res.PointsAwarded != 1 {
		t.Errorf("PointsAwarded = %d; want 1", res.PointsAwarded)
	}
	if !v.Completed("s-quiz") {
		t.Error("section not marked complete after submit")
	}
	if got := v.ProgressPercent(); got < 33.3 || got > 33.4 {
		t.Errorf("ProgressPercent() = %v; want ~33.33", got)
	}
	if len(completions) != 1 || completions[0] != "s-quiz" {
		t.Errorf("completion callbacks = %v; want [s-quiz]", completions)
	}
	if len(done) != 1 {
		t.Errorf("section-done callbacks = %v; want one", done)
	}

	// answers lock permanently within a session
	if _, err := v.SubmitAnswer("s-quiz", Answer{Value: "B"}); err != ErrAlreadyAnswered {
		t.Fatalf("second submit err = %v; want ErrAlreadyAnswered", err)
	}
	if res, _ := v.Result("s-quiz"); !res.Correct {
		t.Error("locked result was overwritten")
	}
}

func TestViewer_completionRules(t *testing.T) {
	v := NewViewer(threeSectionDoc(), ViewerOptions{})

	// passive sections complete only via an explicit caller action
	if err := v.MarkComplete("s-text"); err != nil {
		t.Fatalf("MarkComplete(text): %v", err)
	}
	// assessments refuse MarkComplete before submission
	if err := v.MarkComplete("s-quiz"); err != ErrSubmitRequired {
		t.Errorf("MarkComplete(quiz) err = %v; want ErrSubmitRequired", err)
	}
	// activities complete via Acknowledge, not MarkComplete
	if err := v.MarkComplete("s-act"); err != ErrAcknowledgeOnly {
		t.Errorf("MarkComplete(activity) err = %v; want ErrAcknowledgeOnly", err)
	}
	if err := v.Acknowledge("s-act"); err != nil {
		t.Fatalf("Acknowledge(): %v", err)
	}
	if err := v.Acknowledge("s-text"); err != ErrAcknowledgeOnly {
		t.Errorf("Acknowledge(text) err = %v; want ErrAcknowledgeOnly", err)
	}
	if err := v.MarkComplete("nope"); err != ErrSectionNotFound {
		t.Errorf("MarkComplete(unknown) err = %v; want ErrSectionNotFound", err)
	}
}

func TestViewer_progressMonotonic(t *testing.T) {
	fired := 0
	v := NewViewer(threeSectionDoc(), ViewerOptions{
		OnCompletion: func(string, bool) { fired++ },
	})

	before := v.CompletedCount()
	for i := 0; i < 3; i++ {
		if err := v.MarkComplete("s-text"); err != nil {
			t.Fatalf("MarkComplete(): %v", err)
		}
		if got := v.CompletedCount(); got < before {
			t.Fatalf("CompletedCount decreased: %d -> %d", before, got)
		}
		before = v.CompletedCount()
	}
	if v.CompletedCount() != 1 {
		t.Errorf("CompletedCount() = %d; want 1", v.CompletedCount())
	}
	if fired != 1 {
		t.Errorf("completion callback fired %d times; want once", fired)
	}
}

func TestViewer_seededProgress(t *testing.T) {
	v := NewViewer(threeSectionDoc(), ViewerOptions{
		InitialProgress: map[string]bool{"s-text": true},
	})
	if !v.Completed("s-text") {
		t.Error("seeded section not completed")
	}
	if v.CompletedCount() != 1 {
		t.Errorf("CompletedCount() = %d; want 1", v.CompletedCount())
	}
}

func TestViewer_callbackPanicIsContained(t *testing.T) {
	v := NewViewer(threeSectionDoc(), ViewerOptions{
		OnCompletion: func(string, bool) { panic("flaky progress store") },
	})
	if err := v.MarkComplete("s-text"); err != nil {
		t.Fatalf("MarkComplete(): %v", err)
	}
	if !v.Completed("s-text") {
		t.Error("completion lost to a panicking callback")
	}
}

func TestViewer_renderPlaceholders(t *testing.T) {
	doc := Module{Sections: []ContentSection{
		{ID: "v", ContentType: ContentVideo, Content: &VideoContent{}, Position: 1},
		{ID: "t", ContentType: ContentText, Content: &TextContent{Text: "hello"}, Position: 2},
	}}
	v := NewViewer(doc, ViewerOptions{})

	rendered := v.RenderAll()
	if !rendered[0].Placeholder {
		t.Error("video without payload did not render as placeholder")
	}
	if rendered[1].Placeholder {
		t.Error("populated text rendered as placeholder")
	}
	if rendered[1].Text != "hello" {
		t.Errorf("Text = %q; want hello", rendered[1].Text)
	}
}

func TestViewer_renderHidesCorrectAnswer(t *testing.T) {
	v := NewViewer(threeSectionDoc(), ViewerOptions{})
	v.GoTo(1)
	rendered, ok := v.RenderCurrent()
	if !ok {
		t.Fatal("RenderCurrent() failed")
	}
	if rendered.Question == nil {
		t.Fatal("Question not rendered")
	}
	if rendered.Question.Widget != "radio-group" {
		t.Errorf("Widget = %q; want radio-group", rendered.Question.Widget)
	}
	if len(rendered.Question.Options) != 2 {
		t.Errorf("Options = %v; want both options", rendered.Question.Options)
	}
}
