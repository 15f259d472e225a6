package module

import (
	"errors"
	"fmt"
	"math"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrAlreadyAnswered = errors.New("answer already submitted for this section")
	ErrNotAnAssessment = errors.New("section does not accept answers")
	ErrSubmitRequired  = errors.New("section completes on answer submission")
	ErrAcknowledgeOnly = errors.New("section completes on acknowledgement")
)

type (
	// CompletionFunc receives every raw (sectionID, completed) change.
	CompletionFunc func(sectionID string, completed bool)
	// SectionDoneFunc fires once when a section becomes fully done.
	SectionDoneFunc func(sectionID string)

	ViewerOptions struct {
		// InitialProgress seeds the completion map from persisted progress.
		InitialProgress map[string]bool
		OnCompletion    CompletionFunc
		OnSectionDone   SectionDoneFunc
		Logger          core.Logger
	}

	// Viewer renders a finished module one section at a time and owns the
	// per-section completion map. The document is read-only; the only
	// state the Viewer mutates is its own.
	Viewer struct {
		doc       Module
		idx       int
		completed map[string]bool
		answers   map[string]AnswerResult
		opts      ViewerOptions
	}
)

func NewViewer(doc Module, opts ViewerOptions) *Viewer {
	completed := make(map[string]bool, len(doc.Sections))
	for _, sec := range doc.Sections {
		completed[sec.ID] = opts.InitialProgress[sec.ID]
	}
	return &Viewer{
		doc:       doc,
		completed: completed,
		answers:   make(map[string]AnswerResult),
		opts:      opts,
	}
}

func (v *Viewer) CurrentIndex() int  { return v.idx }
func (v *Viewer) TotalSections() int { return len(v.doc.Sections) }

func (v *Viewer) Current() (ContentSection, bool) {
	if v.idx < 0 || v.idx >= len(v.doc.Sections) {
		return ContentSection{}, false
	}
	return v.doc.Sections[v.idx], true
}

// Next advances to the following section; at the last section it is a
// no-op and reports false.
func (v *Viewer) Next() bool {
	if v.idx >= len(v.doc.Sections)-1 {
		return false
	}
	v.idx++
	return true
}

// Back retreats to the previous section; at the first section it is a
// no-op and reports false.
func (v *Viewer) Back() bool {
	if v.idx <= 0 {
		return false
	}
	v.idx--
	return true
}

// GoTo jumps to the section at i; out-of-bounds indices are a no-op.
func (v *Viewer) GoTo(i int) bool {
	if i < 0 || i >= len(v.doc.Sections) {
		return false
	}
	v.idx = i
	return true
}

func (v *Viewer) Completed(sectionID string) bool { return v.completed[sectionID] }

func (v *Viewer) CompletedCount() int {
	var n int
	for _, done := range v.completed {
		if done {
			n++
		}
	}
	return n
}

// ProgressPercent is completedCount / totalSections * 100; rounding is the
// display layer's concern.
func (v *Viewer) ProgressPercent() float64 {
	total := len(v.doc.Sections)
	if total == 0 {
		return 0
	}
	return float64(v.CompletedCount()) / float64(total) * 100
}

// Progress snapshots the completion state for persistence or display.
func (v *Viewer) Progress() Progress {
	completed := make(map[string]bool, len(v.completed))
	for id, done := range v.completed {
		completed[id] = done
	}
	return Progress{
		ModuleID:          v.doc.ID,
		CompletedSections: completed,
		Percent:           math.Round(v.ProgressPercent()),
	}
}

// MarkComplete records completion for a passive section (text, video,
// audio, table, diagram, highlight). Completion is monotonic: nothing
// ever sets a completed section back to false. Assessment and quick-check
// sections complete only through SubmitAnswer; activity and interactive
// sections through Acknowledge.
func (v *Viewer) MarkComplete(sectionID string) error {
	sec, ok := v.section(sectionID)
	if !ok {
		return ErrSectionNotFound
	}
	switch sec.ContentType {
	case ContentAssessment, ContentQuickCheck:
		if _, answered := v.answers[sectionID]; !answered {
			return ErrSubmitRequired
		}
	case ContentActivity, ContentInteractive:
		return ErrAcknowledgeOnly
	}
	v.complete(sectionID)
	return nil
}

// Acknowledge marks an activity or interactive section as done.
func (v *Viewer) Acknowledge(sectionID string) error {
	sec, ok := v.section(sectionID)
	if !ok {
		return ErrSectionNotFound
	}
	if sec.ContentType != ContentActivity && sec.ContentType != ContentInteractive {
		return ErrAcknowledgeOnly
	}
	v.complete(sectionID)
	return nil
}

// SubmitAnswer grades a submission against an assessment or quick-check
// section and locks it: answers are final within a session, so a second
// submission fails with ErrAlreadyAnswered instead of regrading.
func (v *Viewer) SubmitAnswer(sectionID string, ans Answer) (AnswerResult, error) {
	sec, ok := v.section(sectionID)
	if !ok {
		return AnswerResult{}, ErrSectionNotFound
	}

	var q *Question
	switch content := sec.Content.(type) {
	case *AssessmentContent:
		q = content.Quiz
	case *QuickCheckContent:
		q = content.QuickCheck
	default:
		return AnswerResult{}, ErrNotAnAssessment
	}
	if q == nil {
		return AnswerResult{}, ErrNotAnAssessment
	}
	if _, answered := v.answers[sectionID]; answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	res := Grade(*q, ans)
	v.answers[sectionID] = res
	v.complete(sectionID)
	return res, nil
}

// Result returns the locked grading outcome for a section, if any.
func (v *Viewer) Result(sectionID string) (AnswerResult, bool) {
	res, ok := v.answers[sectionID]
	return res, ok
}

func (v *Viewer) section(id string) (ContentSection, bool) {
	for _, sec := range v.doc.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return ContentSection{}, false
}

func (v *Viewer) complete(sectionID string) {
	if v.completed[sectionID] {
		return // monotonic; callbacks fire once
	}
	v.completed[sectionID] = true
	if v.opts.OnCompletion != nil {
		v.notify(func() { v.opts.OnCompletion(sectionID, true) })
	}
	if v.opts.OnSectionDone != nil {
		v.notify(func() { v.opts.OnSectionDone(sectionID) })
	}
}

// notify shields rendering from collaborator failures: a panicking
// progress-persistence callback is logged, never propagated.
func (v *Viewer) notify(call func()) {
	defer func() {
		if r := recover(); r != nil && v.opts.Logger != nil {
			v.opts.Logger.Error(fmt.Sprintf("viewer: progress callback panic: %v", r), r)
		}
	}()
	call()
}
