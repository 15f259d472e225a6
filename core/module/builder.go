package module

import (
	"context"
	"errors"
	"time"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

// BuilderStep is one of the six authoring wizard steps.
type BuilderStep int

const (
	StepBasicInfo BuilderStep = iota
	StepContentStructure
	StepMultimedia
	StepInteractiveElements
	StepAssessment
	StepReview
)

var builderStepNames = [...]string{
	"Basic Info",
	"Content Structure",
	"Multimedia",
	"Interactive Elements",
	"Assessment",
	"Review",
}

func (s BuilderStep) String() string {
	if s < StepBasicInfo || s > StepReview {
		return "Unknown"
	}
	return builderStepNames[s]
}

// BuilderSteps lists the wizard steps in order, for step indicators.
func BuilderSteps() []BuilderStep {
	return []BuilderStep{StepBasicInfo, StepContentStructure, StepMultimedia, StepInteractiveElements, StepAssessment, StepReview}
}

// DocumentStore is the persistence collaborator the Builder hands the
// assembled document to. *Service satisfies it.
type DocumentStore interface {
	Create(ctx context.Context, doc Module) (Module, error)
	Update(ctx context.Context, id string, doc Module) (Module, error)
}

// Builder holds the single in-progress module document during authoring.
// Navigation between steps is deliberately unguarded: authoring is
// exploratory, so any step may be jumped to at any time. Only the terminal
// Save is gated, by the full-document validation of the Review step.
type Builder struct {
	doc       Module
	step      BuilderStep
	editingID string
}

// NewBuilder starts authoring a fresh module for the given creator.
func NewBuilder(creatorID string) *Builder {
	return &Builder{
		doc: Module{
			Difficulty: DifficultyBeginner,
			CreatedBy:  creatorID,
		},
	}
}

// EditBuilder starts the wizard over an existing document; Save will
// dispatch to Update instead of Create.
func EditBuilder(doc Module) *Builder {
	return &Builder{doc: doc, editingID: doc.ID}
}

func (b *Builder) Step() BuilderStep { return b.step }
func (b *Builder) Editing() bool     { return b.editingID != "" }

// Document returns a snapshot of the in-progress document.
func (b *Builder) Document() Module { return b.doc }

// GoTo jumps directly to any step (step indicators are clickable).
// Out-of-range steps are a no-op.
func (b *Builder) GoTo(step BuilderStep) {
	if step < StepBasicInfo || step > StepReview {
		return
	}
	b.step = step
}

// Next advances one step; a no-op at Review.
func (b *Builder) Next() {
	if b.step < StepReview {
		b.step++
	}
}

// Back retreats one step; a no-op at BasicInfo.
func (b *Builder) Back() {
	if b.step > StepBasicInfo {
		b.step--
	}
}

// Basic info setters

func (b *Builder) SetTitle(title string)      { b.doc.Title = core.CleanString(title) }
func (b *Builder) SetDescription(desc string) { b.doc.Description = core.CleanString(desc) }
func (b *Builder) SetCategory(categoryID string) {
	b.doc.CategoryID = categoryID
}

func (b *Builder) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return errors.New("invalid difficulty level")
	}
	b.doc.Difficulty = d
	return nil
}

func (b *Builder) SetEstimatedDuration(minutes int) { b.doc.EstimatedDurationMinutes = minutes }
func (b *Builder) SetTargetClass(classID string)    { b.doc.TargetClassID = classID }

func (b *Builder) SetTargetLearningStyles(styles []LearningStyle) error {
	for _, s := range styles {
		if !s.Valid() {
			return errors.New("invalid learning style: " + string(s))
		}
	}
	b.doc.TargetLearningStyles = styles
	return nil
}

// String-array item operations (learning objectives, prerequisites,
// multimedia bundles, metadata lists).

func (b *Builder) AddObjective(s string) { b.doc.Objectives = appendItem(b.doc.Objectives, s) }
func (b *Builder) UpdateObjective(i int, s string) error {
	updated, err := updateItem(b.doc.Objectives, i, s)
	if err != nil {
		return err
	}
	b.doc.Objectives = updated
	return nil
}
func (b *Builder) RemoveObjective(i int) error {
	updated, err := removeItem(b.doc.Objectives, i)
	if err != nil {
		return err
	}
	b.doc.Objectives = updated
	return nil
}

func (b *Builder) AddPrerequisite(s string) { b.doc.Prerequisites = appendItem(b.doc.Prerequisites, s) }
func (b *Builder) RemovePrerequisite(i int) error {
	updated, err := removeItem(b.doc.Prerequisites, i)
	if err != nil {
		return err
	}
	b.doc.Prerequisites = updated
	return nil
}

func (b *Builder) AddVideo(url string) {
	b.doc.Multimedia.Videos = appendItem(b.doc.Multimedia.Videos, url)
}
func (b *Builder) AddImage(url string) {
	b.doc.Multimedia.Images = appendItem(b.doc.Multimedia.Images, url)
}
func (b *Builder) AddPodcast(url string) {
	b.doc.Multimedia.Podcasts = appendItem(b.doc.Multimedia.Podcasts, url)
}

func (b *Builder) RemoveVideo(i int) error {
	updated, err := removeItem(b.doc.Multimedia.Videos, i)
	if err != nil {
		return err
	}
	b.doc.Multimedia.Videos = updated
	return nil
}

func (b *Builder) RemoveImage(i int) error {
	updated, err := removeItem(b.doc.Multimedia.Images, i)
	if err != nil {
		return err
	}
	b.doc.Multimedia.Images = updated
	return nil
}

func (b *Builder) RemovePodcast(i int) error {
	updated, err := removeItem(b.doc.Multimedia.Podcasts, i)
	if err != nil {
		return err
	}
	b.doc.Multimedia.Podcasts = updated
	return nil
}

func (b *Builder) AddContentStandard(s string) {
	b.doc.ContentStandards = appendItem(b.doc.ContentStandards, s)
}
func (b *Builder) AddVocabulary(s string) { b.doc.Vocabulary = appendItem(b.doc.Vocabulary, s) }
func (b *Builder) AddAccessibilityFeature(s string) {
	b.doc.AccessibilityFeatures = appendItem(b.doc.AccessibilityFeatures, s)
}

func (b *Builder) SetInteractiveFlags(flags InteractiveFlags) { b.doc.Interactive = flags }

// Assessment question list operations

func (b *Builder) AddAssessmentQuestion(q Question) error {
	if !q.Type.Valid() {
		return errors.New("invalid question type")
	}
	if q.Points < 1 {
		q.Points = 1
	}
	questions := make([]Question, 0, len(b.doc.AssessmentQuestions)+1)
	questions = append(questions, b.doc.AssessmentQuestions...)
	b.doc.AssessmentQuestions = append(questions, q)
	return nil
}

func (b *Builder) RemoveAssessmentQuestion(i int) error {
	if i < 0 || i >= len(b.doc.AssessmentQuestions) {
		return ErrIndexOutOfRange
	}
	questions := make([]Question, 0, len(b.doc.AssessmentQuestions)-1)
	questions = append(questions, b.doc.AssessmentQuestions[:i]...)
	b.doc.AssessmentQuestions = append(questions, b.doc.AssessmentQuestions[i+1:]...)
	return nil
}

// Section operations, delegating to the immutable-update primitives.

func (b *Builder) AddSection() {
	b.doc = AddSection(b.doc)
}

func (b *Builder) UpdateSection(idx int, patch SectionPatch) error {
	doc, err := UpdateSection(b.doc, idx, patch)
	if err != nil {
		return err
	}
	b.doc = doc
	return nil
}

func (b *Builder) RemoveSection(idx int) error {
	doc, err := RemoveSection(b.doc, idx)
	if err != nil {
		return err
	}
	b.doc = doc
	return nil
}

func (b *Builder) MoveSection(from, to int) error {
	doc, err := MoveSection(b.doc, from, to)
	if err != nil {
		return err
	}
	b.doc = doc
	return nil
}

// ReviewIssues runs the full-document validation shown on the Review step.
func (b *Builder) ReviewIssues() []string {
	return Validate(b.doc)
}

// CanSave reports whether the terminal Save is enabled.
func (b *Builder) CanSave() bool {
	return len(b.ReviewIssues()) == 0
}

// Save validates and hands the assembled document to the store,
// dispatching to create or update depending on whether an editing target
// was supplied. A module without sections is rejected before full
// validation even runs. On failure the in-progress document is untouched;
// on success the builder state is left as-is and the caller resets it.
func (b *Builder) Save(ctx context.Context, store DocumentStore) (Module, error) {
	if len(b.doc.Sections) == 0 {
		return Module{}, core.NewValidationError(errors.New(issueSectionRequired))
	}
	if issues := b.ReviewIssues(); len(issues) > 0 {
		flds := make([]core.FieldError, 0, len(issues))
		for _, issue := range issues {
			flds = append(flds, core.FieldError{Field: "module", Error: issue})
		}
		return Module{}, core.NewValidationError(errors.New("module is incomplete"), flds...)
	}

	doc := b.doc
	doc.UpdatedAt = time.Now().UTC()
	if b.editingID != "" {
		return store.Update(ctx, b.editingID, doc)
	}
	doc.CreatedAt = doc.UpdatedAt
	return store.Create(ctx, doc)
}

// slice helpers shared by the array-item operations

func appendItem(ss []string, s string) []string {
	out := make([]string, 0, len(ss)+1)
	out = append(out, ss...)
	return append(out, s)
}

func updateItem(ss []string, i int, s string) ([]string, error) {
	if i < 0 || i >= len(ss) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]string, len(ss))
	copy(out, ss)
	out[i] = s
	return out, nil
}

func removeItem(ss []string, i int) ([]string, error) {
	if i < 0 || i >= len(ss) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]string, 0, len(ss)-1)
	out = append(out, ss[:i]...)
	return append(out, ss[i+1:]...), nil
}
