package module

import (
	"time"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Category owns a module: a (subject, learning style, grade level) bucket.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subject       string        `json:"subject"`
	LearningStyle LearningStyle `json:"learning_style,omitempty"`
	GradeLevel    string        `json:"grade_level,omitempty"`
}

// MultimediaContent bundles named lists of media references.
type MultimediaContent struct {
	Videos   []string `json:"videos,omitempty"`
	Images   []string `json:"images,omitempty"`
	Podcasts []string `json:"podcasts,omitempty"`
}

// InteractiveFlags are the module-level interactive-element toggles.
type InteractiveFlags struct {
	DragAndDrop  bool `json:"drag_and_drop,omitempty"`
	Simulation   bool `json:"simulation,omitempty"`
	VirtualLab   bool `json:"virtual_lab,omitempty"`
	Gamification bool `json:"gamification,omitempty"`
}

// Module is the top-level learning unit: an ordered list of typed content
// sections plus the authoring metadata around them. Its JSON form is the
// interchange format between Builder, persistence and Viewer and must
// round-trip losslessly.
type Module struct {
	ID                       string            `json:"id"`
	Title                    string            `json:"title"`
	Description              string            `json:"description"`
	CategoryID               string            `json:"category_id"`
	Objectives               []string          `json:"learning_objectives"`
	Difficulty               Difficulty        `json:"difficulty_level"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	Prerequisites            []string          `json:"prerequisites,omitempty"`
	Sections                 []ContentSection  `json:"sections"`
	Multimedia               MultimediaContent `json:"multimedia_content"`
	Interactive              InteractiveFlags  `json:"interactive_elements"`
	AssessmentQuestions      []Question        `json:"assessment_questions,omitempty"`
	ContentStandards         []string          `json:"content_standards,omitempty"`
	Vocabulary               []string          `json:"vocabulary,omitempty"`
	AccessibilityFeatures    []string          `json:"accessibility_features,omitempty"`
	Published                bool              `json:"is_published"`
	CreatedBy                string            `json:"created_by"`
	CreatedAt                time.Time         `json:"created_at"` // UTC
	UpdatedAt                time.Time         `json:"updated_at"` // UTC
	TargetClassID            string            `json:"target_class_id,omitempty"`
	TargetLearningStyles     []LearningStyle   `json:"target_learning_styles,omitempty"`
}

// Deliverable reports whether the module may be put in front of learners.
func (m Module) Deliverable() bool {
	return len(m.Sections) > 0
}

// VisibleTo enforces the publication invariant: an unpublished module is
// visible only to its creator.
func (m Module) VisibleTo(userID string) bool {
	return m.Published || m.CreatedBy == userID
}

// TargetsStyle reports whether the module is aimed at any of the given
// learning styles; a module with no targets is aimed at everyone.
func (m Module) TargetsStyle(styles ...LearningStyle) bool {
	if len(m.TargetLearningStyles) == 0 {
		return true
	}
	for _, want := range styles {
		for _, have := range m.TargetLearningStyles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Progress is the learner-side completion view of one module.
type Progress struct {
	ModuleID          string          `json:"module_id"`
	CompletedSections map[string]bool `json:"completed_sections"`
	Percent           float64         `json:"percent"`
}

type QueryFilter struct {
	Search     string     `query:"search"`
	CategoryID string     `query:"category"`
	Difficulty Difficulty `query:"difficulty"`
	Published  *bool      `query:"is_published"`
	CreatedBy  string     `query:"created_by"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CategoryID == "" && qf.Difficulty == "" && qf.Published == nil && qf.CreatedBy == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
