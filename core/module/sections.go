package module

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange     = errors.New("section index out of range")
	ErrContentTypeMismatch = errors.New("content payload does not match the section's content type")
)

const defaultTimeEstimateMinutes = 5

// Section mutations are immutable updates: each returns a document with a
// fresh section slice so consumers can detect the change by identity.
// Callers must validate indices against the current length; out-of-range
// indices fail, they are never clamped.

// AddSection appends a new default section: fresh id, position = length+1,
// text content type with an empty payload. Always succeeds.
func AddSection(doc Module) Module {
	sections := make([]ContentSection, 0, len(doc.Sections)+1)
	sections = append(sections, doc.Sections...)
	sections = append(sections, ContentSection{
		ID:                  uuid.New().String(),
		ContentType:         ContentText,
		Content:             NewContent(ContentText),
		Position:            len(doc.Sections) + 1,
		TimeEstimateMinutes: defaultTimeEstimateMinutes,
	})
	doc.Sections = sections
	return doc
}

// SectionPatch carries the fields UpdateSection merges; nil fields are
// left untouched.
type SectionPatch struct {
	Title               *string
	ContentType         *ContentType
	Content             SectionContent
	IsRequired          *bool
	TimeEstimateMinutes *int
	LearningStyleTags   []LearningStyle
	InteractiveElements []string
	KeyPoints           []string
}

// UpdateSection merges patch into the section at idx. Switching the
// content type resets the payload to the new type's empty payload:
// the old payload's shape no longer matches and keeping it would reintroduce
// the mismatched type/payload pairs the tagged union exists to prevent.
func UpdateSection(doc Module, idx int, patch SectionPatch) (Module, error) {
	if idx < 0 || idx >= len(doc.Sections) {
		return Module{}, ErrIndexOutOfRange
	}

	sections := make([]ContentSection, len(doc.Sections))
	copy(sections, doc.Sections)
	sec := sections[idx]

	if patch.ContentType != nil && *patch.ContentType != sec.ContentType {
		sec.ContentType = *patch.ContentType
		sec.Content = NewContent(*patch.ContentType)
	}
	if patch.Content != nil {
		if patch.Content.contentType() != sec.ContentType {
			return Module{}, ErrContentTypeMismatch
		}
		sec.Content = patch.Content
	}
	if patch.Title != nil {
		sec.Title = *patch.Title
	}
	if patch.IsRequired != nil {
		sec.IsRequired = *patch.IsRequired
	}
	if patch.TimeEstimateMinutes != nil {
		sec.TimeEstimateMinutes = *patch.TimeEstimateMinutes
	}
	if patch.LearningStyleTags != nil {
		sec.LearningStyleTags = patch.LearningStyleTags
	}
	if patch.InteractiveElements != nil {
		sec.InteractiveElements = patch.InteractiveElements
	}
	if patch.KeyPoints != nil {
		sec.KeyPoints = patch.KeyPoints
	}

	sections[idx] = sec
	doc.Sections = sections
	return doc, nil
}

// RemoveSection removes the section at idx. Remaining position values are
// NOT renumbered: list order, not the position field, is authoritative for
// rendering. Callers needing stable externally-referenced positions must
// renumber explicitly.
func RemoveSection(doc Module, idx int) (Module, error) {
	if idx < 0 || idx >= len(doc.Sections) {
		return Module{}, ErrIndexOutOfRange
	}
	sections := make([]ContentSection, 0, len(doc.Sections)-1)
	sections = append(sections, doc.Sections[:idx]...)
	sections = append(sections, doc.Sections[idx+1:]...)
	doc.Sections = sections
	return doc, nil
}

// MoveSection moves the section at from to list index to. Positions are
// not renumbered, same as RemoveSection.
func MoveSection(doc Module, from, to int) (Module, error) {
	n := len(doc.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return Module{}, ErrIndexOutOfRange
	}
	if from == to {
		return doc, nil
	}
	sections := make([]ContentSection, 0, n)
	sections = append(sections, doc.Sections...)
	sec := sections[from]
	sections = append(sections[:from], sections[from+1:]...)

	tail := make([]ContentSection, 0, n)
	tail = append(tail, sections[:to]...)
	tail = append(tail, sec)
	tail = append(tail, sections[to:]...)
	doc.Sections = tail
	return doc, nil
}
