package module

import (
	"fmt"
	"strings"
)

// Validation issues are data, never panics: ValidateSection and Validate
// return the COMPLETE list of problems so one pass can drive both the
// blocking save guard and an inline issue list.

const (
	issueTitleRequired     = "Title is required"
	issueDescRequired      = "Description is required"
	issueCategoryRequired  = "Category is required"
	issueObjectiveRequired = "At least one learning objective is required"
	issueSectionRequired   = "At least one content section is required."

	unsupportedTypeMsg = "unsupported content type"
)

// ValidateSection checks the section's type-specific required fields and
// returns every missing field, not just the first.
func ValidateSection(sec ContentSection) []string {
	if !sec.ContentType.Valid() || sec.Content == nil {
		return []string{unsupportedTypeMsg}
	}
	if sec.Content.contentType() != sec.ContentType {
		// cannot happen through the public API; guards hand-built sections
		return []string{unsupportedTypeMsg}
	}
	return sec.Content.missingFields()
}

// SectionValid reports whether a section is structurally complete.
func SectionValid(sec ContentSection) bool {
	return len(ValidateSection(sec)) == 0
}

// Validate runs the full-document validation that gates the Builder's
// terminal save: title, description, category, at least one non-empty
// learning objective, at least one content section, and every section
// individually valid.
func Validate(doc Module) []string {
	var issues []string

	if strings.TrimSpace(doc.Title) == "" {
		issues = append(issues, issueTitleRequired)
	}
	if strings.TrimSpace(doc.Description) == "" {
		issues = append(issues, issueDescRequired)
	}
	if doc.CategoryID == "" {
		issues = append(issues, issueCategoryRequired)
	}
	if !hasNonEmpty(doc.Objectives) {
		issues = append(issues, issueObjectiveRequired)
	}
	if len(doc.Sections) == 0 {
		issues = append(issues, issueSectionRequired)
	}
	for i, sec := range doc.Sections {
		if missing := ValidateSection(sec); len(missing) > 0 {
			label := sec.ContentType.Info().Label
			if label == "" {
				label = string(sec.ContentType)
			}
			issues = append(issues, fmt.Sprintf("Section %d (%s): %s", i+1, label, strings.Join(missing, ", ")))
		}
	}
	return issues
}

func hasNonEmpty(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
