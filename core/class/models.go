package class

import "time"

// Class is a teacher's roster; learning modules may be targeted at one.
type Class struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject,omitempty"`
	GradeLevel  string    `json:"grade_level,omitempty"`
	Description string    `json:"description,omitempty"`
	TeacherID   string    `json:"teacher_id"`
	StudentIDs  []string  `json:"student_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// HasStudent reports whether the student is on the roster.
func (c Class) HasStudent(userID string) bool {
	for _, id := range c.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}
