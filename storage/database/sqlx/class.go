package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
)

type classRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Subject     null.String    `db:"subject"`
	GradeLevel  null.String    `db:"grade_level"`
	Description null.String    `db:"description"`
	TeacherID   null.String    `db:"teacher_id"`
	StudentIDs  pq.StringArray `db:"student_ids"`
	CreatedAt   null.Time      `db:"created_at"`
	UpdatedAt   null.Time      `db:"updated_at"`
}

func (row classRow) unpack() class.Class {
	return class.Class{
		ID:          row.ID,
		Name:        row.Name,
		Subject:     row.Subject.String,
		GradeLevel:  row.GradeLevel.String,
		Description: row.Description.String,
		TeacherID:   row.TeacherID.String,
		StudentIDs:  row.StudentIDs,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func unpackClasses(rows []classRow) []class.Class {
	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.unpack())
	}
	return classes
}

type classRepository struct {
	db core.DBExecutor
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db core.DBExecutor) *classRepository {
	return &classRepository{db: db}
}

func (repo classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return class.Class{}, class.ErrNotFound
	}
	var row classRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "finding class by ID")
	}
	return row.unpack(), nil
}

func (repo classRepository) QueryTeacherClasses(ctx context.Context, teacherID string) ([]class.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE teacher_id = $1 ORDER BY name`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher classes")
	}
	return unpackClasses(rows), nil
}

func (repo classRepository) QueryStudentClasses(ctx context.Context, studentID string) ([]class.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE $1 = ANY(student_ids) ORDER BY name`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student classes")
	}
	return unpackClasses(rows), nil
}
