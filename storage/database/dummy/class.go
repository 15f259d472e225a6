package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
)

type classRepository struct {
	db *classTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) *classRepository {
	return &classRepository{db: db.class}
}

// AddClass seeds a class; test helper.
func (repo *classRepository) AddClass(cls class.Class) class.Class {
	repo.db.Lock()
	defer repo.db.Unlock()

	if cls.ID == "" {
		cls.ID = uuid.New().String()
	}
	repo.db.table[cls.ID] = &cls
	return cls
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) QueryTeacherClasses(ctx context.Context, teacherID string) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var classes []class.Class
	for _, cls := range repo.db.table {
		if cls.TeacherID == teacherID {
			classes = append(classes, *cls)
		}
	}
	sortClasses(classes)
	return classes, nil
}

func (repo *classRepository) QueryStudentClasses(ctx context.Context, studentID string) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var classes []class.Class
	for _, cls := range repo.db.table {
		if cls.HasStudent(studentID) {
			classes = append(classes, *cls)
		}
	}
	sortClasses(classes)
	return classes, nil
}

func sortClasses(classes []class.Class) {
	sort.SliceStable(classes, func(a, b int) bool { return classes[a].Name < classes[b].Name })
}
