package class

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		GetClassByID(ctx context.Context, id string) (Class, error)
		QueryTeacherClasses(ctx context.Context, teacherID string) ([]Class, error)
		QueryStudentClasses(ctx context.Context, studentID string) ([]Class, error)
	}

	ServiceInterface interface {
		Get(ctx context.Context, id string) (Class, error)
		Teaching(ctx context.Context, teacherID string) ([]Class, error)
		Enrolled(ctx context.Context, studentID string) ([]Class, error)
		StudentClassIDs(ctx context.Context, userID string) ([]string, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *Service) Teaching(ctx context.Context, teacherID string) ([]Class, error) {
	return svc.repo.QueryTeacherClasses(ctx, teacherID)
}

func (svc *Service) Enrolled(ctx context.Context, studentID string) ([]Class, error) {
	return svc.repo.QueryStudentClasses(ctx, studentID)
}

// StudentClassIDs satisfies the module service's roster contract.
func (svc *Service) StudentClassIDs(ctx context.Context, userID string) ([]string, error) {
	classes, err := svc.repo.QueryStudentClasses(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
