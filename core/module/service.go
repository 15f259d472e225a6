package module

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

var (
	ErrNotFound       = errors.New("module not found")
	ErrNotDeliverable = errors.New("a module must have at least one content section to be published")
)

type (
	Repository interface {
		CreateModule(ctx context.Context, doc Module) (Module, error)
		GetModuleByID(ctx context.Context, id string) (Module, error)
		// QueryModules applies AND semantics on available QueryFilter fields;
		// Search matches title or description case-insensitively.
		QueryModules(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Module, error)
		UpdateModule(ctx context.Context, doc Module) (Module, error)
		DeleteModulesByID(ctx context.Context, ids ...string) error
		SetModulePublished(ctx context.Context, id string, published bool) (Module, error)
	}

	CategoryRepository interface {
		QueryCategories(ctx context.Context) ([]Category, error)
	}

	ProgressRepository interface {
		GetModuleProgress(ctx context.Context, userID, moduleID string) (map[string]bool, error)
		SaveSectionProgress(ctx context.Context, userID, moduleID, sectionID string, completed bool) error
	}

	// ClassRoster scopes which class-targeted modules a student may see.
	// Implemented by the class service.
	ClassRoster interface {
		StudentClassIDs(ctx context.Context, userID string) ([]string, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, doc Module) (Module, error)
		Get(ctx context.Context, id string) (Module, error)
		GetVisible(ctx context.Context, id, userID string, isAdmin bool) (Module, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Module, error)
		VisibleTo(ctx context.Context, userID string, isAdmin bool) ([]Module, error)
		ForStudent(ctx context.Context, userID string, styles []LearningStyle) ([]Module, error)
		Update(ctx context.Context, id string, doc Module) (Module, error)
		Delete(ctx context.Context, ids ...string) error
		TogglePublish(ctx context.Context, id string, published bool) (Module, error)
		Categories(ctx context.Context) ([]Category, error)
		OpenViewer(ctx context.Context, userID, moduleID string) (*Viewer, error)
	}

	Service struct {
		repo     Repository
		catRepo  CategoryRepository
		progRepo ProgressRepository
		roster   ClassRoster
		logger   core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)
var _ DocumentStore = (*Service)(nil)

func NewService(repo Repository, catRepo CategoryRepository, progRepo ProgressRepository, roster ClassRoster, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		catRepo:  catRepo,
		progRepo: progRepo,
		roster:   roster,
		logger:   logger,
	}
}

// Create persists a fully validated document. Validation failures block
// the save; they never corrupt the document being edited.
func (svc *Service) Create(ctx context.Context, doc Module) (Module, error) {
	if err := validationError(doc); err != nil {
		return Module{}, err
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return svc.repo.CreateModule(ctx, doc)
}

func (svc *Service) Get(ctx context.Context, id string) (Module, error) {
	return svc.repo.GetModuleByID(ctx, id)
}

// GetVisible fetches a module applying the publication invariant: an
// unpublished module resolves to ErrNotFound for everyone but its creator
// (admins excepted), so its existence is not leaked.
func (svc *Service) GetVisible(ctx context.Context, id, userID string, isAdmin bool) (Module, error) {
	doc, err := svc.repo.GetModuleByID(ctx, id)
	if err != nil {
		return Module{}, err
	}
	if !isAdmin && !doc.VisibleTo(userID) {
		return Module{}, ErrNotFound
	}
	return doc, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Module, error) {
	return svc.repo.QueryModules(ctx, filter, ordering)
}

// VisibleTo lists modules the user may browse: everything published plus
// their own drafts; admins see all.
func (svc *Service) VisibleTo(ctx context.Context, userID string, isAdmin bool) ([]Module, error) {
	docs, err := svc.repo.QueryModules(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return docs, nil
	}
	visible := make([]Module, 0, len(docs))
	for _, doc := range docs {
		if doc.VisibleTo(userID) {
			visible = append(visible, doc)
		}
	}
	return visible, nil
}

// ForStudent lists published modules scoped to the student: either
// untargeted or targeted at one of the student's classes, and matching the
// student's learning styles when the module declares targets.
func (svc *Service) ForStudent(ctx context.Context, userID string, styles []LearningStyle) ([]Module, error) {
	published := true
	docs, err := svc.repo.QueryModules(ctx, &QueryFilter{Published: &published}, nil)
	if err != nil {
		return nil, err
	}

	var classIDs []string
	if svc.roster != nil {
		if classIDs, err = svc.roster.StudentClassIDs(ctx, userID); err != nil {
			return nil, pkgerrors.Wrap(err, "fetching student classes")
		}
	}
	inClass := make(map[string]bool, len(classIDs))
	for _, id := range classIDs {
		inClass[id] = true
	}

	scoped := make([]Module, 0, len(docs))
	for _, doc := range docs {
		if doc.TargetClassID != "" && !inClass[doc.TargetClassID] {
			continue
		}
		if len(styles) > 0 && !doc.TargetsStyle(styles...) {
			continue
		}
		scoped = append(scoped, doc)
	}
	return scoped, nil
}

func (svc *Service) Update(ctx context.Context, id string, doc Module) (Module, error) {
	if err := validationError(doc); err != nil {
		return Module{}, err
	}
	orig, err := svc.repo.GetModuleByID(ctx, id)
	if err != nil {
		return Module{}, err
	}
	doc.ID = orig.ID
	doc.CreatedBy = orig.CreatedBy
	doc.CreatedAt = orig.CreatedAt
	doc.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateModule(ctx, doc)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteModulesByID(ctx, ids...)
}

// TogglePublish flips the publication flag. Publishing an empty module is
// refused: a module intended for delivery must have at least one section.
func (svc *Service) TogglePublish(ctx context.Context, id string, published bool) (Module, error) {
	if published {
		doc, err := svc.repo.GetModuleByID(ctx, id)
		if err != nil {
			return Module{}, err
		}
		if !doc.Deliverable() {
			return Module{}, core.NewValidationError(ErrNotDeliverable)
		}
	}
	return svc.repo.SetModulePublished(ctx, id, published)
}

func (svc *Service) Categories(ctx context.Context) ([]Category, error) {
	return svc.catRepo.QueryCategories(ctx)
}

// OpenViewer builds a Viewer over the module seeded from persisted
// progress, with completion changes written back through the progress
// repository. Persistence failures are logged and swallowed so a flaky
// store never breaks rendering.
func (svc *Service) OpenViewer(ctx context.Context, userID, moduleID string) (*Viewer, error) {
	doc, err := svc.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	var initial map[string]bool
	if svc.progRepo != nil {
		if initial, err = svc.progRepo.GetModuleProgress(ctx, userID, moduleID); err != nil {
			svc.logger.Error(fmt.Sprintf("loading progress for module %s: %v", moduleID, err), err)
			initial = nil
		}
	}

	opts := ViewerOptions{
		InitialProgress: initial,
		Logger:          svc.logger,
	}
	if svc.progRepo != nil {
		opts.OnCompletion = func(sectionID string, completed bool) {
			if err := svc.progRepo.SaveSectionProgress(ctx, userID, moduleID, sectionID, completed); err != nil {
				svc.logger.Error(fmt.Sprintf("persisting progress for section %s: %v", sectionID, err), err)
			}
		}
	}
	return NewViewer(doc, opts), nil
}

func validationError(doc Module) error {
	issues := Validate(doc)
	if len(issues) == 0 {
		return nil
	}
	flds := make([]core.FieldError, 0, len(issues))
	for _, issue := range issues {
		flds = append(flds, core.FieldError{Field: "module", Error: issue})
	}
	return core.NewValidationError(errors.New(issues[0]), flds...)
}
