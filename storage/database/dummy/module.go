package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
)

type moduleRepository struct {
	db *moduleTable
}

var _ module.Repository = (*moduleRepository)(nil) // interface compliance check

func NewModuleRepository(db *DB) module.Repository {
	return &moduleRepository{db: db.module}
}

func (repo *moduleRepository) query() []module.Module {
	docs := make([]module.Module, 0, len(repo.db.table))
	for _, doc := range repo.db.table {
		docs = append(docs, *doc)
	}
	return docs
}

func (repo *moduleRepository) CreateModule(ctx context.Context, doc module.Module) (module.Module, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	doc.ID = uuid.New().String()
	repo.db.table[doc.ID] = &doc
	return doc, nil
}

func (repo *moduleRepository) GetModuleByID(ctx context.Context, id string) (module.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if doc, ok := repo.db.table[id]; ok {
		return *doc, nil
	}
	return module.Module{}, module.ErrNotFound
}

func (repo *moduleRepository) QueryModules(ctx context.Context, filter *module.QueryFilter, ordering []core.DBOrdering) ([]module.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	docs := repo.query()
	if filter != nil {
		if filter.Search != "" {
			var filtered []module.Module
			search := strings.ToLower(filter.Search)
			for _, doc := range docs {
				if strings.Contains(strings.ToLower(doc.Title), search) ||
					strings.Contains(strings.ToLower(doc.Description), search) {
					filtered = append(filtered, doc)
				}
			}
			docs = filtered
		}
		if filter.CategoryID != "" {
			var filtered []module.Module
			for _, doc := range docs {
				if doc.CategoryID == filter.CategoryID {
					filtered = append(filtered, doc)
				}
			}
			docs = filtered
		}
		if filter.Difficulty != "" {
			var filtered []module.Module
			for _, doc := range docs {
				if doc.Difficulty == filter.Difficulty {
					filtered = append(filtered, doc)
				}
			}
			docs = filtered
		}
		if filter.Published != nil {
			var filtered []module.Module
			for _, doc := range docs {
				if doc.Published == *filter.Published {
					filtered = append(filtered, doc)
				}
			}
			docs = filtered
		}
		if filter.CreatedBy != "" {
			var filtered []module.Module
			for _, doc := range docs {
				if doc.CreatedBy == filter.CreatedBy {
					filtered = append(filtered, doc)
				}
			}
			docs = filtered
		}
	}

	sortModules(docs, ordering)
	return docs, nil
}

func sortModules(docs []module.Module, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		// stable listing for tests and paging
		sort.SliceStable(docs, func(a, b int) bool { return docs[a].Title < docs[b].Title })
		return
	}
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		sort.SliceStable(docs, func(a, b int) bool {
			var less bool
			switch ord.Field {
			case "created_at":
				less = docs[a].CreatedAt.Before(docs[b].CreatedAt)
			case "updated_at":
				less = docs[a].UpdatedAt.Before(docs[b].UpdatedAt)
			default:
				less = docs[a].Title < docs[b].Title
			}
			if !ord.Ascending {
				return !less
			}
			return less
		})
	}
}

func (repo *moduleRepository) UpdateModule(ctx context.Context, doc module.Module) (module.Module, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[doc.ID]; !ok {
		return module.Module{}, module.ErrNotFound
	}
	repo.db.table[doc.ID] = &doc
	return doc, nil
}

func (repo *moduleRepository) DeleteModulesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *moduleRepository) SetModulePublished(ctx context.Context, id string, published bool) (module.Module, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	doc, ok := repo.db.table[id]
	if !ok {
		return module.Module{}, module.ErrNotFound
	}
	doc.Published = published
	return *doc, nil
}

type categoryRepository struct {
	db *categoryTable
}

var _ module.CategoryRepository = (*categoryRepository)(nil)

func NewCategoryRepository(db *DB) *categoryRepository {
	return &categoryRepository{db: db.category}
}

func (repo *categoryRepository) QueryCategories(ctx context.Context) ([]module.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cats := make([]module.Category, 0, len(repo.db.table))
	for _, cat := range repo.db.table {
		cats = append(cats, *cat)
	}
	sort.Slice(cats, func(a, b int) bool { return cats[a].Name < cats[b].Name })
	return cats, nil
}

// AddCategory seeds a category; test helper.
func (repo *categoryRepository) AddCategory(cat module.Category) module.Category {
	repo.db.Lock()
	defer repo.db.Unlock()

	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	repo.db.table[cat.ID] = &cat
	return cat
}

type progressRepository struct {
	db *progressTable
}

var _ module.ProgressRepository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress}
}

func progressKey(userID, moduleID, sectionID string) string {
	return userID + "|" + moduleID + "|" + sectionID
}

func (repo *progressRepository) GetModuleProgress(ctx context.Context, userID, moduleID string) (map[string]bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	prefix := userID + "|" + moduleID + "|"
	progress := make(map[string]bool)
	for key, completed := range repo.db.table {
		if strings.HasPrefix(key, prefix) {
			progress[strings.TrimPrefix(key, prefix)] = completed
		}
	}
	return progress, nil
}

func (repo *progressRepository) SaveSectionProgress(ctx context.Context, userID, moduleID, sectionID string, completed bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[progressKey(userID, moduleID, sectionID)] = completed
	return nil
}
