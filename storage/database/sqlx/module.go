package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
)

// moduleRow carries the columns the queries filter and order on; the
// document column holds the full authoring document and is authoritative.
type moduleRow struct {
	ID                   string         `db:"id"`
	Title                string         `db:"title"`
	Description          null.String    `db:"description"`
	CategoryID           null.String    `db:"category_id"`
	Difficulty           null.String    `db:"difficulty"`
	Published            bool           `db:"is_published"`
	CreatedBy            null.String    `db:"created_by"`
	TargetClassID        null.String    `db:"target_class_id"`
	TargetLearningStyles pq.StringArray `db:"target_learning_styles"`
	Document             types.JSONText `db:"document"`
	CreatedAt            null.Time      `db:"created_at"`
	UpdatedAt            null.Time      `db:"updated_at"`
}

func packModule(doc module.Module) (moduleRow, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return moduleRow{}, errors.Wrap(err, "encoding module document")
	}
	styles := make([]string, 0, len(doc.TargetLearningStyles))
	for _, style := range doc.TargetLearningStyles {
		styles = append(styles, string(style))
	}
	return moduleRow{
		ID:                   doc.ID,
		Title:                doc.Title,
		Description:          null.NewString(doc.Description, doc.Description != ""),
		CategoryID:           null.NewString(doc.CategoryID, doc.CategoryID != ""),
		Difficulty:           null.NewString(string(doc.Difficulty), doc.Difficulty != ""),
		Published:            doc.Published,
		CreatedBy:            null.NewString(doc.CreatedBy, doc.CreatedBy != ""),
		TargetClassID:        null.NewString(doc.TargetClassID, doc.TargetClassID != ""),
		TargetLearningStyles: styles,
		Document:             raw,
		CreatedAt:            null.NewTime(doc.CreatedAt.UTC(), !doc.CreatedAt.IsZero()),
		UpdatedAt:            null.NewTime(doc.UpdatedAt.UTC(), !doc.UpdatedAt.IsZero()),
	}, nil
}

func (row moduleRow) unpack() (module.Module, error) {
	var doc module.Module
	if err := json.Unmarshal(row.Document, &doc); err != nil {
		return module.Module{}, errors.Wrap(err, "decoding module document")
	}
	doc.ID = row.ID
	doc.Published = row.Published
	return doc, nil
}

func unpackModules(rows []moduleRow) ([]module.Module, error) {
	docs := make([]module.Module, 0, len(rows))
	for _, row := range rows {
		doc, err := row.unpack()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

type moduleRepository struct {
	db core.DBExecutor
}

var _ module.Repository = (*moduleRepository)(nil) // interface compliance check

func NewModuleRepository(db core.DBExecutor) *moduleRepository {
	return &moduleRepository{db: db}
}

func (repo moduleRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return module.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo moduleRepository) CreateModule(ctx context.Context, doc module.Module) (module.Module, error) {
	doc.ID = uuid.New().String()
	row, err := packModule(doc)
	if err != nil {
		return module.Module{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO module (id, title, description, category_id, difficulty, is_published, created_by, target_class_id, target_learning_styles, document, created_at, updated_at)
		VALUES (:id, :title, :description, :category_id, :difficulty, :is_published, :created_by, :target_class_id, :target_learning_styles, :document, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return module.Module{}, errors.Wrap(err, "inserting module")
	}
	return doc, nil
}

func (repo moduleRepository) GetModuleByID(ctx context.Context, id string) (module.Module, error) {
	if _, err := uuid.Parse(id); err != nil {
		return module.Module{}, module.ErrNotFound
	}
	var row moduleRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM module WHERE id = $1`, id); err != nil {
		return module.Module{}, repo.trapNoRowsErr(err, "finding module by ID")
	}
	return row.unpack()
}

func (repo moduleRepository) QueryModules(ctx context.Context, filter *module.QueryFilter, ordering []core.DBOrdering) ([]module.Module, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(val interface{}) string {
		args = append(args, val)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.Search != "" {
			val := arg("%" + filter.Search + "%")
			conds = append(conds, fmt.Sprintf("(title ILIKE %[1]s OR description ILIKE %[1]s)", val))
		}
		if filter.CategoryID != "" {
			conds = append(conds, "category_id = "+arg(filter.CategoryID))
		}
		if filter.Difficulty != "" {
			conds = append(conds, "difficulty = "+arg(string(filter.Difficulty)))
		}
		if filter.Published != nil {
			conds = append(conds, "is_published = "+arg(*filter.Published))
		}
		if filter.CreatedBy != "" {
			conds = append(conds, "created_by = "+arg(filter.CreatedBy))
		}
	}

	query := `SELECT * FROM module`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderBy(ordering)

	var rows []moduleRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying modules")
	}
	return unpackModules(rows)
}

func (repo moduleRepository) UpdateModule(ctx context.Context, doc module.Module) (module.Module, error) {
	row, err := packModule(doc)
	if err != nil {
		return module.Module{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE module
		SET title = :title, description = :description, category_id = :category_id, difficulty = :difficulty,
		    is_published = :is_published, target_class_id = :target_class_id, target_learning_styles = :target_learning_styles,
		    document = :document, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return module.Module{}, errors.Wrap(err, "updating module")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return module.Module{}, module.ErrNotFound
	}
	return doc, nil
}

func (repo moduleRepository) DeleteModulesByID(ctx context.Context, ids ...string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM module WHERE id = ANY($1::uuid[])`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting modules")
}

// SetModulePublished flips the flag on both the filter column and the
// stored document so the two can never disagree.
func (repo moduleRepository) SetModulePublished(ctx context.Context, id string, published bool) (module.Module, error) {
	if _, err := uuid.Parse(id); err != nil {
		return module.Module{}, module.ErrNotFound
	}
	var row moduleRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE module
		SET is_published = $2,
		    document = jsonb_set(document, '{is_published}', to_jsonb($2::boolean)),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING *`,
		id, published,
	)
	if err != nil {
		return module.Module{}, repo.trapNoRowsErr(err, "publishing module")
	}
	return row.unpack()
}

type categoryRow struct {
	ID            string      `db:"id"`
	Name          string      `db:"name"`
	Subject       null.String `db:"subject"`
	LearningStyle null.String `db:"learning_style"`
	GradeLevel    null.String `db:"grade_level"`
}

type categoryRepository struct {
	db core.DBExecutor
}

var _ module.CategoryRepository = (*categoryRepository)(nil)

func NewCategoryRepository(db core.DBExecutor) *categoryRepository {
	return &categoryRepository{db: db}
}

func (repo categoryRepository) QueryCategories(ctx context.Context) ([]module.Category, error) {
	var rows []categoryRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM category ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	cats := make([]module.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, module.Category{
			ID:            row.ID,
			Name:          row.Name,
			Subject:       row.Subject.String,
			LearningStyle: module.LearningStyle(row.LearningStyle.String),
			GradeLevel:    row.GradeLevel.String,
		})
	}
	return cats, nil
}

type progressRepository struct {
	db core.DBExecutor
}

var _ module.ProgressRepository = (*progressRepository)(nil)

func NewProgressRepository(db core.DBExecutor) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) GetModuleProgress(ctx context.Context, userID, moduleID string) (map[string]bool, error) {
	if _, err := uuid.Parse(moduleID); err != nil {
		return map[string]bool{}, nil
	}
	var rows []struct {
		SectionID string `db:"section_id"`
		Completed bool   `db:"completed"`
	}
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT section_id, completed FROM module_progress
		WHERE user_id = $1 AND module_id = $2`,
		userID, moduleID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying module progress")
	}
	progress := make(map[string]bool, len(rows))
	for _, row := range rows {
		progress[row.SectionID] = row.Completed
	}
	return progress, nil
}

func (repo progressRepository) SaveSectionProgress(ctx context.Context, userID, moduleID, sectionID string, completed bool) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO module_progress (user_id, module_id, section_id, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, module_id, section_id) DO UPDATE SET completed = $4, updated_at = $5`,
		userID, moduleID, sectionID, completed, time.Now().UTC(),
	)
	return errors.Wrap(err, "saving section progress")
}
