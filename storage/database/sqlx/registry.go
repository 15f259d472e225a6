package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
)

type seniorRow struct {
	ID           string         `db:"id"`
	OscaID       null.String    `db:"osca_id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	DateOfBirth  null.Time      `db:"date_of_birth"`
	Gender       null.String    `db:"gender"`
	Barangay     null.String    `db:"barangay"`
	Municipality null.String    `db:"municipality"`
	Province     null.String    `db:"province"`
	Status       string         `db:"status"`
	Document     types.JSONText `db:"document"`
	CreatedBy    null.String    `db:"created_by"`
	CreatedAt    null.Time      `db:"created_at"`
	UpdatedAt    null.Time      `db:"updated_at"`
}

func packSenior(sc registry.SeniorCitizen) (seniorRow, error) {
	raw, err := json.Marshal(sc)
	if err != nil {
		return seniorRow{}, errors.Wrap(err, "encoding senior record")
	}
	return seniorRow{
		ID:           sc.ID,
		OscaID:       null.NewString(sc.OscaID, sc.OscaID != ""),
		FirstName:    sc.FirstName,
		LastName:     sc.LastName,
		DateOfBirth:  null.NewTime(sc.DateOfBirth.UTC(), !sc.DateOfBirth.IsZero()),
		Gender:       null.NewString(sc.Gender, sc.Gender != ""),
		Barangay:     null.NewString(sc.Address.Barangay, sc.Address.Barangay != ""),
		Municipality: null.NewString(sc.Address.Municipality, sc.Address.Municipality != ""),
		Province:     null.NewString(sc.Address.Province, sc.Address.Province != ""),
		Status:       string(sc.Status),
		Document:     raw,
		CreatedBy:    null.NewString(sc.CreatedBy, sc.CreatedBy != ""),
		CreatedAt:    null.NewTime(sc.CreatedAt.UTC(), !sc.CreatedAt.IsZero()),
		UpdatedAt:    null.NewTime(sc.UpdatedAt.UTC(), !sc.UpdatedAt.IsZero()),
	}, nil
}

func (row seniorRow) unpack() (registry.SeniorCitizen, error) {
	var sc registry.SeniorCitizen
	if err := json.Unmarshal(row.Document, &sc); err != nil {
		return registry.SeniorCitizen{}, errors.Wrap(err, "decoding senior record")
	}
	sc.ID = row.ID
	sc.Status = registry.Status(row.Status)
	return sc, nil
}

func unpackSeniors(rows []seniorRow) ([]registry.SeniorCitizen, error) {
	seniors := make([]registry.SeniorCitizen, 0, len(rows))
	for _, row := range rows {
		sc, err := row.unpack()
		if err != nil {
			return nil, err
		}
		seniors = append(seniors, sc)
	}
	return seniors, nil
}

type seniorRepository struct {
	db core.DBExecutor
}

var _ registry.Repository = (*seniorRepository)(nil) // interface compliance check

func NewSeniorRepository(db core.DBExecutor) *seniorRepository {
	return &seniorRepository{db: db}
}

func (repo seniorRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return registry.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo seniorRepository) CreateSenior(ctx context.Context, sc registry.SeniorCitizen) (registry.SeniorCitizen, error) {
	sc.ID = uuid.New().String()
	row, err := packSenior(sc)
	if err != nil {
		return registry.SeniorCitizen{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO senior_citizen (id, osca_id, first_name, last_name, date_of_birth, gender, barangay, municipality, province, status, document, created_by, created_at, updated_at)
		VALUES (:id, :osca_id, :first_name, :last_name, :date_of_birth, :gender, :barangay, :municipality, :province, :status, :document, :created_by, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return registry.SeniorCitizen{}, errors.Wrap(err, "inserting senior record")
	}
	return sc, nil
}

func (repo seniorRepository) GetSeniorByID(ctx context.Context, id string) (registry.SeniorCitizen, error) {
	if _, err := uuid.Parse(id); err != nil {
		return registry.SeniorCitizen{}, registry.ErrNotFound
	}
	var row seniorRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM senior_citizen WHERE id = $1`, id); err != nil {
		return registry.SeniorCitizen{}, repo.trapNoRowsErr(err, "finding senior record by ID")
	}
	return row.unpack()
}

func (repo seniorRepository) QuerySeniors(ctx context.Context, filter *registry.QueryFilter, ordering []core.DBOrdering) ([]registry.SeniorCitizen, error) {
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
			conds = append(conds, fmt.Sprintf("(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR osca_id ILIKE %[1]s)", val))
		}
		if filter.Status != "" {
			conds = append(conds, "status = "+arg(string(filter.Status)))
		}
		if filter.Barangay != "" {
			conds = append(conds, "barangay ILIKE "+arg(filter.Barangay))
		}
	}

	query := `SELECT * FROM senior_citizen`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderBy(ordering)

	var rows []seniorRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying senior records")
	}
	return unpackSeniors(rows)
}

func (repo seniorRepository) UpdateSenior(ctx context.Context, sc registry.SeniorCitizen) (registry.SeniorCitizen, error) {
	row, err := packSenior(sc)
	if err != nil {
		return registry.SeniorCitizen{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE senior_citizen
		SET osca_id = :osca_id, first_name = :first_name, last_name = :last_name, date_of_birth = :date_of_birth,
		    gender = :gender, barangay = :barangay, municipality = :municipality, province = :province,
		    status = :status, document = :document, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return registry.SeniorCitizen{}, errors.Wrap(err, "updating senior record")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return registry.SeniorCitizen{}, registry.ErrNotFound
	}
	return sc, nil
}

// SetSeniorStatus flips the status on both the filter column and the
// stored document so the two can never disagree.
func (repo seniorRepository) SetSeniorStatus(ctx context.Context, id string, status registry.Status) (registry.SeniorCitizen, error) {
	if _, err := uuid.Parse(id); err != nil {
		return registry.SeniorCitizen{}, registry.ErrNotFound
	}
	var row seniorRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE senior_citizen
		SET status = $2,
		    document = jsonb_set(document, '{status}', to_jsonb($2::text)),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING *`,
		id, string(status),
	)
	if err != nil {
		return registry.SeniorCitizen{}, repo.trapNoRowsErr(err, "setting senior status")
	}
	return row.unpack()
}

func (repo seniorRepository) SeniorStats(ctx context.Context) (registry.Stats, error) {
	stats := registry.Stats{
		ByStatus:   make(map[registry.Status]int),
		ByBarangay: make(map[string]int),
	}

	var statusRows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err := repo.db.SelectContext(ctx, &statusRows, `
		SELECT status, COUNT(*) AS count FROM senior_citizen GROUP BY status`)
	if err != nil {
		return registry.Stats{}, errors.Wrap(err, "counting seniors by status")
	}
	for _, row := range statusRows {
		stats.ByStatus[registry.Status(row.Status)] = row.Count
		stats.Total += row.Count
	}

	var barangayRows []struct {
		Barangay null.String `db:"barangay"`
		Count    int         `db:"count"`
	}
	err = repo.db.SelectContext(ctx, &barangayRows, `
		SELECT barangay, COUNT(*) AS count FROM senior_citizen GROUP BY barangay`)
	if err != nil {
		return registry.Stats{}, errors.Wrap(err, "counting seniors by barangay")
	}
	for _, row := range barangayRows {
		stats.ByBarangay[row.Barangay.String] = row.Count
	}
	return stats, nil
}
