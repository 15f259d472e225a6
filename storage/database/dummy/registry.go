package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
)

type seniorRepository struct {
	db *seniorTable
}

var _ registry.Repository = (*seniorRepository)(nil) // interface compliance check

func NewSeniorRepository(db *DB) registry.Repository {
	return &seniorRepository{db: db.senior}
}

func (repo *seniorRepository) query() []registry.SeniorCitizen {
	seniors := make([]registry.SeniorCitizen, 0, len(repo.db.table))
	for _, sc := range repo.db.table {
		seniors = append(seniors, *sc)
	}
	return seniors
}

func (repo *seniorRepository) CreateSenior(ctx context.Context, sc registry.SeniorCitizen) (registry.SeniorCitizen, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sc.ID = uuid.New().String()
	repo.db.table[sc.ID] = &sc
	return sc, nil
}

func (repo *seniorRepository) GetSeniorByID(ctx context.Context, id string) (registry.SeniorCitizen, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sc, ok := repo.db.table[id]; ok {
		return *sc, nil
	}
	return registry.SeniorCitizen{}, registry.ErrNotFound
}

func (repo *seniorRepository) QuerySeniors(ctx context.Context, filter *registry.QueryFilter, ordering []core.DBOrdering) ([]registry.SeniorCitizen, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seniors := repo.query()
	if filter != nil {
		if filter.Search != "" {
			var filtered []registry.SeniorCitizen
			search := strings.ToLower(filter.Search)
			for _, sc := range seniors {
				if strings.Contains(strings.ToLower(sc.FirstName), search) ||
					strings.Contains(strings.ToLower(sc.LastName), search) ||
					strings.Contains(strings.ToLower(sc.OscaID), search) {
					filtered = append(filtered, sc)
				}
			}
			seniors = filtered
		}
		if filter.Status != "" {
			var filtered []registry.SeniorCitizen
			for _, sc := range seniors {
				if sc.Status == filter.Status {
					filtered = append(filtered, sc)
				}
			}
			seniors = filtered
		}
		if filter.Barangay != "" {
			var filtered []registry.SeniorCitizen
			for _, sc := range seniors {
				if strings.EqualFold(sc.Address.Barangay, filter.Barangay) {
					filtered = append(filtered, sc)
				}
			}
			seniors = filtered
		}
	}

	sortSeniors(seniors, ordering)
	return seniors, nil
}

func sortSeniors(seniors []registry.SeniorCitizen, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		sort.SliceStable(seniors, func(a, b int) bool { return seniors[a].LastName < seniors[b].LastName })
		return
	}
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		sort.SliceStable(seniors, func(a, b int) bool {
			var less bool
			switch ord.Field {
			case "first_name":
				less = seniors[a].FirstName < seniors[b].FirstName
			case "created_at":
				less = seniors[a].CreatedAt.Before(seniors[b].CreatedAt)
			case "date_of_birth":
				less = seniors[a].DateOfBirth.Before(seniors[b].DateOfBirth)
			default:
				less = seniors[a].LastName < seniors[b].LastName
			}
			if !ord.Ascending {
				return !less
			}
			return less
		})
	}
}

func (repo *seniorRepository) UpdateSenior(ctx context.Context, sc registry.SeniorCitizen) (registry.SeniorCitizen, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[sc.ID]; !ok {
		return registry.SeniorCitizen{}, registry.ErrNotFound
	}
	repo.db.table[sc.ID] = &sc
	return sc, nil
}

func (repo *seniorRepository) SetSeniorStatus(ctx context.Context, id string, status registry.Status) (registry.SeniorCitizen, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sc, ok := repo.db.table[id]
	if !ok {
		return registry.SeniorCitizen{}, registry.ErrNotFound
	}
	sc.Status = status
	return *sc, nil
}

func (repo *seniorRepository) SeniorStats(ctx context.Context) (registry.Stats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stats := registry.Stats{
		ByStatus:   make(map[registry.Status]int),
		ByBarangay: make(map[string]int),
	}
	for _, sc := range repo.db.table {
		stats.Total++
		stats.ByStatus[sc.Status]++
		stats.ByBarangay[sc.Address.Barangay]++
	}
	return stats, nil
}
