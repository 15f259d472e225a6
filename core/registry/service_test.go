package registry

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

type fakeSeniorRepo struct {
	seniors map[string]SeniorCitizen
	nextID  int
}

func newFakeSeniorRepo() *fakeSeniorRepo {
	return &fakeSeniorRepo{seniors: make(map[string]SeniorCitizen)}
}

func (r *fakeSeniorRepo) CreateSenior(ctx context.Context, sc SeniorCitizen) (SeniorCitizen, error) {
	r.nextID++
	sc.ID = fmt.Sprintf("sc-%d", r.nextID)
	r.seniors[sc.ID] = sc
	return sc, nil
}

func (r *fakeSeniorRepo) GetSeniorByID(ctx context.Context, id string) (SeniorCitizen, error) {
	sc, ok := r.seniors[id]
	if !ok {
		return SeniorCitizen{}, ErrNotFound
	}
	return sc, nil
}

func (r *fakeSeniorRepo) QuerySeniors(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]SeniorCitizen, error) {
	var out []SeniorCitizen
	for _, sc := range r.seniors {
		if filter != nil {
			if filter.Status != "" && sc.Status != filter.Status {
				continue
			}
			if filter.Barangay != "" && sc.Address.Barangay != filter.Barangay {
				continue
			}
			if filter.Search != "" {
				s := strings.ToLower(filter.Search)
				hit := strings.Contains(strings.ToLower(sc.FirstName), s) ||
					strings.Contains(strings.ToLower(sc.LastName), s) ||
					strings.Contains(strings.ToLower(sc.OscaID), s)
				if !hit {
					continue
				}
			}
		}
		out = append(out, sc)
	}
	return out, nil
}

func (r *fakeSeniorRepo) UpdateSenior(ctx context.Context, sc SeniorCitizen) (SeniorCitizen, error) {
	if _, ok := r.seniors[sc.ID]; !ok {
		return SeniorCitizen{}, ErrNotFound
	}
	r.seniors[sc.ID] = sc
	return sc, nil
}

func (r *fakeSeniorRepo) SetSeniorStatus(ctx context.Context, id string, status Status) (SeniorCitizen, error) {
	sc, ok := r.seniors[id]
	if !ok {
		return SeniorCitizen{}, ErrNotFound
	}
	sc.Status = status
	r.seniors[id] = sc
	return sc, nil
}

func (r *fakeSeniorRepo) SeniorStats(ctx context.Context) (Stats, error) {
	stats := Stats{ByStatus: make(map[Status]int), ByBarangay: make(map[string]int)}
	for _, sc := range r.seniors {
		stats.Total++
		stats.ByStatus[sc.Status]++
		stats.ByBarangay[sc.Address.Barangay]++
	}
	return stats, nil
}

type registryOutbox struct {
	sent []*core.EmailMessage
}

func (m *registryOutbox) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

type registryNopLogger struct{}

func (registryNopLogger) Enable(bool)                  {}
func (registryNopLogger) Debug(string, ...interface{}) {}
func (registryNopLogger) Info(string, ...interface{})  {}
func (registryNopLogger) Warn(string, ...interface{})  {}
func (registryNopLogger) Error(string, ...interface{}) {}
func (registryNopLogger) Fatal(string, ...interface{}) {}

func newSenior(osca, first, last, barangay string) NewSeniorCitizen {
	return NewSeniorCitizen{
		OscaID:      osca,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: dob(72),
		Gender:      "female",
		Address:     Address{Barangay: barangay, Municipality: "Naga", Province: "Camarines Sur"},
		Phone:       "+639171234567",
		Emergency:   EmergencyContact{Name: "Contact", Phone: "+639170000000"},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeniorRepo()
	outbox := &registryOutbox{}
	svc := NewService(repo, outbox, registryNopLogger{})

	ns := newSenior("OSCA-1", "Maria", "Santos", "Poblacion")
	ns.Email = "Maria@Test.Test "
	sc, err := svc.Create(ctx, ns)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if sc.Status != StatusActive {
		t.Errorf("Status = %q; want active", sc.Status)
	}
	if sc.Email != "maria@test.test" {
		t.Errorf("Email = %q; want cleaned lowercase", sc.Email)
	}
	if sc.CreatedAt.IsZero() || sc.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if len(outbox.sent) != 1 || outbox.sent[0].TemplateName != "senior-registered" {
		t.Errorf("registration mail = %+v; want one senior-registered message", outbox.sent)
	}

	// no address on file, no mail
	outbox.sent = nil
	if _, err := svc.Create(ctx, newSenior("OSCA-2", "Pedro", "Cruz", "Poblacion")); err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if len(outbox.sent) != 0 {
		t.Errorf("mails sent without an email address: %d", len(outbox.sent))
	}
}

func TestService_Create_badDate(t *testing.T) {
	svc := NewService(newFakeSeniorRepo(), &registryOutbox{}, registryNopLogger{})
	ns := newSenior("OSCA-1", "Maria", "Santos", "Poblacion")
	ns.DateOfBirth = "not-a-date"

	_, err := svc.Create(context.Background(), ns)
	var vErr *core.ValidationError
	if !core.AsValidationError(err, &vErr) {
		t.Fatalf("err = %v (%T); want *core.ValidationError", err, err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "date_of_birth" {
		t.Errorf("Fields = %+v; want one error on date_of_birth", vErr.Fields)
	}
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeniorRepo()
	svc := NewService(repo, &registryOutbox{}, registryNopLogger{})

	for _, ns := range []NewSeniorCitizen{
		newSenior("OSCA-1", "Maria", "Santos", "Poblacion"),
		newSenior("OSCA-2", "Pedro", "Cruz", "San Roque"),
		newSenior("OSCA-3", "Ana", "Santos", "Poblacion"),
	} {
		if _, err := svc.Create(ctx, ns); err != nil {
			t.Fatalf("Create(): %v", err)
		}
	}

	tests := []struct {
		name   string
		filter *QueryFilter
		want   int
	}{
		{name: "all", filter: nil, want: 3},
		{name: "by surname", filter: &QueryFilter{Search: "santos"}, want: 2},
		{name: "by osca id", filter: &QueryFilter{Search: "OSCA-2"}, want: 1},
		{name: "by barangay", filter: &QueryFilter{Barangay: "Poblacion"}, want: 2},
		{name: "by status", filter: &QueryFilter{Status: StatusDeceased}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Query(ctx, tt.filter, nil)
			if err != nil {
				t.Fatalf("Query(): %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d; want %d", len(got), tt.want)
			}
		})
	}
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeniorRepo()
	svc := NewService(repo, &registryOutbox{}, registryNopLogger{})

	sc, err := svc.Create(ctx, newSenior("OSCA-1", "Maria", "Santos", "Poblacion"))
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	if _, err := svc.SetStatus(ctx, sc.ID, Status("vanished")); err == nil {
		t.Error("SetStatus() accepted an unknown status")
	}

	updated, err := svc.SetStatus(ctx, sc.ID, StatusDeceased)
	if err != nil {
		t.Fatalf("SetStatus(): %v", err)
	}
	if updated.Status != StatusDeceased {
		t.Errorf("Status = %q; want deceased", updated.Status)
	}

	// the record survives the transition
	if _, err := svc.Get(ctx, sc.ID); err != nil {
		t.Errorf("Get() after status change: %v", err)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeniorRepo()
	svc := NewService(repo, &registryOutbox{}, registryNopLogger{})

	sc, err := svc.Create(ctx, newSenior("OSCA-1", "Maria", "Santos", "Poblacion"))
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	phone := "+639998887777"
	condition := "assisted_living"
	updated, err := svc.Update(ctx, sc.ID, UpdateSenior{Phone: &phone, LivingCondition: &condition})
	if err != nil {
		t.Fatalf("Update(): %v", err)
	}
	if updated.Phone != phone {
		t.Errorf("Phone = %q; want %q", updated.Phone, phone)
	}
	if updated.LivingCondition != condition {
		t.Errorf("LivingCondition = %q; want %q", updated.LivingCondition, condition)
	}
	// untouched fields survive
	if updated.FirstName != "Maria" || updated.Address.Barangay != "Poblacion" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeniorRepo()
	svc := NewService(repo, &registryOutbox{}, registryNopLogger{})

	for _, ns := range []NewSeniorCitizen{
		newSenior("OSCA-1", "Maria", "Santos", "Poblacion"),
		newSenior("OSCA-2", "Pedro", "Cruz", "San Roque"),
		newSenior("OSCA-3", "Ana", "Reyes", "Poblacion"),
	} {
		if _, err := svc.Create(ctx, ns); err != nil {
			t.Fatalf("Create(): %v", err)
		}
	}
	if _, err := svc.SetStatus(ctx, "sc-2", StatusInactive); err != nil {
		t.Fatalf("SetStatus(): %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats(): %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d; want 3", stats.Total)
	}
	if stats.ByStatus[StatusActive] != 2 || stats.ByStatus[StatusInactive] != 1 {
		t.Errorf("ByStatus = %v", stats.ByStatus)
	}
	if stats.ByBarangay["Poblacion"] != 2 {
		t.Errorf("ByBarangay = %v", stats.ByBarangay)
	}
}
