package registry

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

var (
	ErrNotFound      = errors.New("senior citizen record not found")
	ErrUnknownStatus = errors.New("unknown status")
)

type (
	Repository interface {
		CreateSenior(ctx context.Context, sc SeniorCitizen) (SeniorCitizen, error)
		GetSeniorByID(ctx context.Context, id string) (SeniorCitizen, error)
		// QuerySeniors applies AND semantics on available QueryFilter fields;
		// Search matches names or the OSCA id case-insensitively.
		QuerySeniors(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]SeniorCitizen, error)
		UpdateSenior(ctx context.Context, sc SeniorCitizen) (SeniorCitizen, error)
		SetSeniorStatus(ctx context.Context, id string, status Status) (SeniorCitizen, error)
		SeniorStats(ctx context.Context) (Stats, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, ns NewSeniorCitizen) (SeniorCitizen, error)
		Get(ctx context.Context, id string) (SeniorCitizen, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]SeniorCitizen, error)
		Update(ctx context.Context, id string, us UpdateSenior) (SeniorCitizen, error)
		SetStatus(ctx context.Context, id string, status Status) (SeniorCitizen, error)
		Stats(ctx context.Context) (Stats, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

// Create registers a new senior citizen. The caller is responsible for
// validating ns first; dates arrive as YYYY-MM-DD strings.
func (svc *Service) Create(ctx context.Context, ns NewSeniorCitizen) (SeniorCitizen, error) {
	ns.Clean()
	dob, err := time.Parse(dateLayout, ns.DateOfBirth)
	if err != nil {
		return SeniorCitizen{}, core.NewValidationError(err, core.FieldError{Field: "date_of_birth", Error: dateFormatText})
	}

	now := time.Now().UTC()
	sc := SeniorCitizen{
		OscaID:          ns.OscaID,
		FirstName:       ns.FirstName,
		LastName:        ns.LastName,
		MiddleName:      ns.MiddleName,
		DateOfBirth:     dob,
		Gender:          ns.Gender,
		Address:         ns.Address,
		Phone:           ns.Phone,
		Email:           ns.Email,
		Emergency:       ns.Emergency,
		Medical:         ns.Medical,
		LivingCondition: ns.LivingCondition,
		Beneficiaries:   ns.Beneficiaries,
		Status:          StatusActive,
		Notes:           ns.Notes,
		CreatedBy:       ns.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	sc, err = svc.repo.CreateSenior(ctx, sc)
	if err != nil {
		return SeniorCitizen{}, err
	}
	svc.sendRegistrationMail(sc)
	return sc, nil
}

func (svc *Service) Get(ctx context.Context, id string) (SeniorCitizen, error) {
	return svc.repo.GetSeniorByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]SeniorCitizen, error) {
	return svc.repo.QuerySeniors(ctx, filter, ordering)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateSenior) (SeniorCitizen, error) {
	sc, err := svc.repo.GetSeniorByID(ctx, id)
	if err != nil {
		return SeniorCitizen{}, err
	}
	if us.OscaID != nil {
		sc.OscaID = core.CleanString(*us.OscaID)
	}
	if us.FirstName != nil {
		sc.FirstName = core.CleanString(*us.FirstName)
	}
	if us.LastName != nil {
		sc.LastName = core.CleanString(*us.LastName)
	}
	if us.MiddleName != nil {
		sc.MiddleName = core.CleanString(*us.MiddleName)
	}
	if us.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *us.DateOfBirth)
		if err != nil {
			return SeniorCitizen{}, core.NewValidationError(err, core.FieldError{Field: "date_of_birth", Error: dateFormatText})
		}
		sc.DateOfBirth = dob
	}
	if us.Gender != nil {
		sc.Gender = *us.Gender
	}
	if us.Address != nil {
		sc.Address = *us.Address
	}
	if us.Phone != nil {
		sc.Phone = core.CleanString(*us.Phone)
	}
	if us.Email != nil {
		sc.Email = core.CleanString(*us.Email, true /* lower */)
	}
	if us.Emergency != nil {
		sc.Emergency = *us.Emergency
	}
	if us.Medical != nil {
		sc.Medical = *us.Medical
	}
	if us.LivingCondition != nil {
		sc.LivingCondition = *us.LivingCondition
	}
	if us.Beneficiaries != nil {
		sc.Beneficiaries = us.Beneficiaries
	}
	if us.Notes != nil {
		sc.Notes = *us.Notes
	}
	sc.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSenior(ctx, sc)
}

// SetStatus soft-transitions a record; records are never deleted from the
// registry.
func (svc *Service) SetStatus(ctx context.Context, id string, status Status) (SeniorCitizen, error) {
	if !status.Valid() {
		return SeniorCitizen{}, core.NewValidationError(ErrUnknownStatus, core.FieldError{Field: "status", Error: ErrUnknownStatus.Error()})
	}
	return svc.repo.SetSeniorStatus(ctx, id, status)
}

func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	return svc.repo.SeniorStats(ctx)
}

func (svc *Service) sendRegistrationMail(sc SeniorCitizen) {
	if sc.Email == "" {
		return
	}
	name := sc.FirstName + " " + sc.LastName
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: name, Address: sc.Email}},
		Subject:      fmt.Sprintf("%s registration received", core.Conf.AppName),
		TemplateName: "senior-registered",
		TemplateData: struct {
			Name   string
			OscaID string
		}{Name: name, OscaID: sc.OscaID},
	}
	svc.mailSvc.SendMessages(msg)
}
