package registry

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// WizardStep is one stop in the registration flow.
type WizardStep int

const (
	StepPersonal WizardStep = iota
	StepAddress
	StepContact
	StepEmergency
	StepMedical
	StepLivingCondition
	StepBeneficiaries
	StepReview
)

var wizardStepNames = map[WizardStep]string{
	StepPersonal:        "Personal Information",
	StepAddress:         "Address",
	StepContact:         "Contact",
	StepEmergency:       "Emergency Contact",
	StepMedical:         "Medical Information",
	StepLivingCondition: "Living Condition",
	StepBeneficiaries:   "Beneficiaries",
	StepReview:          "Review",
}

func (s WizardStep) String() string { return wizardStepNames[s] }

func WizardSteps() []WizardStep {
	return []WizardStep{
		StepPersonal, StepAddress, StepContact, StepEmergency,
		StepMedical, StepLivingCondition, StepBeneficiaries, StepReview,
	}
}

// stepFields maps each step to the record fields it owns, by validator
// namespace. Review has none; it re-validates the whole record.
var stepFields = map[WizardStep][]string{
	StepPersonal:        {"OscaID", "FirstName", "LastName", "MiddleName", "DateOfBirth", "Gender"},
	StepAddress:         {"Address.Barangay", "Address.Municipality", "Address.Province", "Address.ZipCode"},
	StepContact:         {"Phone", "Email"},
	StepEmergency:       {"Emergency.Name", "Emergency.Relationship", "Emergency.Phone"},
	StepMedical:         {"Medical.BloodType"},
	StepLivingCondition: {"LivingCondition"},
	StepBeneficiaries:   {"Beneficiaries"},
}

// Wizard walks a BASCA staff member through registering a senior citizen.
// Unlike the module Builder, steps are gated: Next refuses to advance
// while the current step has validation issues. Back always works.
type Wizard struct {
	record   NewSeniorCitizen
	step     WizardStep
	validate *validator.Validate
}

func NewWizard(validate *validator.Validate) *Wizard {
	return &Wizard{validate: validate}
}

func (w *Wizard) Step() WizardStep         { return w.step }
func (w *Wizard) Record() NewSeniorCitizen { return w.record }

// Next validates the current step and advances past it. The returned
// error carries the step's field errors when it is not yet complete.
func (w *Wizard) Next() error {
	if err := w.StepIssues(w.step); err != nil {
		return err
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Back retreats one step; at the first step it is a no-op.
func (w *Wizard) Back() {
	if w.step > StepPersonal {
		w.step--
	}
}

// StepIssues validates the fields owned by the given step.
func (w *Wizard) StepIssues(step WizardStep) error {
	fields, ok := stepFields[step]
	if !ok {
		return nil
	}
	w.record.Clean()
	return w.validate.StructPartial(w.record, fields...)
}

// Submit re-validates the whole record and hands it to the service. Any
// step skipped by direct mutation is caught here.
func (w *Wizard) Submit(ctx context.Context, svc ServiceInterface) (SeniorCitizen, error) {
	w.record.Clean()
	if err := w.validate.Struct(w.record); err != nil {
		return SeniorCitizen{}, err
	}
	return svc.Create(ctx, w.record)
}

// Step setters

func (w *Wizard) SetPersonal(oscaID, first, last, middle, dateOfBirth, gender string) {
	w.record.OscaID = oscaID
	w.record.FirstName = first
	w.record.LastName = last
	w.record.MiddleName = middle
	w.record.DateOfBirth = dateOfBirth
	w.record.Gender = gender
}

func (w *Wizard) SetAddress(addr Address) {
	w.record.Address = addr
}

func (w *Wizard) SetContact(phone, email string) {
	w.record.Phone = phone
	w.record.Email = email
}

func (w *Wizard) SetEmergency(contact EmergencyContact) {
	w.record.Emergency = contact
}

func (w *Wizard) SetMedical(info MedicalInfo) {
	w.record.Medical = info
}

func (w *Wizard) SetLivingCondition(condition string) {
	w.record.LivingCondition = condition
}

func (w *Wizard) SetNotes(notes string) {
	w.record.Notes = notes
}

func (w *Wizard) AddBeneficiary(b Beneficiary) {
	w.record.Beneficiaries = append(w.record.Beneficiaries, b)
}

func (w *Wizard) RemoveBeneficiary(i int) {
	if i < 0 || i >= len(w.record.Beneficiaries) {
		return
	}
	w.record.Beneficiaries = append(w.record.Beneficiaries[:i], w.record.Beneficiaries[i+1:]...)
}
