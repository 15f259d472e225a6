package registry

import (
	"time"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

// Status is the registry lifecycle state of a senior citizen record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeceased Status = "deceased"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDeceased}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Address struct {
	Barangay     string `json:"barangay" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	Province     string `json:"province" validate:"required"`
	ZipCode      string `json:"zip_code"`
}

type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"required"`
}

type MedicalInfo struct {
	Conditions  []string `json:"conditions,omitempty"`
	Medications []string `json:"medications,omitempty"`
	BloodType   string   `json:"blood_type,omitempty"`
}

type Beneficiary struct {
	Name          string  `json:"name" validate:"required"`
	Relationship  string  `json:"relationship" validate:"required"`
	DateOfBirth   string  `json:"date_of_birth" validate:"omitempty,dateformat"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gte=0"`
	IsDependent   bool    `json:"is_dependent"`
}

type SeniorCitizen struct {
	ID              string           `json:"id"`
	OscaID          string           `json:"osca_id,omitempty"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	MiddleName      string           `json:"middle_name,omitempty"`
	DateOfBirth     time.Time        `json:"date_of_birth"`
	Gender          string           `json:"gender"`
	Address         Address          `json:"address"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email,omitempty"`
	Emergency       EmergencyContact `json:"emergency_contact"`
	Medical         MedicalInfo      `json:"medical_info"`
	LivingCondition string           `json:"living_condition,omitempty"`
	Beneficiaries   []Beneficiary    `json:"beneficiaries,omitempty"`
	Status          Status           `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"` // UTC
	UpdatedAt       time.Time        `json:"updated_at"` // UTC
}

// Age is the senior's age in full years at the given reference time.
func (sc SeniorCitizen) Age(at time.Time) int {
	return age(sc.DateOfBirth, at)
}

func age(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	return years
}

// NewSeniorCitizen contains information needed to register a senior citizen.
// Dates travel as YYYY-MM-DD strings.
type NewSeniorCitizen struct {
	OscaID          string           `json:"osca_id"`
	FirstName       string           `json:"first_name" validate:"required"`
	LastName        string           `json:"last_name" validate:"required"`
	MiddleName      string           `json:"middle_name"`
	DateOfBirth     string           `json:"date_of_birth" validate:"required,dateformat,seniorage"`
	Gender          string           `json:"gender" validate:"required,oneof=male female other"`
	Address         Address          `json:"address"`
	Phone           string           `json:"phone" validate:"required"`
	Email           string           `json:"email" validate:"omitempty,email"`
	Emergency       EmergencyContact `json:"emergency_contact"`
	Medical         MedicalInfo      `json:"medical_info"`
	LivingCondition string           `json:"living_condition" validate:"omitempty,oneof=independent with_family assisted_living"`
	Beneficiaries   []Beneficiary    `json:"beneficiaries" validate:"omitempty,dive"`
	Notes           string           `json:"notes"`
	CreatedBy       string           `json:"-"`
}

func (ns *NewSeniorCitizen) Clean() {
	ns.OscaID = core.CleanString(ns.OscaID)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.MiddleName = core.CleanString(ns.MiddleName)
	ns.Phone = core.CleanString(ns.Phone)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
}

// UpdateSenior defines what may be modified on an existing record. Zero
// fields are left untouched.
type UpdateSenior struct {
	OscaID          *string           `json:"osca_id"`
	FirstName       *string           `json:"first_name"`
	LastName        *string           `json:"last_name"`
	MiddleName      *string           `json:"middle_name"`
	DateOfBirth     *string           `json:"date_of_birth" validate:"omitempty,dateformat,seniorage"`
	Gender          *string           `json:"gender" validate:"omitempty,oneof=male female other"`
	Address         *Address          `json:"address"`
	Phone           *string           `json:"phone"`
	Email           *string           `json:"email" validate:"omitempty,email"`
	Emergency       *EmergencyContact `json:"emergency_contact"`
	Medical         *MedicalInfo      `json:"medical_info"`
	LivingCondition *string           `json:"living_condition" validate:"omitempty,oneof=independent with_family assisted_living"`
	Beneficiaries   []Beneficiary     `json:"beneficiaries" validate:"omitempty,dive"`
	Notes           *string           `json:"notes"`
}

type QueryFilter struct {
	Search   string `query:"search"` // name or OSCA id
	Status   Status `query:"status"`
	Barangay string `query:"barangay"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Barangay == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Barangay = core.CleanString(qf.Barangay)
}

// Stats backs the registry dashboard figures.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[Status]int `json:"by_status"`
	ByBarangay map[string]int `json:"by_barangay"`
}
