package registry

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

const (
	dateLayout = "2006-01-02"
	minimumAge = 60
)

var (
	dateFormatTag  = "dateformat"
	dateFormatText = "invalid date, expected YYYY-MM-DD"

	seniorAgeTag  = "seniorage"
	seniorAgeText = "senior must be at least 60 years old"

	nowFunc = time.Now // mockable
)

// InitValidators registers the registry-specific validators and their
// translations on the given validator instance.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dateFormatTag, dateFormatValidation)
	core.RegisterCustomTranslation(validate, translator, dateFormatTag, dateFormatText)

	_ = validate.RegisterValidation(seniorAgeTag, seniorAgeValidation)
	core.RegisterCustomTranslation(validate, translator, seniorAgeTag, seniorAgeText)
}

func dateFormatValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

// seniorAgeValidation enforces the registry age floor on a well-formed
// date of birth.
func seniorAgeValidation(fl validator.FieldLevel) bool {
	dob, err := time.Parse(dateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return age(dob, nowFunc()) >= minimumAge
}
