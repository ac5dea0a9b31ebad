package validator

import (
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/updatekit/updatekit/version"
)

var (
	uni   = ut.New(en.New())
	trans ut.Translator
)

var Validate = New()

func init() {
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(Validate, trans)

	Validate.RegisterTranslation("version", trans, func(ut ut.Translator) error {
		return ut.Add("version", "{0} must be a parsable version string", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("version", fe.Field())
		return t
	})

	Validate.RegisterTranslation("rfc3339", trans, func(ut ut.Translator) error {
		return ut.Add("rfc3339", "{0} must be an RFC 3339 timestamp", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("rfc3339", fe.Field())
		return t
	})
}

func New() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("version", versionName)
	validate.RegisterValidation("rfc3339", rfc3339)

	return validate
}

func versionName(fl validator.FieldLevel) bool {
	_, err := version.Parse(fl.Field().String())
	return err == nil
}

func rfc3339(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

type ValidationError struct {
	Field     string `json:"field"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// Struct validates v and returns translated violations, ok=false when
// any were found.
func Struct(v any) ([]*ValidationError, bool) {
	err := Validate.Struct(v)
	if err == nil {
		return nil, true
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ValidationError{{Message: err.Error()}}, false
	}
	return convertValidationErrors(ves), false
}

func convertValidationErrors(ves validator.ValidationErrors) []*ValidationError {
	errors := make([]*ValidationError, 0, len(ves))
	for _, ve := range ves {
		errors = append(errors, &ValidationError{
			Field:     ve.Field(),
			Violation: ve.Tag(),
			Message:   ve.Translate(trans),
		})
	}
	return errors
}
