package validator

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/pkg/strcase"
)

var ErrTranslatorNotFound = errors.New("validator: english translator not found")

var (
	rePersonName = regexp.MustCompile(`^[\p{L} .'-]+$`)
	rePhone      = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,22}$`)
	reVIN        = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	reSlug       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

type rule struct {
	tag     string
	message string
	fn      func(s string) bool
}

var rules = []rule{
	{
		tag:     "password",
		message: "{0} must be 8-72 characters",
		fn:      func(s string) bool { return len(s) >= 8 && len(s) <= 72 },
	},
	{
		tag:     "personname",
		message: "{0} can contain only letters and spaces",
		fn:      rePersonName.MatchString,
	},
	{
		tag:     "phone",
		message: "{0} must be a valid phone number",
		fn: func(s string) bool {
			digits := lo.CountBy([]rune(s), func(r rune) bool { return r >= '0' && r <= '9' })
			return rePhone.MatchString(s) && digits >= 7 && digits <= 20
		},
	},
	{
		tag:     "vin",
		message: "{0} must be a 17 character VIN",
		fn:      func(s string) bool { return reVIN.MatchString(strings.ToUpper(s)) },
	},
	{
		tag:     "slug",
		message: "{0} must be lowercase words joined by hyphens",
		fn:      reSlug.MatchString,
	},
}

// V10Validator is the go-playground/validator implementation.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	trans, ok := ut.New(english, english).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for _, r := range rules {
		if err := register(validate, trans, r); err != nil {
			return nil, err
		}
	}

	return &V10Validator{validate: validate, translator: trans}, nil
}

func register(validate *validator.Validate, trans ut.Translator, r rule) error {
	err := validate.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && r.fn(s)
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation(r.tag, trans,
		func(t ut.Translator) error { return t.Add(r.tag, r.message, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strcase.ToLowerSnake(fe.Field())
		if _, seen := out[key]; !seen {
			out[key] = fe.Translate(v.translator)
		}
	}

	return out
}

func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
