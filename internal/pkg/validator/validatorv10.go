package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/aurora-api/aurora/internal/pkg/strcase"
)

var (
	// Based on NIST 800-63B Guidelines
	rePassword = regexp.MustCompile(`^.{8,72}$`)

	reAlphaSpace = regexp.MustCompile(`^[a-zA-Z ]+$`)

	// 6 decimal digits, the shape of an emailed one-time code.
	reOTPCode = regexp.MustCompile(`^[0-9]{6}$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	v10CustomValidation(validate, enTrans)

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

//nolint:errcheck,gosec // make linter silent
func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) {
	matches := func(re *regexp.Regexp) validator.Func {
		return func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}

			return re.MatchString(s)
		}
	}

	translate := func(msg string) (validator.RegisterTranslationsFunc, validator.TranslationFunc) {
		register := func(trans ut.Translator) error {
			return trans.Add(msg, "{0} "+msg, false)
		}
		fn := func(trans ut.Translator, fe validator.FieldError) string {
			t, _ := trans.T(msg, strcase.ToLowerSnake(fe.Field()))
			return t
		}

		return register, fn
	}

	validate.RegisterValidation("password", matches(rePassword))
	validate.RegisterTranslation("password", enTrans,
		func(trans ut.Translator) error {
			return trans.Add("password", "{0} must be 8-72 characters", false)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			t, _ := trans.T(fe.Tag(), strcase.ToLowerSnake(fe.Field()))
			return t
		},
	)

	validate.RegisterValidation("alphaspace", matches(reAlphaSpace))
	register, fn := translate("can contain only letters and spaces")
	validate.RegisterTranslation("alphaspace", enTrans, register, fn)

	validate.RegisterValidation("otpcode", matches(reOTPCode))
	register, fn = translate("must be a 6 digit code")
	validate.RegisterTranslation("otpcode", enTrans, register, fn)
}
