// Package validate wires up a validator with English translations for
// request payload validation.
package validate

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads and translates the first violation
// into a human-readable message.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English messages registered.
func New() (*Validator, error) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to get en translator")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s against its validate tags. The returned error carries
// the translated message of the first violated rule.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(verrs[0].Translate(v.trans))
	}

	return err
}
