// Package validator wraps go-playground/validator with English messages keyed by JSON field name.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks struct tags and reports failures by JSON field name
type Validator struct {
	v     *govalidator.Validate
	trans ut.Translator
}

// New builds a validator with English translations registered
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)

	return &Validator{v: v, trans: trans}
}

// RegisterStructValidation adds a cross-field rule for the given struct types
func (val *Validator) RegisterStructValidation(fn govalidator.StructLevelFunc, types ...interface{}) {
	val.v.RegisterStructValidation(fn, types...)
}

// Struct validates s, returning an error whose message lists every failing field
func (val *Validator) Struct(s interface{}) error {
	if err := val.v.Struct(s); err != nil {
		fields := val.TranslateErrors(err)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, fmt.Sprintf("%s: %s", k, fields[k]))
		}
		return fmt.Errorf("validation failed: %s: %w", strings.Join(msgs, "; "), err)
	}
	return nil
}

// TranslateErrors maps a validation error to field name -> human-readable message.
// Any other error is returned under "detail".
func (val *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Namespace()] = fe.Translate(val.trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}
