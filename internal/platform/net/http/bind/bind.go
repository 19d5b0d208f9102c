// Package bind binds request input into typed structs and validates it
package bind

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton with english translations; field
// names come from the query tag, then the json tag, then the Go name
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")
		registerShort(v, trans, "datetime", "{0} must be a date formatted as {1}")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

// Struct validates v and maps failures to ErrorCodeValidation with the offending field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Newf(perr.ErrorCodeValidation, "validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ParseQuery decodes the query string into T by `query` tag, first value
// per key, blanks ignored, then validates. Scalars are converted from
// their string form; a failed conversion names the parameter.
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	in := make(map[string]any, len(r.URL.Query()))
	for k, vs := range r.URL.Query() {
		if v := strings.TrimSpace(vs[0]); v != "" {
			in[k] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "query",
		WeaklyTypedInput: true,
		Result:           &dst,
	})
	if err != nil {
		return dst, perr.Wrap(err, perr.ErrorCodeValidation, "query target must be a struct")
	}
	if err := dec.Decode(in); err != nil {
		var zero T
		name := decodeField(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s has the wrong type", name), name)
	}
	if err := Struct(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

// mapstructure reports "cannot parse 'limit' as int: ..."; the first quoted
// token is the parameter
var quoted = regexp.MustCompile(`'([^']+)'`)

func decodeField(err error) string {
	var me *mapstructure.Error
	msg := err.Error()
	if errors.As(err, &me) && len(me.Errors) > 0 {
		msg = me.Errors[0]
	}
	if m := quoted.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return "query"
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, text, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
