package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
)

// FieldErrors maps a JSON field name to a human-readable message.
// It satisfies error and unwraps to apperrors.ErrValidationFailed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Add records msg for field unless the field already has an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// AsFieldErrors extracts FieldErrors from err's chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Checker is implemented by forms with rules the struct tags can't express.
type Checker interface {
	CheckFields(fe FieldErrors)
}

// Validator wraps go-playground/validator and reports errors by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that names fields after their json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return lowerFirst(fld.Name)
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate runs tag rules then Checker rules and returns nil when the form is valid.
func (v *Validator) Validate(form interface{}) FieldErrors {
	fe := FieldErrors{}

	if err := v.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fe.Add("_", err.Error())
			return fe
		}
		for _, e := range verrs {
			fe.Add(e.Field(), Message(e))
		}
	}

	if c, ok := form.(Checker); ok {
		c.CheckFields(fe)
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Submit validates the draft and, only when it is valid, calls save once with it.
func Submit[T any](ctx context.Context, v *Validator, draft *T, save func(context.Context, *T) error) error {
	if draft == nil {
		return fmt.Errorf("%w: empty form", apperrors.ErrValidationFailed)
	}
	if fe := v.Validate(draft); fe != nil {
		return fe
	}
	return save(ctx, draft)
}

// Message creates a human-readable validation error message
func Message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return field + " must be at least " + e.Param()
	case "max", "lte":
		return field + " must be at most " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "lt":
		return field + " must be less than " + e.Param()
	case "ltefield":
		return field + " must not exceed " + lowerFirst(e.Param())
	case "gtefield":
		return field + " must not be before " + lowerFirst(e.Param())
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "alphanum":
		return field + " must contain only letters and digits"
	case "uppercase":
		return field + " must be uppercase"
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
