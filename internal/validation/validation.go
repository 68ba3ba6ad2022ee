// Package validation wraps validator/v10 for the record types the engine
// persists.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/huecal/huecal-engine/internal/store"
)

// Validator validates records before they are written.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our records.
func New() *Validator {
	v := validator.New()

	// Report JSON field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			return name[:i]
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks a record and returns ErrInvalidInput with field details on
// failure.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	parts := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		parts = append(parts, e.Field()+" "+friendlyMessage(e))
	}
	return store.ErrInvalidInput.WithMessage("validation failed: " + strings.Join(parts, "; "))
}

// Hex validates a single color value outside a struct context.
func (v *Validator) Hex(color string) error {
	if err := v.v.Var(color, "hexcolor"); err != nil {
		return store.ErrInvalidInput.WithMessage(fmt.Sprintf("%q is not a hex color", color))
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "hexcolor":
		return "must be a hex color like #rrggbb"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
