package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// PayloadError lists the fields that failed validation.
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	parts := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		parts = append(parts, fmt.Sprintf("%s failed %s", v.Field, v.Rule))
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields in declaration order.
func (e *PayloadError) Fields() []string {
	fields := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// EchoValidator adapts validator/v10 to echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

// Echo builds an EchoValidator. Field names are reported using their json tags.
func Echo(v *validator.Validate) *EchoValidator {
	if v == nil {
		v = validator.New()
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &EchoValidator{validator: v}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		pldErr := &PayloadError{violations: make([]violation, 0, len(ve))}
		for _, fe := range ve {
			pldErr.violations = append(pldErr.violations, violation{Field: fe.Field(), Rule: fe.Tag()})
		}
		return pldErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
