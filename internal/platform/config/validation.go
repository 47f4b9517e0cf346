package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports field paths by their koanf keys, so messages name the
// setting an operator actually edits (services.quote.base_url, not BaseURL).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// The service must not start with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	lines := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		lines = append(lines, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func formatFieldError(e validator.FieldError) string {
	key := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, e.Param())
	case "http_url":
		return fmt.Sprintf("%s must be an http or https URL, got %q", key, e.Value())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", key, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", key, e.Tag())
	}
}

// formatFieldPath drops the root struct name: "Config.server.port" becomes
// "server.port".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
