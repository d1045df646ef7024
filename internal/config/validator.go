// internal/config/validator.go
//
// Required-field checks on a loaded Config.
//
// Context
// -------
// Validation is a separate, explicit step.  Load never fails because a
// secret is missing; callers run Validate when they are ready to decide
// what a missing secret means.  cmd/ai-service treats it as fatal and exits
// before binding the port.
//
// The only rule in use is `required`, attached to OpenAI.APIKey.  Field
// names come from the `env` tag so the error names the variable to set.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = func() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return val
}()

//
// public API
//

// ConfigurationError names every required field that is empty.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Missing returns the env-var names of required fields that are empty, in
// declaration order.  A nil slice means nothing is missing.
func (c *Config) Missing() []string {
	if c == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(v.Struct(c), &verrs) {
		return nil
	}
	var out []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out = append(out, fe.Field())
		}
	}
	return out
}

// Validate returns a *ConfigurationError when any required field is empty.
// It does not mutate c and never exits the process.
func (c *Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}
