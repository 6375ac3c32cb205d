package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a configuration problem with enough context to find it.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks that a YAML file parses. A missing or empty
// file is valid and means "use defaults".
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if os.IsPermission(err) {
			return &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			return &ValidationError{FilePath: filePath, Message: strings.Join(typeError.Errors, "; ")}
		}
		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their koanf key instead of the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfigValues checks struct tag constraints and the cross-field
// rules tags cannot express. Only the first problem is reported.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return &ValidationError{
				FilePath: filePath,
				Field:    keyPath(fieldErr.Namespace()),
				Message:  formatValidationError(fieldErr),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if (cfg.GitHub.Owner == "") != (cfg.GitHub.Repo == "") {
		return &ValidationError{
			FilePath: filePath,
			Field:    "github",
			Message:  "owner and repo must be set together",
		}
	}
	return nil
}

// extractLineColumn pulls line and column out of a yaml.v3 error such as
// "yaml: line 5: could not find expected ':'". Returns 0, 0 if absent.
func extractLineColumn(errMsg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError drops the "yaml: line X:" prefix.
func cleanYAMLError(errMsg string) string {
	if !strings.HasPrefix(errMsg, "yaml:") {
		return errMsg
	}
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		return errMsg[idx+2:]
	}
	return errMsg
}

func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// keyPath turns a validator namespace like "Configuration.github.token"
// into the config key "github.token".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
