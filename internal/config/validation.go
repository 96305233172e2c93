package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "transcripto/internal/app/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks struct tags on a configuration value and reports every
// failing field in one error.
func Validate(cfg interface{}) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.Wrap(err, apperrors.KindConfig, "invalid configuration")
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required", "required_if":
			problems = append(problems, fmt.Sprintf("%s is required", field))
		case "url":
			problems = append(problems, fmt.Sprintf("%s must be an absolute URL, got %q", field, fieldError.Value()))
		case "numeric":
			problems = append(problems, fmt.Sprintf("%s must be numeric, got %q", field, fieldError.Value()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s]", field, fieldError.Param()))
		case "gt":
			problems = append(problems, fmt.Sprintf("%s must be positive", field))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", field))
		}
	}
	return apperrors.Newf(apperrors.KindConfig, "invalid configuration: %s", strings.Join(problems, "; "))
}
