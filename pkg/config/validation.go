package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules checks that every entry pattern is a valid glob
func validateCustomRules(cfg *Config) error {
	patterns := map[string]string{
		"patterns.meta":    cfg.Patterns.Meta,
		"patterns.content": cfg.Patterns.Content,
		"patterns.ticket":  cfg.Patterns.Ticket,
	}
	for key, pattern := range patterns {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("%s: invalid pattern %q: %w", key, pattern, err)
		}
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
