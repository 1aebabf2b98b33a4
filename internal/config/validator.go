package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
	goversion "github.com/hashicorp/go-version"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance
// used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("version_constraint", func(fl validator.FieldLevel) bool {
			_, err := goversion.NewConstraint(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a configuration against its declared rules.
func Validate(cfg *Config) error {
	return validatorInstance().Struct(cfg)
}
