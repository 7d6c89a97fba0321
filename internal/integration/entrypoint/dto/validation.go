package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// RegisterValidators adds the custom binding tags to gin's validator:
// period, delivery_status and role.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"period": func(fl validator.FieldLevel) bool {
			_, ok := valueobject.ParsePeriod(fl.Field().String())
			return ok
		},
		"delivery_status": func(fl validator.FieldLevel) bool {
			return entity.DeliveryStatus(fl.Field().String()).IsValid()
		},
		"role": func(fl validator.FieldLevel) bool {
			return entity.Role(fl.Field().String()).IsValid()
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
