package middleware

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"complianceconnect.backend/internal/domain/entities"
)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// RegisterValidators adds the marketplace binding rules to gin's validator:
// role (self-registrable role), weekday (lowercase day name) and hhmm (a
// 24h "HH:MM" slot).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	rules := map[string]validator.Func{
		"role": func(fl validator.FieldLevel) bool {
			return entities.UserRole(fl.Field().String()).SelfRegistrable()
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return weekdays[fl.Field().String()]
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return hhmm.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
