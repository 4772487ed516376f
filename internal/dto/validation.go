package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs binding validators beyond the built-in set.
// Must run before the first request is bound.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("pastdate", pastDate)
}

// pastDate accepts dates in BirthdayLayout that are not in the future.
func pastDate(fl validator.FieldLevel) bool {
	t, err := time.Parse(BirthdayLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !t.After(time.Now())
}
