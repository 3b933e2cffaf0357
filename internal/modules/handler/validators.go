package handler

import (
	"math"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidations installs the custom binding validations used by the
// request structs. Safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// quarterhours: hours must land on a 15-minute boundary.
		_ = v.RegisterValidation("quarterhours", func(fl validator.FieldLevel) bool {
			q := fl.Field().Float() * 4
			return q == math.Trunc(q)
		})
	})
}
