package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/agendaly/booking-api/internal/schedule"
)

// Custom binding validators for the schedule grammar.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return schedule.ValidHHMM(fl.Field().String())
	})
	_ = v.RegisterValidation("civildate", func(fl validator.FieldLevel) bool {
		return schedule.ValidDate(fl.Field().String())
	})
}
