package server

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/validators"
)

var registerOnce sync.Once

// RegisterValidators регистрирует собственные правила в движке валидации gin
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("fund_code", validateFundCode)
		}
	})
}

func validateFundCode(fl validator.FieldLevel) bool {
	return validators.IsFundCode(fl.Field().String())
}
