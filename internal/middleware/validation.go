package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	appvalidator "github.com/jwalitptl/dravail-api/pkg/validator"
)

// RegisterBindingValidators installs the catalog rules on gin's binding
// engine so ShouldBind* checks the same tags as the services.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return appvalidator.Register(v)
}
