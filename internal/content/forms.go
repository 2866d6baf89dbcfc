package content

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"rapv/site/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("icon", func(fl validator.FieldLevel) bool {
		return models.IconID(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		class := sl.Current().Interface().(models.ClassResult)
		if class.PassPercentage.Validate() != nil {
			sl.ReportError(class.PassPercentage, "PassPercentage", "PassPercentage", "passpct", "")
		}
	}, models.ClassResult{})
	return v
}

func validateRecord(record any) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
