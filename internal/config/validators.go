package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"

	"github.com/idelchi/gosplit/internal/encryption"
)

// register adds the custom validations and reports fields by their label.
func register(validate *validator.Validate) error {
	if err := validate.RegisterValidation("bytesize", validateByteSize); err != nil {
		return fmt.Errorf("registering bytesize validation: %w", err)
	}

	if err := validate.RegisterValidation("scheme", validateScheme); err != nil {
		return fmt.Errorf("registering scheme validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateByteSize accepts sizes such as "10MB" or "1GiB" that fit in an int64 and are positive.
func validateByteSize(fl validator.FieldLevel) bool {
	size, err := humanize.ParseBytes(fl.Field().String())

	return err == nil && size > 0 && size <= 1<<62
}

// validateScheme accepts the empty string and every supported scheme name.
func validateScheme(fl validator.FieldLevel) bool {
	_, err := encryption.ParseScheme(fl.Field().String())

	return err == nil
}
