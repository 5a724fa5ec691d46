package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. decimal.Decimal fields are validated
// by their float value so `gte=0` / `gt=0` tags work on money.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// ValidateStruct runs struct tags and converts the first failure into a
// ValidationError.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		return &ValidationError{Field: ve.Namespace(), Message: describeTag(ve)}
	}
	return &ValidationError{Message: err.Error()}
}

// MoneyScale is the number of fractional digits money columns store.
const MoneyScale = 4

// ValidateMoneyScale rejects amounts the money columns would round on store.
func ValidateMoneyScale(field string, amount decimal.Decimal) error {
	if amount.Exponent() < -MoneyScale && !amount.Equal(amount.Truncate(MoneyScale)) {
		return NewValidationError(field, "must have at most %d decimal places", MoneyScale)
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil
}

// FormatPhoneNumber returns the E.164 form of a number that already passed
// ValidatePhoneNumber.
func FormatPhoneNumber(phoneNumber, countryCode string) string {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return phoneNumber
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}
