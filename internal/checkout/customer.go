package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"milanfood-backend/internal/domain"
)

// space matches what a browser treats as whitespace, including NBSP and the
// other Unicode space separators.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	personNameRe = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÑáéíóúñ` + space + `]{2,}$`)
	phoneRe      = regexp.MustCompile(`^[0-9+\-` + space + `]{7,15}$`)
)

var fieldMessages = map[string]string{
	"Name":     "enter a valid name",
	"LastName": "enter a valid last name",
	"Phone":    "enter a valid phone number",
	"Street":   "enter the street",
	"Town":     "enter the town",
	"Number":   "enter the house/unit number",
}

// CustomerValidator checks the delivery form field by field in declaration
// order and reports only the first failure.
type CustomerValidator struct {
	v *validator.Validate
}

func NewCustomerValidator() *CustomerValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &CustomerValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate returns nil or a *domain.ValidationError naming the json field.
func (cv *CustomerValidator) Validate(c domain.Customer) error {
	err := cv.v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := fieldMessages[fe.StructField()]
	if !ok {
		msg = "invalid value"
	}
	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}
