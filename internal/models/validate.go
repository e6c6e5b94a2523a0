package models

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// PhonePattern matches the phone numbers recovered from resumes and accepted on input
var PhonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the custom "phone" tag registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return PhonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// InvalidFields returns the non-blank fields that are malformed, in name, email, phone order.
// Blank fields are not checked.
func (p Profile) InvalidFields() []string {
	t := p.Trimmed()

	var supplied []string
	if t.Name != "" {
		supplied = append(supplied, "Name")
	}
	if t.Email != "" {
		supplied = append(supplied, "Email")
	}
	if t.Phone != "" {
		supplied = append(supplied, "Phone")
	}
	if len(supplied) == 0 {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(Validator().StructPartial(t, supplied...), &verrs) {
		return nil
	}

	invalid := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		invalid = append(invalid, strings.ToLower(fe.Field()))
	}
	return invalid
}
