package types

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ssnPattern   = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
	emailPattern = regexp.MustCompile(`(?i)^\S+@\S+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
)

// fieldMessages maps "field.tag" (or "field" as a fallback) to the inline
// message shown next to the offending input.
var fieldMessages = map[string]string{
	"firstName":                 "First name is required",
	"lastName":                  "Last name is required",
	"dateOfBirth":               "Date of birth is required",
	"socialSecurityNumber":      "SSN is required",
	"socialSecurityNumber.ssn":  "Please enter a valid SSN format",
	"phone":                     "Phone number is required",
	"email":                     "Email is required",
	"email.looseemail":          "Invalid email address",
	"street":                    "Street address is required",
	"city":                      "City is required",
	"state":                     "State is required",
	"state.oneof":               "Please select a state",
	"zipCode":                   "ZIP code is required",
	"zipCode.zip5":              "Please enter a valid 5-digit ZIP code",
	"status":                    "Employment status is required",
	"status.oneof":              "Please select an employment status",
	"annualIncome":              "Annual income is required",
	"annualIncome.gte":          "Annual income cannot be negative",
	"monthlyRent.gte":           "Monthly housing cost cannot be negative",
	"monthlyDebt.gte":           "Monthly debt cannot be negative",
	"employmentLength.oneof":    "Please select a valid employment length",
	"bankingRelationship.oneof": "Please select a valid banking relationship",
	"existingCredit.oneof":      "Please select a valid credit range",
	"company":                   "Company name is required",
	"password":                  "Password is required",
	"password.min":              "Password must be at least %s characters",
	"confirmPassword":           "Please confirm your password",
	"confirmPassword.eqfield":   "Passwords do not match",
	"agreeToTerms":              "You must agree to the terms and conditions",
}

// NewValidator returns a validator that knows the form-specific tags
// (ssn, looseemail, zip5) and reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "ssn", ssnPattern)
	mustRegister(v, "looseemail", emailPattern)
	mustRegister(v, "zip5", zipPattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// FieldErrors flattens a validator error into field name -> message.
// Only the first failure per field is kept. A nil or non-validation error
// yields nil.
func FieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = messageFor(name, fe.Tag(), fe.Param())
	}
	return out
}

func messageFor(field, tag, param string) string {
	if tag != "required" {
		if msg, ok := fieldMessages[field+"."+tag]; ok {
			if strings.Contains(msg, "%s") {
				return strings.Replace(msg, "%s", param, 1)
			}
			return msg
		}
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}
