package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("pan", validatePAN)
	v.RegisterValidation("aadhaar", validateAadhaar)
	v.RegisterValidation("pincode", validatePincode)
	v.RegisterValidation("inphone", validateIndianPhone)
	v.RegisterValidation("ifsc", validateIFSC)
	v.RegisterValidation("decimalamount", validateDecimalAmount)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "pan":
		return fmt.Sprintf("%s must be a valid PAN (e.g. ABCDE1234F)", field)
	case "aadhaar":
		return fmt.Sprintf("%s must be a valid 12-digit Aadhaar number", field)
	case "pincode":
		return fmt.Sprintf("%s must be a valid 6-digit pincode", field)
	case "inphone":
		return fmt.Sprintf("%s must be a valid 10-digit Indian phone number", field)
	case "ifsc":
		return fmt.Sprintf("%s must be a valid IFSC code (e.g. SBIN0001234)", field)
	case "decimalamount":
		return fmt.Sprintf("%s must be a valid decimal amount", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phonePattern   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	amountPattern  = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// validatePAN validates the Income Tax PAN format
func validatePAN(fl validator.FieldLevel) bool {
	return panPattern.MatchString(fl.Field().String())
}

// validateAadhaar validates a 12-digit Aadhaar number (never starts with 0 or 1)
func validateAadhaar(fl validator.FieldLevel) bool {
	return aadhaarPattern.MatchString(fl.Field().String())
}

// validatePincode validates a 6-digit Indian postal code
func validatePincode(fl validator.FieldLevel) bool {
	return pincodePattern.MatchString(fl.Field().String())
}

// validateIndianPhone validates a 10-digit mobile number, with or without a +91 prefix
func validateIndianPhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	phone = strings.TrimPrefix(phone, "+91")
	phone = strings.ReplaceAll(phone, " ", "")
	return phonePattern.MatchString(phone)
}

// validateIFSC validates an IFSC bank branch code
func validateIFSC(fl validator.FieldLevel) bool {
	return ifscPattern.MatchString(fl.Field().String())
}

// validateDecimalAmount validates a plain decimal string (no exponent, no separators)
func validateDecimalAmount(fl validator.FieldLevel) bool {
	return amountPattern.MatchString(fl.Field().String())
}
