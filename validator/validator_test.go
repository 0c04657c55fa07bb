package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityPayload struct {
	PANNumber     string `json:"pan_number" validate:"omitempty,pan"`
	AadhaarNumber string `json:"aadhaar_number" validate:"omitempty,aadhaar"`
	Pincode       string `json:"pincode" validate:"omitempty,pincode"`
	Phone         string `json:"phone" validate:"omitempty,inphone"`
	IFSCCode      string `json:"ifsc_code" validate:"omitempty,ifsc"`
	Amount        string `json:"amount" validate:"omitempty,decimalamount"`
}

func TestCustomValidators(t *testing.T) {
	v := New()

	cases := []struct {
		name    string
		payload identityPayload
		valid   bool
	}{
		{"valid PAN", identityPayload{PANNumber: "ABCDE1234F"}, true},
		{"PAN with lowercase", identityPayload{PANNumber: "abcde1234f"}, false},
		{"PAN too short", identityPayload{PANNumber: "ABCD1234F"}, false},
		{"valid aadhaar", identityPayload{AadhaarNumber: "234567890123"}, true},
		{"aadhaar starting with 1", identityPayload{AadhaarNumber: "134567890123"}, false},
		{"aadhaar too short", identityPayload{AadhaarNumber: "23456789012"}, false},
		{"valid pincode", identityPayload{Pincode: "560001"}, true},
		{"pincode leading zero", identityPayload{Pincode: "060001"}, false},
		{"valid phone", identityPayload{Phone: "9876543210"}, true},
		{"phone with +91 prefix", identityPayload{Phone: "+919876543210"}, true},
		{"phone starting with 5", identityPayload{Phone: "5876543210"}, false},
		{"valid IFSC", identityPayload{IFSCCode: "SBIN0001234"}, true},
		{"IFSC without the fixed zero", identityPayload{IFSCCode: "SBIN1001234"}, false},
		{"valid amount", identityPayload{Amount: "1500.50"}, true},
		{"negative amount", identityPayload{Amount: "-10.25"}, true},
		{"amount with separators", identityPayload{Amount: "1,500.50"}, false},
		{"amount with exponent", identityPayload{Amount: "1e5"}, false},
		{"empty payload passes omitempty", identityPayload{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.payload)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidationErrorShape(t *testing.T) {
	v := New()

	type payload struct {
		FirstName string `json:"first_name" validate:"required"`
		PANNumber string `json:"pan_number" validate:"omitempty,pan"`
	}

	err := v.Validate(&payload{PANNumber: "bad"})
	require.Error(t, err)

	validationErrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, validationErrs, 2)

	assert.Equal(t, "first_name", validationErrs[0].Field)
	assert.Equal(t, "required", validationErrs[0].Tag)
	assert.Equal(t, "first_name is required", validationErrs[0].Message)

	assert.Equal(t, "pan_number", validationErrs[1].Field)
	assert.Contains(t, validationErrs[1].Message, "valid PAN")
}
