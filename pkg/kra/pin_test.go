package kra_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/etims-api/pkg/kra"
)

func TestIsValidPIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"canonical PIN", "A012345678Z", true},
		{"lowercase accepted", "a012345678z", true},
		{"surrounding spaces trimmed", "  A012345678Z ", true},
		{"too few digits", "A12345678Z", false},
		{"too many digits", "A0123456789Z", false},
		{"missing trailing letter", "A0123456789", false},
		{"digits only", "01234567890", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, kra.IsValidPIN(tt.input))
		})
	}
}

func TestValidatePINOrID_B2B(t *testing.T) {
	assert.NoError(t, kra.ValidatePINOrID("A012345678Z", true))
	assert.Error(t, kra.ValidatePINOrID("12345678", true),
		"B2B must reject a bare ID number")
	assert.Error(t, kra.ValidatePINOrID("", true))
}

func TestValidatePINOrID_B2C(t *testing.T) {
	assert.NoError(t, kra.ValidatePINOrID("A012345678Z", false))
	assert.NoError(t, kra.ValidatePINOrID("12345678", false),
		"B2C accepts a national ID number")
	assert.Error(t, kra.ValidatePINOrID("12 34", false))
	assert.Error(t, kra.ValidatePINOrID("", false))
}

func TestMaskPIN(t *testing.T) {
	assert.Equal(t, "A012"+strings.Repeat("*", 7), kra.MaskPIN("A012345678Z"))
	assert.Equal(t, "A012", kra.MaskPIN("A012"), "length <= 4 unmodified")
	assert.Equal(t, "", kra.MaskPIN(""))
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "John D**", kra.MaskName("John Doe"))
	assert.Equal(t, "Jane", kra.MaskName("Jane"), "single token stays unmasked")
	assert.Equal(t, "Mary W****** O*****", kra.MaskName("Mary Wanjiku Otieno"))
	assert.Equal(t, "Li Wu", kra.MaskName("Li Wu"), "short tokens stay unmasked")
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, kra.ValidatePhone("0712345678"))
	assert.NoError(t, kra.ValidatePhone("+254 712 345 678"))
	assert.Error(t, kra.ValidatePhone("071234567"), "exactly 9 digits is too short")
	assert.Error(t, kra.ValidatePhone(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "254712345678", kra.NormalizePhone("+254 712-345-678"))
}
