// Package kra contains identity validation and masking rules for KRA
// (Kenya Revenue Authority) taxpayer identifiers as used by eTIMS.
package kra

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// maskRune replaces hidden characters in masked output.
const maskRune = '*'

// pinPattern is the KRA PIN format: one letter, nine digits, one letter
// (e.g. A012345678Z). Matching is case-insensitive.
var pinPattern = regexp.MustCompile(`^[A-Za-z][0-9]{9}[A-Za-z]$`)

// idPattern is the looser identifier accepted for B2C transactions:
// at least six alphanumeric characters (national ID or PIN).
var idPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)

// IsValidPIN reports whether s is a well-formed KRA PIN.
func IsValidPIN(s string) bool {
	return pinPattern.MatchString(strings.TrimSpace(s))
}

// ValidatePINOrID validates a seller/buyer identifier. B2B transactions
// require a strict KRA PIN; B2C accepts a PIN or a looser ID number.
func ValidatePINOrID(s string, b2b bool) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("kra: empty PIN/ID")
	}
	if b2b {
		if !pinPattern.MatchString(s) {
			return fmt.Errorf("kra: B2B requires a valid KRA PIN (e.g. A012345678Z)")
		}
		return nil
	}
	if !pinPattern.MatchString(s) && !idPattern.MatchString(s) {
		return fmt.Errorf("kra: invalid PIN or ID number")
	}
	return nil
}

// MaskPIN shows the first 4 characters of a PIN and masks the remainder.
// PINs of length <= 4 are returned unmodified.
func MaskPIN(pin string) string {
	if len(pin) <= 4 {
		return pin
	}
	return pin[:4] + strings.Repeat(string(maskRune), len(pin)-4)
}

// MaskName keeps the first token of a full name unmasked; subsequent tokens
// longer than 2 characters are rendered as their first letter plus mask fill.
func MaskName(name string) string {
	parts := strings.Split(name, " ")
	for i, part := range parts {
		if i == 0 || len(part) <= 2 {
			continue
		}
		parts[i] = part[:1] + strings.Repeat(string(maskRune), len(part)-1)
	}
	return strings.Join(parts, " ")
}

// NormalizePhone strips every non-digit character from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePhone requires a contact number with more than 9 digits
// (e.g. 0712345678 or +254712345678).
func ValidatePhone(phone string) error {
	digits := NormalizePhone(phone)
	if len(digits) <= 9 {
		return fmt.Errorf("kra: phone number must have more than 9 digits")
	}
	return nil
}
