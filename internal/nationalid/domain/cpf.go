// Package domain defines the national identification number (CPF) model: normalization, check
// digit validation, display formatting and the persisted record.
package domain

import (
	"strings"
)

// Length is the number of digits in a normalized CPF.
const Length = 11

// Normalize strips every non-digit character.
func Normalize(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsValid reports whether value reduces to 11 digits that satisfy both check digits.
// Sequences of one repeated digit pass the arithmetic but are rejected.
func IsValid(value string) bool {
	cpf := Normalize(value)
	if len(cpf) != Length {
		return false
	}

	digits := make([]int, Length)
	repeated := true
	for i := 0; i < Length; i++ {
		digits[i] = int(cpf[i] - '0')
		if digits[i] != digits[0] {
			repeated = false
		}
	}
	if repeated {
		return false
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

// checkDigit computes the next check digit for the given prefix. Weights start at len+1 and
// decrease to 2; a remainder of 10 maps to 0.
func checkDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, d := range prefix {
		sum += d * weight
		weight--
	}

	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// Format renders an 11-digit value as ###.###.###-##. Values that do not reduce to 11 digits
// are returned unchanged.
func Format(value string) string {
	cpf := Normalize(value)
	if len(cpf) != Length {
		return value
	}
	return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:11]
}

// Last4 returns the last four digits of the normalized value, or "" when it is not 11 digits.
func Last4(value string) string {
	cpf := Normalize(value)
	if len(cpf) != Length {
		return ""
	}
	return cpf[Length-4:]
}

// Mask renders the display form from the stored last four digits, e.g. ***.***.*09-09.
func Mask(last4 string) string {
	if len(last4) != 4 {
		return "***.***.***-**"
	}
	return "***.***.*" + last4[:2] + "-" + last4[2:]
}
