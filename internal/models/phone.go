package models

import "strings"

// MinPhoneDigits is the minimum accepted phone number length after
// normalization (area code plus an 8-digit number).
const MinPhoneDigits = 10

// NormalizePhone strips everything but digits from a phone number.
// "(11) 98888-7777" becomes "11988887777".
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether s normalizes to at least MinPhoneDigits digits.
func ValidPhone(s string) bool {
	return len(NormalizePhone(s)) >= MinPhoneDigits
}

// MaskPhone formats a digit string for display as "(AA) NNNNN-NNNN".
// The input is normalized first, so masked input round-trips. The last four
// digits form the final group, the first two the area code, and whatever is
// between (up to five digits) the middle group. Inputs too short to fill
// all three groups are returned as their bare digits.
func MaskPhone(s string) string {
	digits := NormalizePhone(s)
	if len(digits) < MinPhoneDigits {
		return digits
	}
	if len(digits) > 11 {
		digits = digits[:11]
	}
	area := digits[:2]
	suffix := digits[len(digits)-4:]
	middle := digits[2 : len(digits)-4]
	return "(" + area + ") " + middle + "-" + suffix
}
