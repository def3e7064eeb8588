package utils

import "strings"

// digitsOnly strips everything but 0-9 and truncates to max digits.
func digitsOnly(value string, max int) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == max {
				break
			}
		}
	}
	return b.String()
}

// MaskPhone formats a Brazilian phone number as (DD) DDDDD-DDDD. Partial
// input is masked as far as the digits go; excess digits are dropped.
func MaskPhone(value string) string {
	d := digitsOnly(value, 11)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// MaskDocument formats a CPF-style document number as DDD.DDD.DDD-DD with
// the same partial and truncation behavior as MaskPhone.
func MaskDocument(value string) string {
	d := digitsOnly(value, 11)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}
