package mask

import "strings"

// maskSSN redacts a Social Security Number. High masks every digit;
// medium and low are deliberately identical and keep the last four.
// Dash-formatted nine-digit input renders in the normalized
// XXX-XX-dddd shape (or XXX-XX-XXXX on high).
func maskSSN(value string, level Level) string {
	digits := digitsOf(value)

	if strings.ContainsRune(value, '-') && len(digits) == 9 {
		if level == LevelHigh {
			return "XXX-XX-XXXX"
		}
		return "XXX-XX-" + digits[5:]
	}

	if level == LevelHigh {
		return strings.Repeat("X", len(digits))
	}
	return maskTail(digits, 4)
}
