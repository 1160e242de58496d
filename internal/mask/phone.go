package mask

import "strings"

// maskPhone redacts a phone number. Unformatted numbers keep a
// level-dependent tail of digits: 2 for high, 4 for medium, 7 for low.
//
// Dash-formatted input takes a different path that ignores the level:
// a 10-digit number is rendered in the normalized US shape
// XXX-XXX-dddd with the last four digits visible, and any other
// formatted number keeps its punctuation with every digit masked
// except those in the final four characters.
func maskPhone(value string, level Level) string {
	digits := digitsOf(value)

	if strings.ContainsRune(value, '-') {
		if len(digits) == 10 {
			return "XXX-XXX-" + digits[6:]
		}
		return maskDigitsExceptTail(value, 4)
	}

	keep := 4
	switch level {
	case LevelHigh:
		keep = 2
	case LevelLow:
		keep = 7
	}
	return maskTail(digits, keep)
}

// maskDigitsExceptTail replaces every digit with 'X' except those
// inside the final tail characters of s; non-digit characters are
// copied through in place.
func maskDigitsExceptTail(s string, tail int) string {
	cut := len(s) - tail
	if cut < 0 {
		cut = 0
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < cut; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte('X')
		} else {
			b.WriteByte(s[i])
		}
	}
	b.WriteString(s[cut:])
	return b.String()
}
