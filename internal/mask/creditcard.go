package mask

import "strings"

// maskCreditCard redacts a card number. The last four digits are always
// kept; the level decides how much of the front survives: nothing on
// high, the first digit on medium, the first four on low.
func maskCreditCard(value string, level Level) string {
	digits := digitsOf(value)

	var masked string
	switch level {
	case LevelHigh:
		masked = maskSpan(digits, 0, 4)
	case LevelLow:
		masked = maskSpan(digits, 4, 4)
	default:
		masked = maskSpan(digits, 1, 4)
	}

	if strings.ContainsRune(value, '-') {
		return interleaveDashes(value, masked)
	}
	return masked
}

// maskSpan keeps the first front and last back digits and masks the
// middle. The counts clamp to the digit count, so the result is always
// exactly as long as the input sequence.
func maskSpan(digits string, front, back int) string {
	n := len(digits)
	if front > n {
		front = n
	}
	if back > n-front {
		back = n - front
	}
	return digits[:front] + strings.Repeat("X", n-front-back) + digits[n-back:]
}

// interleaveDashes re-applies the original dash layout to the masked
// digit sequence: dashes copy through verbatim, every other position
// consumes one masked digit, and if the masked sequence runs short the
// remainder pads with 'X'.
func interleaveDashes(original, masked string) string {
	var b strings.Builder
	b.Grow(len(original))
	i := 0
	for j := 0; j < len(original); j++ {
		if original[j] == '-' {
			b.WriteByte('-')
			continue
		}
		if i < len(masked) {
			b.WriteByte(masked[i])
			i++
		} else {
			b.WriteByte('X')
		}
	}
	return b.String()
}
