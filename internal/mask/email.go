package mask

import (
	"strings"
	"unicode/utf8"
)

// maskEmail redacts an email address. The local part and the domain
// label are starred out according to level; the suffix after the last
// dot (the TLD) always stays visible. Values without an '@' are not
// addresses and pass through untouched.
func maskEmail(value string, level Level) string {
	local, domain, found := strings.Cut(value, "@")
	if !found {
		return value
	}

	// Split the domain into label and suffix on the last dot. A domain
	// without a dot has no suffix to preserve.
	label, suffix := domain, ""
	if dot := strings.LastIndexByte(domain, '.'); dot >= 0 {
		label = domain[:dot]
		suffix = domain[dot:]
	}

	switch level {
	case LevelHigh:
		return stars(local) + "@" + stars(label) + suffix
	case LevelLow:
		return starKeepEnds(local) + "@" + domain
	default:
		return starKeepFirst(local) + "@" + starKeepFirst(label) + suffix
	}
}

func stars(s string) string {
	return strings.Repeat("*", utf8.RuneCountInString(s))
}

// starKeepFirst keeps the first character and stars the rest.
func starKeepFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[0]) + strings.Repeat("*", len(r)-1)
}

// starKeepEnds keeps the first and last character when there is a
// middle to hide, otherwise it degrades to starKeepFirst.
func starKeepEnds(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return starKeepFirst(s)
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
