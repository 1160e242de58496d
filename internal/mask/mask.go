// Package mask implements format-preserving redaction for common PII
// categories. All functions are pure: the same (value, category, level)
// triple always produces the same output, and malformed input is passed
// through rather than rejected.
package mask

import "strings"

// Category identifies the kind of PII a value contains.
type Category string

const (
	CategoryEmail      Category = "email"
	CategoryPhone      Category = "phone"
	CategoryCreditCard Category = "credit_card"
	CategorySSN        Category = "ssn"
)

// Level controls how much of the original value stays visible.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Defaults applied when a caller leaves category or level unset.
const (
	DefaultCategory = CategoryEmail
	DefaultLevel    = LevelMedium
)

// ParseCategory resolves a category tag case-insensitively.
// Unrecognized tags return false; callers are expected to pass the
// value through unmasked in that case.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryEmail:
		return CategoryEmail, true
	case CategoryPhone:
		return CategoryPhone, true
	case CategoryCreditCard:
		return CategoryCreditCard, true
	case CategorySSN:
		return CategorySSN, true
	}
	return "", false
}

// ParseLevel resolves a level tag case-insensitively. Unrecognized
// levels fall back to medium.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelLow:
		return LevelLow
	case LevelHigh:
		return LevelHigh
	}
	return LevelMedium
}

// Categories returns the recognized category tags, sorted alphabetically.
func Categories() []string {
	return []string{
		string(CategoryCreditCard),
		string(CategoryEmail),
		string(CategoryPhone),
		string(CategorySSN),
	}
}

// Options selects the masker and its intensity. The zero value is valid
// and resolves to the documented defaults (email, medium).
type Options struct {
	Category Category
	Level    Level
}

func (o Options) withDefaults() Options {
	if o.Category == "" {
		o.Category = DefaultCategory
	}
	if o.Level == "" {
		o.Level = DefaultLevel
	}
	return o
}

// Apply masks value according to opts. Empty values and categories
// outside the closed set are returned unchanged.
func Apply(value string, opts Options) string {
	if value == "" {
		return value
	}
	opts = opts.withDefaults()
	switch opts.Category {
	case CategoryEmail:
		return maskEmail(value, opts.Level)
	case CategoryPhone:
		return maskPhone(value, opts.Level)
	case CategoryCreditCard:
		return maskCreditCard(value, opts.Level)
	case CategorySSN:
		return maskSSN(value, opts.Level)
	default:
		return value
	}
}

// String is the loosely-typed entry point matching the UDF signature
// mask(value, category, level). It is total: empty values, unrecognized
// categories and unrecognized levels never produce an error, they
// resolve to passthrough or the medium default respectively.
func String(value, category, level string) string {
	if value == "" {
		return value
	}
	opts := Options{Level: ParseLevel(level)}
	if category != "" {
		c, ok := ParseCategory(category)
		if !ok {
			return value
		}
		opts.Category = c
	}
	return Apply(value, opts)
}

// digitsOf strips everything but ASCII digits.
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// maskTail masks all but the last keep digits with 'X'.
func maskTail(digits string, keep int) string {
	if len(digits) <= keep {
		return digits
	}
	return strings.Repeat("X", len(digits)-keep) + digits[len(digits)-keep:]
}
