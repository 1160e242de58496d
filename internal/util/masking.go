package util

import "strings"

const (
	// LogMaskingThresholdShort is the length below which values are fully hidden in logs
	LogMaskingThresholdShort = 4
	// LogMaskingThresholdLong is the length below which longer secrets are fully hidden
	LogMaskingThresholdLong = 8
)

// Abbreviate shortens a value for logging (shows first 2 and last 2 characters).
// Used when echoing masked results so raw PII never reaches the log stream.
func Abbreviate(value string) string {
	if len(value) == 0 {
		return "<empty>"
	}
	if len(value) <= LogMaskingThresholdShort {
		return "***"
	}
	return value[:2] + "..." + value[len(value)-2:]
}

// AbbreviateSecret shortens credentials for logging (shows first 4 and last 4
// characters). Used for password hashes and warehouse credentials echoed at
// debug level.
func AbbreviateSecret(value string) string {
	if len(value) == 0 {
		return "<empty>"
	}
	if len(value) <= LogMaskingThresholdLong {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// IsSensitiveKey checks if a config key name suggests a secret
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	sensitivePatterns := []string{
		"password", "secret", "key", "token", "hash",
		"account", "credential", "private",
	}
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lowerKey, pattern) {
			return true
		}
	}
	return false
}
