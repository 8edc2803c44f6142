package security

import "strings"

// Mask replaces sensitive values.
const Mask = "***"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"authorization",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credentials",
	"auth",
	"passwd",
	"secret",
	"sig",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"pwd",
	"passphrase",
}

var allowList = map[string]struct{}{
	"secret_name": {},
}

// RedactArguments returns a deep copy of value with sensitive object keys masked.
// Non-object values are returned as-is.
func RedactArguments(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		redacted := make(map[string]any, len(typed))
		for key, item := range typed {
			if isSensitiveKey(key) {
				redacted[key] = Mask
				continue
			}
			redacted[key] = RedactArguments(item)
		}
		return redacted
	case []any:
		redacted := make([]any, len(typed))
		for i, item := range typed {
			redacted[i] = RedactArguments(item)
		}
		return redacted
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := allowList[lower]; ok {
		return false
	}
	if strings.Contains(lower, "secret") && strings.Contains(lower, "name") {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
