package common

import "strings"

// RedactedValue replaces sensitive values in logged payloads.
const RedactedValue = "[REDACTED]"

// sensitiveKeys are case-insensitive substrings that mark a key as holding
// credential material. Any map key containing one of these has its value
// replaced before logging.
var sensitiveKeys = []string{
	"token",
	"secret",
	"password",
	"authorization",
	"api_key",
	"apikey",
	"code_verifier",
	"credential",
}

// Redact returns a deep copy of v with values under sensitive keys replaced
// by RedactedValue. Authorization codes (key "code") are truncated rather
// than fully masked so log lines stay correlatable with the provider
// callback. Maps and slices are copied recursively; all other values are
// returned as-is. Redacting an already-redacted payload is a no-op.
func Redact(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if isSensitiveKey(k) {
				out[k] = RedactedValue
				continue
			}
			if strings.EqualFold(k, "code") {
				if s, ok := inner.(string); ok {
					out[k] = TruncateSecret(s)
				} else {
					out[k] = RedactedValue
				}
				continue
			}
			out[k] = Redact(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = Redact(inner)
		}
		return out
	default:
		return v
	}
}

// RedactArgs is a convenience wrapper for argument maps.
func RedactArgs(args map[string]interface{}) map[string]interface{} {
	if args == nil {
		return nil
	}
	return Redact(args).(map[string]interface{})
}

// TruncateSecret returns a short prefix of a secret value suitable for
// logging, e.g. an authorization code. Values of 8 characters or fewer are
// fully masked.
func TruncateSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-2:]
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
