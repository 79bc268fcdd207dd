package xmlgen

import "strings"

// The platform exchanges booleans and enums as string tokens. These helpers
// are the single conversion point; builders must not do ad hoc string checks.

// BoolToken renders a boolean as the platform's lowercase token.
func BoolToken(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// ParseBoolToken parses a platform boolean token. Anything other than a
// case-insensitive "true" is false.
func ParseBoolToken(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// NormalizeEnum uppercases value and checks it against the closed vocabulary.
// Unknown values fall back to def so vocabulary additions on the platform
// side do not break older callers.
func NormalizeEnum(value, def string, allowed ...string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// NormalizeEnumLower is NormalizeEnum for vocabularies the platform stores
// in lowercase (connection modes, transfer types, file actions).
func NormalizeEnumLower(value, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// EnsurePrefix prepends prefix unless value already carries it. Qualifier
// enums cross the boundary with platform-specific prefixes (X12IDQUAL_ZZ);
// users supply the short form.
func EnsurePrefix(value, prefix string) string {
	if value == "" || strings.HasPrefix(value, prefix) {
		return value
	}
	return prefix + value
}

// StripPrefix removes a platform enum prefix when reading values back.
func StripPrefix(value, prefix string) string {
	return strings.TrimPrefix(value, prefix)
}

// HyphenateAlgorithm rewrites cipher names to the platform spelling:
// aes256 -> aes-256, rc2128 -> rc2-128. Already-hyphenated names pass through.
func HyphenateAlgorithm(alg string) string {
	a := strings.ToLower(strings.TrimSpace(alg))
	if a == "" || strings.Contains(a, "-") {
		return a
	}
	for _, family := range []string{"aes", "rc2"} {
		if strings.HasPrefix(a, family) && len(a) > len(family) {
			return family + "-" + a[len(family):]
		}
	}
	return a
}
