package auth

import "strings"

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme match is case-insensitive and
// surrounding whitespace is trimmed. A missing header or any other scheme
// yields "", false.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
