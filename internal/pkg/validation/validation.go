package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 6 characters (admin account minimum).
func IsValidPassword(password string) bool {
	return len(password) >= 6
}

// SplitConversationID parses an "email1_email2" composite key into its two
// identities. Returns ok=false when either side is empty or the separator
// is missing.
func SplitConversationID(id string) (string, string, bool) {
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
