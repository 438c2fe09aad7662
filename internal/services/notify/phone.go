package notify

import "strings"

// NormalizePhone brings a recipient number to the +91 international
// convention used by every provider here.
func NormalizePhone(number string) string {
	n := strings.TrimSpace(number)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	switch {
	case n == "":
		return ""
	case strings.HasPrefix(n, "+"):
		return n
	case strings.HasPrefix(n, "91") && len(n) > 10:
		return "+" + n
	case strings.HasPrefix(n, "0"):
		return "+91" + n[1:]
	default:
		return "+91" + n
	}
}
