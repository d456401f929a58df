package parser

// IsAccountIDValid reports whether candidate is an acceptable account
// identifier: non-empty, with every character an ASCII letter, ASCII
// digit, hyphen, period, or "@". Callers translate a false result into
// the AC04 status code.
func IsAccountIDValid(candidate string) bool {
	if candidate == "" {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		c := candidate[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == '@':
		default:
			return false
		}
	}
	return true
}
