package models

// IsValidID reports whether s is acceptable as a room name or a
// user-supplied name: 3-16 characters, alphanumerics plus '_' and '-'.
func IsValidID(s string) bool {
	if len(s) < 3 || len(s) > 16 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
