package util

import "strings"

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
