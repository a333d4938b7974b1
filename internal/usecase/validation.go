package usecase

import "strings"

// ValidateRequestText checks that a request body carries visible content.
func ValidateRequestText(text string) bool {
	return strings.TrimSpace(text) != ""
}
