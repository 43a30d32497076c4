package uid

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Sanitize returns id when it is a valid UUID, or a fresh one otherwise.
// Client-supplied request ids end up in logs, so only well-formed ones are kept.
func Sanitize(id string) string {
	id = strings.TrimSpace(id)
	if IsValid(id) {
		return id
	}
	return New()
}
