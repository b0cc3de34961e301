package utils

import (
	"github.com/google/uuid"
)

// NewRequestID returns the identifier attached to one HTTP request.
func NewRequestID() string {
	return uuid.NewString()
}

// NewSessionID returns an opaque browser session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like one NewSessionID issued.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
