package utils

import (
	"strings"

	"github.com/google/uuid"
)

const localIDPrefix = "local-"

// NewLocalID returns a placeholder identifier for a message the backend
// has not assigned an ID to yet. Keeps per-message UI controls working
// while a round trip is outstanding.
func NewLocalID() string {
	return localIDPrefix + uuid.NewString()
}

// IsLocalID reports whether id was generated by NewLocalID.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}
