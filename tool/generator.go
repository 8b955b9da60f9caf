package tool

import (
	"github.com/google/uuid"
)

// GenerateRandomUUID returns a random v4 UUID string, used for session IDs
// and preview tokens.
func GenerateRandomUUID() string {
	return uuid.NewString()
}
