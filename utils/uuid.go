package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random v4 UUID string, used for bid identifiers.
func GenerateID() string {
	return uuid.New().String()
}
