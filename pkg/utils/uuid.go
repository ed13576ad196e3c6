package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID returns the first 8 hex characters of a random UUID
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ParseOptionalUUID parses s when it is not empty.
// An empty string yields (nil, nil).
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
