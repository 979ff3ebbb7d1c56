// Package id generates identifiers for persisted records.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random version 4 UUID in canonical string form.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return value.String(), nil
}

// Generator produces identifiers. Services hold one so tests can pin ids.
type Generator func() (string, error)

// Default returns the generator backed by NewID.
func Default() Generator {
	return NewID
}
