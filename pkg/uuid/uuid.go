// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

// Package uuid provides UUIDv7 generation and validation helpers.
//
// UUIDv7 identifiers are time-ordered, which keeps B-tree primary key
// indexes append-mostly and avoids the random-write amplification of
// UUIDv4 keys.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// NewV7 generates a new UUIDv7 string.
//
// # Returns
//   - string: The canonical lowercase textual form.
//   - error: Non-nil if the system entropy source fails.
func NewV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uuid: failed to generate v7: %w", err)
	}
	return id.String(), nil
}

// MustNewV7 generates a new UUIDv7 string, panicking on failure.
// Entropy exhaustion is not a recoverable condition for the caller.
func MustNewV7() string {
	id, err := NewV7()
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid reports whether value parses as any RFC 4122 UUID.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
