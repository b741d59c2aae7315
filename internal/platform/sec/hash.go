// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// BcryptHasher is the injectable one-way password verifier used by the
// auth service. Defining it as a type (rather than bare package functions)
// lets tests substitute a deterministic fake.
type BcryptHasher struct{}

// Hash produces a bcrypt digest of the plain-text password.
func (BcryptHasher) Hash(plainTextPassword string) (string, error) {
	return HashPassword(plainTextPassword)
}

// Compare reports whether the plain-text password matches the stored digest.
// Comparison is constant-time inside bcrypt to prevent timing attacks.
func (BcryptHasher) Compare(plainTextPassword, existingHash string) bool {
	return CheckPasswordHash(plainTextPassword, existingHash)
}
