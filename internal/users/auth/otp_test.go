// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/condorlabs/condor/internal/users/auth"
)

/*
TestGenerateCode verifies that generated codes are always 6 numeric digits.
*/
func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := auth.GenerateCode()

		assert.NoError(t, err)
		assert.Len(t, code, auth.CodeLength)

		// Drawn from [100000, 999999]: never a leading zero, always digits.
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
		assert.NotEqual(t, byte('0'), code[0])
	}
}

/*
TestNormalizeEmail verifies lowercasing, trimming, and idempotency.
*/
func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@test.com", auth.NormalizeEmail("TEST@test.com "))
	assert.Equal(t, "test@test.com", auth.NormalizeEmail("  Test@Test.COM\t"))
	assert.Equal(t, "", auth.NormalizeEmail("   "))

	// Idempotency: normalizing twice equals normalizing once.
	once := auth.NormalizeEmail(" MiXeD@Case.Org ")
	assert.Equal(t, once, auth.NormalizeEmail(once))
}

/*
TestIsValidEmail verifies the accepted address shape.
*/
func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"x@y.z",
	}
	for _, email := range valid {
		assert.True(t, auth.IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"no-at-sign.com",
		"missing@tld",
		"spaces in@local.com",
		"user@dom ain.com",
	}
	for _, email := range invalid {
		assert.False(t, auth.IsValidEmail(email), "expected %q to be invalid", email)
	}
}
