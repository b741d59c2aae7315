// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package requestutil provides helpers for extracting data from HTTP requests.

It hides the router's parameter extraction and the common body decoding
pattern behind a stable surface, so handlers never import chi directly and
malformed input always maps to the same validation error.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/internal/platform/ctxutil"
	"github.com/condorlabs/condor/internal/platform/sec"
	"github.com/condorlabs/condor/internal/platform/validate"
)

// maxJSONBodyBytes caps JSON request bodies. Auth and catalog payloads are
// tiny; anything bigger is hostile or a client bug.
const maxJSONBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Description: The body is capped at 1 MiB. Any decode failure, including an
oversized body, is reported as [validate.ErrInvalidJSON] so handlers return
a single consistent error for malformed input.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	limited := http.MaxBytesReader(nil, request.Body, maxJSONBodyBytes)

	if err := json.NewDecoder(limited).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated user claims from the request context.
// It returns nil when the request carries no valid token.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the user ID of the currently authenticated caller.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
