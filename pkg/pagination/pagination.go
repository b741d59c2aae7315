// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Listings that return bounded reference catalogs (for example geographic
// data) do not paginate; this package serves the unbounded ones.
package pagination

import (
	"net/http"
	"strconv"
)

// Query parameter keys recognized by [FromRequest].
const (
	ParamPage  = "page"
	ParamLimit = "limit"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
// TotalPages is derived from the total row count and the page size.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

/*
FromRequest parses [ParamPage] and [ParamLimit] from an HTTP request.

Description: Malformed, negative, or excessive values never produce an error;
they are clamped to [DefaultPage], [DefaultLimit], or [MaxLimit] so list
endpoints stay resilient to hostile query strings.

Parameters:
  - request: *http.Request

Returns:
  - Params: Sanitized page navigation values
*/
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	page := queryInt(values.Get(ParamPage), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := queryInt(values.Get(ParamLimit), DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// queryInt parses a raw query value, falling back on empty or malformed input.
func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
