// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/internal/platform/constants"
)

// # Listing Cache (Redis)

// RedisListingCache implements [ListingCache] using Redis.
//
// The catalogs change only through imports, so whole-listing JSON blobs under
// a short TTL give cheap reads without a per-row invalidation scheme.
type RedisListingCache struct {
	client *redis.Client
}

// NewListingCache creates a new Redis-backed ListingCache.
func NewListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{client: client}
}

// getJSON loads and unmarshals a cached listing blob into target.
func (cache *RedisListingCache) getJSON(context context.Context, key string, target any) error {
	payload, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("Cached listing")
		}
		return fmt.Errorf("redis_listing_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("redis_listing_cache_decode_failed: %w", err)
	}

	return nil
}

// setJSON marshals and stores a listing blob under key with a TTL.
func (cache *RedisListingCache) setJSON(context context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_listing_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_listing_cache_set_failed: %w", err)
	}

	return nil
}

/*
GetDepartments returns the cached department listing.

Parameters:
  - context: context.Context

Returns:
  - []Department: Cached listing
  - error: apperr.NotFound on miss, or connectivity errors
*/
func (cache *RedisListingCache) GetDepartments(context context.Context) ([]Department, error) {
	var departments []Department
	if err := cache.getJSON(context, constants.RedisPrefixGeoDepartments, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

/*
SetDepartments stores the department listing with a TTL.

Parameters:
  - context: context.Context
  - departments: []Department
  - ttl: time.Duration

Returns:
  - error: Connectivity errors
*/
func (cache *RedisListingCache) SetDepartments(context context.Context, departments []Department, ttl time.Duration) error {
	return cache.setJSON(context, constants.RedisPrefixGeoDepartments, departments, ttl)
}

/*
GetMunicipalities returns the cached municipality listing.

Parameters:
  - context: context.Context

Returns:
  - []MunicipalityListing: Cached listing
  - error: apperr.NotFound on miss, or connectivity errors
*/
func (cache *RedisListingCache) GetMunicipalities(context context.Context) ([]MunicipalityListing, error) {
	var listings []MunicipalityListing
	if err := cache.getJSON(context, constants.RedisPrefixGeoMunicipios, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

/*
SetMunicipalities stores the municipality listing with a TTL.

Parameters:
  - context: context.Context
  - municipalities: []MunicipalityListing
  - ttl: time.Duration

Returns:
  - error: Connectivity errors
*/
func (cache *RedisListingCache) SetMunicipalities(context context.Context, municipalities []MunicipalityListing, ttl time.Duration) error {
	return cache.setJSON(context, constants.RedisPrefixGeoMunicipios, municipalities, ttl)
}

/*
Invalidate drops both cached listings after an import.

Parameters:
  - context: context.Context

Returns:
  - error: Connectivity errors
*/
func (cache *RedisListingCache) Invalidate(context context.Context) error {
	err := cache.client.Del(context, constants.RedisPrefixGeoDepartments, constants.RedisPrefixGeoMunicipios).Err()
	if err != nil {
		return fmt.Errorf("redis_listing_cache_invalidate_failed: %w", err)
	}
	return nil
}
