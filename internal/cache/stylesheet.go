// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// stylesheet.go provides the Valkey-backed stylesheet cache. Generated
// form stylesheets are stored with a short TTL so repeated CSS requests
// skip the resolve-and-generate path; any override write for a form drops
// its entries immediately, regardless of TTL. Because stylesheets are pure
// derivations of durable data, every cache error degrades to a miss or a
// briefly stale entry, never a request failure.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"formpress/internal/styling"
)

// stylesheetKeyPrefix is the Valkey key prefix for cached stylesheets.
const stylesheetKeyPrefix = "css:"

// StylesheetCache implements styling.Cache on Valkey, sharing generated
// CSS across instances in a multi-replica deployment.
type StylesheetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStylesheetCache creates a stylesheet cache backed by the given Valkey
// client. A zero ttl falls back to styling.DefaultStylesheetTTL.
func NewStylesheetCache(client *redis.Client, ttl time.Duration) *StylesheetCache {
	if ttl == 0 {
		ttl = styling.DefaultStylesheetTTL
	}
	return &StylesheetCache{client: client, ttl: ttl}
}

// key builds the Valkey key for one (catalog, form) pair.
func key(catalog styling.Catalog, formID uuid.UUID) string {
	return stylesheetKeyPrefix + string(catalog) + ":" + formID.String()
}

// Get retrieves a cached stylesheet. Returns false on miss or error.
func (c *StylesheetCache) Get(ctx context.Context, catalog styling.Catalog, formID uuid.UUID) (string, bool) {
	val, err := c.client.Get(ctx, key(catalog, formID)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("stylesheet cache get error", "form_id", formID, "catalog", catalog, "error", err)
		return "", false
	}
	slog.Debug("stylesheet cache hit", "form_id", formID, "catalog", catalog)
	return val, true
}

// Put stores a generated stylesheet with the configured TTL.
func (c *StylesheetCache) Put(ctx context.Context, catalog styling.Catalog, formID uuid.UUID, css string) {
	if err := c.client.Set(ctx, key(catalog, formID), css, c.ttl).Err(); err != nil {
		slog.Warn("stylesheet cache put error", "form_id", formID, "catalog", catalog, "error", err)
	}
}

// Invalidate removes the form's entries for both catalogs.
func (c *StylesheetCache) Invalidate(ctx context.Context, formID uuid.UUID) {
	keys := []string{
		key(styling.CatalogLegacy, formID),
		key(styling.CatalogTokens, formID),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("stylesheet cache invalidate error", "form_id", formID, "error", err)
	}
	slog.Debug("stylesheet cache invalidated", "form_id", formID)
}

// InvalidateAll removes every cached stylesheet by scanning for the
// prefix. Operational resets only; the cache rebuilds itself on demand.
func (c *StylesheetCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, stylesheetKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("stylesheet cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("stylesheet cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("stylesheet cache fully cleared", "deleted", deleted)
	}
}
