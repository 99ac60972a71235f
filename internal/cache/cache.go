package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hda-data/internal/domain"
	"hda-data/internal/store"

	"go.uber.org/zap"
)

// KeyPrefix marks application keys that ClearAll removes besides the entity keys.
const KeyPrefix = "hda_"

// ReservedKeys are the entity list keys owned by the cache.
var ReservedKeys = []string{
	"campaigns",
	"leads",
	"contacts",
	"bookings",
	"partnerships",
	"industries",
	"targets",
	"competitors",
	"pr_campaigns",
	"media_contacts",
	"messages",
	"pipeline_items",
}

// Cache is a best-effort JSON view over a KV substrate. No method returns
// an error: failures are logged and collapse to a default, false or a no-op.
type Cache struct {
	kv     store.KV
	prefix string
	logger *zap.Logger
}

// New wraps kv. A nil kv behaves like an absent substrate.
func New(kv store.KV, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{kv: kv, logger: logger}
}

// ForOwner returns a view whose keys live under the owner's namespace.
func (c *Cache) ForOwner(ownerID string) *Cache {
	if c == nil {
		return nil
	}
	return &Cache{
		kv:     c.kv,
		prefix: c.prefix + "owner:" + ownerID + ":",
		logger: c.logger.With(zap.String("owner_id", ownerID)),
	}
}

// Get decodes key into a T, or returns def on a miss, a decode failure
// or a missing substrate.
func Get[T any](ctx context.Context, c *Cache, key string, def T) T {
	if !c.available("get", key) {
		return def
	}
	raw, err := c.kv.Get(ctx, c.prefix+key)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(unavailable(err)))
		}
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		c.logger.Warn("cache value undecodable", zap.String("key", key), zap.Error(err))
		return def
	}
	return out
}

// Set stores v as JSON and reports whether the write landed.
func (c *Cache) Set(ctx context.Context, key string, v any) bool {
	if !c.available("set", key) {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache value unencodable", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := c.kv.Set(ctx, c.prefix+key, string(raw), 0); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(unavailable(err)))
		return false
	}
	return true
}

// Remove deletes key if it can.
func (c *Cache) Remove(ctx context.Context, key string) {
	if !c.available("remove", key) {
		return
	}
	if err := c.kv.Delete(ctx, c.prefix+key); err != nil {
		c.logger.Warn("cache remove failed", zap.String("key", key), zap.Error(unavailable(err)))
	}
}

// ClearAll drops the reserved entity keys and every KeyPrefix key in this view.
func (c *Cache) ClearAll(ctx context.Context) {
	if !c.available("clear", "") {
		return
	}
	keys := make([]string, 0, len(ReservedKeys))
	for _, k := range ReservedKeys {
		keys = append(keys, c.prefix+k)
	}
	found, err := c.kv.ScanKeys(ctx, escapeGlob(c.prefix)+KeyPrefix+"*")
	if err != nil {
		c.logger.Warn("cache scan failed", zap.Error(unavailable(err)))
	}
	keys = append(keys, found...)
	if err := c.kv.Delete(ctx, keys...); err != nil {
		c.logger.Warn("cache clear failed", zap.Int("keys", len(keys)), zap.Error(unavailable(err)))
	}
}

// Snapshot caches the owner's latest list for kind under its reserved key.
func (c *Cache) Snapshot(ctx context.Context, kind domain.Kind, records []domain.Record) bool {
	if records == nil {
		records = []domain.Record{}
	}
	return c.Set(ctx, string(kind), records)
}

// available reports whether a substrate is attached; a cache built without
// one logs each skipped call at debug level.
func (c *Cache) available(op, key string) bool {
	if c == nil {
		return false
	}
	if c.kv == nil {
		c.logger.Debug("cache substrate absent",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(domain.ErrStorageUnavailable),
		)
		return false
	}
	return true
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
