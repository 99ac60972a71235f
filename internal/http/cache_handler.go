package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"hda-data/internal/cache"

	"go.uber.org/zap"
)

const cachePrefix = "/local/api/v1/cache/"

// CacheHandler exposes the caller's slice of the local cache.
type CacheHandler struct {
	cache  *cache.Cache
	logger *zap.Logger
}

func NewCacheHandler(c *cache.Cache, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{cache: c, logger: logger}
}

func (h *CacheHandler) view(r *http.Request) *cache.Cache {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		return nil
	}
	return h.cache.ForOwner(session.UserID)
}

func cacheKey(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.URL.Path, cachePrefix))
}

// Get returns the stored JSON value, or null when absent.
func (h *CacheHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, Fail("cache key is required"))
		return
	}
	value := cache.Get[json.RawMessage](r.Context(), h.view(r), key, nil)
	writeJSON(w, http.StatusOK, Ok(value))
}

// Put stores the request body (any JSON value) under key.
func (h *CacheHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, Fail("cache key is required"))
		return
	}
	body, err := readBody(r, maxBodyBytes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, Fail("body must be JSON"))
		return
	}
	stored := h.view(r).Set(r.Context(), key, json.RawMessage(body))
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"stored": stored}))
}

func (h *CacheHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, Fail("cache key is required"))
		return
	}
	h.view(r).Remove(r.Context(), key)
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"removed": true}))
}

// Reset clears the reserved entity keys and every hda_ key of the caller.
func (h *CacheHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.view(r).ClearAll(r.Context())
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"cleared": true}))
}
