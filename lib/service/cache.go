package service

import (
	"time"

	"github.com/getAlby/tahub.go/lib/model"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResponseCache keeps recently served query responses keyed by kind and entity id.
type ResponseCache struct {
	lru *expirable.LRU[string, model.Object]
}

// NewResponseCache creates a cache of the given size. ttl is in seconds, 0 disables expiry.
func NewResponseCache(size int, ttl int) *ResponseCache {
	return &ResponseCache{
		lru: expirable.NewLRU[string, model.Object](size, nil, time.Duration(ttl)*time.Second),
	}
}

func (c *ResponseCache) Asset(assetID string) (model.AssetResponse, bool) {
	return lookup[model.AssetResponse](c, cacheKey(model.KindAssetResponse, assetID))
}

func (c *ResponseCache) PutAsset(r model.AssetResponse) {
	c.lru.Add(cacheKey(model.KindAssetResponse, r.Asset().AssetID()), r)
}

func (c *ResponseCache) Account(accountID string) (model.AccountResponse, bool) {
	return lookup[model.AccountResponse](c, cacheKey(model.KindAccountResponse, accountID))
}

func (c *ResponseCache) PutAccount(r model.AccountResponse) {
	c.lru.Add(cacheKey(model.KindAccountResponse, r.Account().AccountID()), r)
}

func (c *ResponseCache) Len() int {
	return c.lru.Len()
}

func lookup[T model.Object](c *ResponseCache, key string) (T, bool) {
	var zero T
	v, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	r, ok := v.(T)
	if !ok {
		return zero, false
	}
	return r, true
}

func cacheKey(kind model.Kind, id string) string {
	return string(kind) + "/" + id
}
