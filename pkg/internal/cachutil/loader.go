// Package cachutil contains ttlcache helpers.
package cachutil

import (
	"fmt"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// SuppressedLoader wraps a load function and suppresses duplicate
// in-flight loads of the same key.
//
// The loaded value is stored in the cache with the cache's default TTL.
type SuppressedLoader[K comparable, V any] struct {
	load  func(K) V
	group singleflight.Group
}

// NewSuppressedLoader returns a loader calling load at most once at a time per key.
func NewSuppressedLoader[K comparable, V any](load func(K) V) *SuppressedLoader[K, V] {
	return &SuppressedLoader[K, V]{load: load}
}

var _ ttlcache.Loader[string, any] = (*SuppressedLoader[string, any])(nil)

// Load implements ttlcache.Loader.
func (l *SuppressedLoader[K, V]) Load(c *ttlcache.Cache[K, V], key K) *ttlcache.Item[K, V] {
	// the error can be discarded since the singleflight.Group
	// only returns the error of the func below, which is always nil
	res, _, _ := l.group.Do(fmt.Sprint(key), func() (interface{}, error) {
		return c.Set(key, l.load(key), ttlcache.DefaultTTL), nil
	})
	item, _ := res.(*ttlcache.Item[K, V])
	return item
}
