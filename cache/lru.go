// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a typed LRU cache extending golang-lru.
type LRU[K comparable, V any] struct {
	cache *lru.Cache
	hit   atomic.Int64
	miss  atomic.Int64
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: cache}, nil
}

// Loader defines loader to load value.
type Loader[K comparable, V any] func(key K) (V, error)

func (l *LRU[K, V]) Get(key K) (value V, ok bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		l.miss.Add(1)
		return value, false
	}
	l.hit.Add(1)
	return v.(V), true
}

func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// Stats returns hit and miss counts.
func (l *LRU[K, V]) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}

// GetOrLoad first try to get from cache, do load if missed.
// Values failing the keep predicate are returned but not cached.
func (l *LRU[K, V]) GetOrLoad(key K, loader Loader[K, V], keep func(V) bool) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return v, err
	}
	if keep == nil || keep(v) {
		l.Add(key, v)
	}
	return v, nil
}
