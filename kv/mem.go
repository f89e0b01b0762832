// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by the in-memory stores when a key is absent.
var ErrNotFound = errors.New("kv: not found")

var _ Store = (*MemStore)(nil)

// MemStore is a map backed Store, used by tests and in-memory runs.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMem creates an empty in-memory store.
func NewMem() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}

func (m *MemStore) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MemStore) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (m *MemStore) Put(key, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), val...)
	return nil
}

func (m *MemStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

// Len returns the number of stored keys.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemStore) Bulk() Bulk {
	return &memBulk{store: m}
}

func (m *MemStore) Iterate(r Range) Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pairs := make([]pair, 0)
	for k, v := range m.data {
		if inRange([]byte(k), r) {
			pairs = append(pairs, pair{[]byte(k), append([]byte(nil), v...)})
		}
	}
	sortPairs(pairs)
	return &sliceIter{pairs: pairs, pos: -1}
}

type op struct {
	key []byte
	val []byte
	del bool
}

type memBulk struct {
	store *MemStore
	ops   []op
}

func (b *memBulk) Put(key, val []byte) error {
	b.ops = append(b.ops, op{key: append([]byte(nil), key...), val: append([]byte(nil), val...)})
	return nil
}

func (b *memBulk) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: append([]byte(nil), key...), del: true})
	return nil
}

func (b *memBulk) Len() int {
	return len(b.ops)
}

func (b *memBulk) Write() error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, o := range b.ops {
		if o.del {
			delete(b.store.data, string(o.key))
		} else {
			b.store.data[string(o.key)] = o.val
		}
	}
	b.ops = nil
	return nil
}

type pair struct {
	key []byte
	val []byte
}

func sortPairs(pairs []pair) {
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})
}

func inRange(key []byte, r Range) bool {
	if len(r.Start) > 0 && bytes.Compare(key, r.Start) < 0 {
		return false
	}
	if len(r.Limit) > 0 && bytes.Compare(key, r.Limit) >= 0 {
		return false
	}
	return true
}

type sliceIter struct {
	pairs []pair
	pos   int
}

func (it *sliceIter) Next() bool {
	if it.pos+1 >= len(it.pairs) {
		it.pos = len(it.pairs)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIter) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.pairs) {
		return nil
	}
	return it.pairs[it.pos].key
}

func (it *sliceIter) Value() []byte {
	if it.pos < 0 || it.pos >= len(it.pairs) {
		return nil
	}
	return it.pairs[it.pos].val
}

func (it *sliceIter) Release()     { it.pairs = nil }
func (it *sliceIter) Error() error { return nil }
