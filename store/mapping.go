// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package store persists typed records as RLP values in logical buckets of a kv store.
// RLP encodes struct fields positionally, so record fields must only ever be appended.
package store

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/kv"
)

var (
	ErrKeyExists   = errors.New("store: key already exists")
	ErrKeyNotFound = errors.New("store: key not found")
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for records, similar to a mapping in Solidity.
type Mapping[K Key, V any] struct {
	store kv.Store
}

func NewMapping[K Key, V any](src kv.Store, bucket kv.Bucket) *Mapping[K, V] {
	return &Mapping[K, V]{store: bucket.NewStore(src)}
}

// Get returns the stored value, or the zero value of V if the key is absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	raw, err := m.store.Get(key.Bytes())
	if err != nil {
		if m.store.IsNotFound(err) {
			return value, nil
		}
		return value, err
	}
	return decode[V](raw)
}

func (m *Mapping[K, V]) Has(key K) (bool, error) {
	return m.store.Has(key.Bytes())
}

// Insert stores a new value, failing if the key is taken.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	has, err := m.store.Has(key.Bytes())
	if err != nil {
		return err
	}
	if has {
		return ErrKeyExists
	}
	return m.put(key, value)
}

// Update overwrites an existing value, failing if the key is absent.
func (m *Mapping[K, V]) Update(key K, value V) error {
	has, err := m.store.Has(key.Bytes())
	if err != nil {
		return err
	}
	if !has {
		return ErrKeyNotFound
	}
	return m.put(key, value)
}

func (m *Mapping[K, V]) Upsert(key K, value V) error {
	return m.put(key, value)
}

func (m *Mapping[K, V]) put(key K, value V) error {
	val, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrap(err, "encode value")
	}
	return m.store.Put(key.Bytes(), val)
}

// Iterate visits, in key order, every value whose key starts with prefix.
// Iteration stops when fn returns false or an error.
func (m *Mapping[K, V]) Iterate(prefix []byte, fn func(key []byte, value V) (bool, error)) error {
	iter := m.store.Iterate(kv.PrefixRange(prefix))
	defer iter.Release()

	for iter.Next() {
		value, err := decode[V](iter.Value())
		if err != nil {
			return err
		}
		more, err := fn(iter.Key(), value)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return iter.Error()
}

func decode[V any](raw []byte) (value V, err error) {
	if reflect.TypeOf(value) != nil && reflect.TypeOf(value).Kind() == reflect.Ptr {
		value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		if err := rlp.DecodeBytes(raw, value); err != nil {
			return value, errors.Wrap(err, "decode value")
		}
		return value, nil
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, errors.Wrap(err, "decode value")
	}
	return value, nil
}
