// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/kv"
)

// Raw is a single value stored under a fixed key.
type Raw[V any] struct {
	store kv.Store
	key   []byte
}

func NewRaw[V any](src kv.Store, key []byte) *Raw[V] {
	return &Raw[V]{store: src, key: key}
}

// Get returns the stored value, or the zero value of V if never set.
func (r *Raw[V]) Get() (value V, err error) {
	raw, err := r.store.Get(r.key)
	if err != nil {
		if r.store.IsNotFound(err) {
			return value, nil
		}
		return value, err
	}
	return decode[V](raw)
}

func (r *Raw[V]) Upsert(value V) error {
	val, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrap(err, "encode value")
	}
	return r.store.Put(r.key, val)
}
