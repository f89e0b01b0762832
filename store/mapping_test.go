// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/kv"
)

type record struct {
	Owner  acct.ID
	Amount uint64
	Flag   bool
	Label  string
}

func TestMapping(t *testing.T) {
	db := kv.NewMem()
	m := NewMapping[acct.ID, *record](db, "r")

	key := acct.Blake2b([]byte("k"))
	got, err := m.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := &record{Owner: acct.Blake2b([]byte("owner")), Amount: 5, Flag: true, Label: "NFT"}
	require.NoError(t, m.Insert(key, rec))
	assert.ErrorIs(t, m.Insert(key, rec), ErrKeyExists)

	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec.Amount = 6
	require.NoError(t, m.Update(key, rec))
	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), got.Amount)

	assert.ErrorIs(t, m.Update(acct.Blake2b([]byte("missing")), rec), ErrKeyNotFound)

	// records live under their bucket prefix
	has, err := db.Has(append([]byte("r"), key.Bytes()...))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMappingValueType(t *testing.T) {
	m := NewMapping[acct.ID, uint64](kv.NewMem(), "n")
	key := acct.Blake2b([]byte("k"))

	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	require.NoError(t, m.Upsert(key, 42))
	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}

type composite []byte

func (c composite) Bytes() []byte { return c }

func TestMappingIterate(t *testing.T) {
	m := NewMapping[composite, uint64](kv.NewMem(), "i")
	require.NoError(t, m.Upsert(composite("a/1"), 1))
	require.NoError(t, m.Upsert(composite("a/2"), 2))
	require.NoError(t, m.Upsert(composite("b/1"), 3))

	var sum uint64
	var keys []string
	err := m.Iterate([]byte("a/"), func(key []byte, v uint64) (bool, error) {
		keys = append(keys, string(key))
		sum += v
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2"}, keys)
	assert.Equal(t, uint64(3), sum)

	count := 0
	require.NoError(t, m.Iterate(nil, func([]byte, uint64) (bool, error) {
		count++
		return false, nil
	}))
	assert.Equal(t, 1, count)
}

func TestRaw(t *testing.T) {
	r := NewRaw[uint64](kv.NewMem(), []byte("counter"))
	v, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	require.NoError(t, r.Upsert(7))
	v, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}
