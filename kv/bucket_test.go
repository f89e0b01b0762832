// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilledMem(kvs map[string]string) *MemStore {
	m := NewMem()
	for k, v := range kvs {
		m.Put([]byte(k), []byte(v))
	}
	return m
}

func TestBucket_GetterGet(t *testing.T) {
	m := newFilledMem(map[string]string{"k1": "v1", "k2": "v2"})

	tests := []struct {
		b    Bucket
		key  string
		want string
	}{
		{Bucket(""), "k1", "v1"},
		{Bucket(""), "k2", "v2"},
		{Bucket("k"), "k1", ""},
		{Bucket("k"), "1", "v1"},
		{Bucket("k"), "2", "v2"},
		{Bucket("k1"), "", "v1"},
	}
	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got, _ := tt.b.NewGetter(m).Get([]byte(tt.key))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestBucket_GetterHas(t *testing.T) {
	m := newFilledMem(map[string]string{"k1": "v1", "k2": "v2"})

	tests := []struct {
		b    Bucket
		key  string
		want bool
	}{
		{Bucket(""), "k1", true},
		{Bucket("k"), "k1", false},
		{Bucket("k"), "1", true},
		{Bucket("k1"), "", true},
	}
	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got, err := tt.b.NewGetter(m).Has([]byte(tt.key))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBucket_StoreIterateAndBulk(t *testing.T) {
	m := newFilledMem(map[string]string{"a1": "x", "b1": "v1", "b2": "v2", "c1": "y"})
	st := Bucket("b").NewStore(m)

	bulk := st.Bulk()
	require.NoError(t, bulk.Put([]byte("3"), []byte("v3")))
	require.NoError(t, bulk.Delete([]byte("1")))
	assert.Equal(t, 2, bulk.Len())

	// nothing visible before write
	has, _ := m.Has([]byte("b3"))
	assert.False(t, has)
	require.NoError(t, bulk.Write())

	var keys, vals []string
	iter := st.Iterate(Range{})
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
		vals = append(vals, string(iter.Value()))
	}
	iter.Release()
	require.NoError(t, iter.Error())

	assert.Equal(t, []string{"2", "3"}, keys)
	assert.Equal(t, []string{"v2", "v3"}, vals)
}

func TestStaged(t *testing.T) {
	src := newFilledMem(map[string]string{"k1": "v1", "k2": "v2"})
	staged := NewStaged(src)

	require.NoError(t, staged.Put([]byte("k3"), []byte("v3")))
	require.NoError(t, staged.Delete([]byte("k1")))

	_, err := staged.Get([]byte("k1"))
	assert.True(t, staged.IsNotFound(err))
	v, err := staged.Get([]byte("k3"))
	require.NoError(t, err)
	assert.Equal(t, "v3", string(v))

	// source untouched until commit
	has, _ := src.Has([]byte("k3"))
	assert.False(t, has)
	has, _ = src.Has([]byte("k1"))
	assert.True(t, has)

	var keys []string
	iter := staged.Iterate(PrefixRange([]byte("k")))
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	assert.Equal(t, []string{"k2", "k3"}, keys)

	require.NoError(t, staged.Commit())
	assert.Equal(t, 0, staged.Len())
	has, _ = src.Has([]byte("k3"))
	assert.True(t, has)
	has, _ = src.Has([]byte("k1"))
	assert.False(t, has)
}

func TestStagedDiscard(t *testing.T) {
	src := newFilledMem(map[string]string{"k1": "v1"})
	staged := NewStaged(src)

	bulk := staged.Bulk()
	require.NoError(t, bulk.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, bulk.Write())
	has, _ := staged.Has([]byte("k2"))
	assert.True(t, has)

	staged.Discard()
	has, _ = staged.Has([]byte("k2"))
	assert.False(t, has)
	assert.Equal(t, 1, src.Len())
}
