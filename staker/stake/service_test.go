// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
)

func TestService(t *testing.T) {
	svc := New(kv.NewMem(), id("program"))

	r, err := svc.Get(id("missing"))
	require.NoError(t, err)
	assert.Nil(t, r)

	first, err := svc.Add(&Record{Owner: id("alice"), Pool: id("pool"), Custody: id("c1"), StakeTime: 10})
	require.NoError(t, err)
	second, err := svc.Add(&Record{Owner: id("alice"), Pool: id("pool"), Custody: id("c2"), StakeTime: 20})
	require.NoError(t, err)
	_, err = svc.Add(&Record{Owner: id("alice"), Pool: id("pool2"), Custody: id("c3")})
	require.NoError(t, err)
	_, err = svc.Add(&Record{Owner: id("bob"), Pool: id("pool"), Custody: id("c4")})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := svc.OwnedBy(id("alice"), id("pool"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	custody := map[string]bool{}
	for _, e := range entries {
		custody[e.Custody.String()] = true
	}
	assert.True(t, custody[id("c1").String()])
	assert.True(t, custody[id("c2").String()])

	r, err = svc.Get(first)
	require.NoError(t, err)
	r.WithdrawnNumber = 3
	r.Unstaked = true
	require.NoError(t, svc.Update(first, r))

	got, err := svc.Get(first)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	assert.Error(t, svc.Update(id("missing"), r))

	none, err := svc.OwnedBy(id("carol"), id("pool"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordIDsDeterministic(t *testing.T) {
	a := New(kv.NewMem(), id("program"))
	b := New(kv.NewMem(), id("program"))
	c := New(kv.NewMem(), id("program2"))

	ida, err := a.Add(&Record{})
	require.NoError(t, err)
	idb, err := b.Add(&Record{})
	require.NoError(t, err)
	idc, err := c.Add(&Record{})
	require.NoError(t, err)

	assert.Equal(t, ida, idb)
	assert.NotEqual(t, ida, idc)
}
