// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/staker/reverts"
)

func id(s string) acct.ID {
	return acct.Blake2b([]byte(s))
}

func params() *Params {
	return &Params{
		Owner:           id("owner"),
		Seed:            id("seed"),
		RewardMint:      id("gold"),
		RewardAccount:   id("reserve"),
		RewardAmount:    5,
		Period:          86400,
		Withdrawable:    10,
		StakeCollection: "APE",
	}
}

func TestValidate(t *testing.T) {
	auth := id("authority")
	reserve := &assets.Account{Owner: auth, Mint: id("gold")}

	tests := []struct {
		name    string
		modify  func(p *Params, reserve *assets.Account) *assets.Account
		kind    reverts.Kind
		wantErr bool
	}{
		{"valid", func(*Params, *assets.Account) *assets.Account { return reserve }, 0, false},
		{"missing reserve", func(*Params, *assets.Account) *assets.Account { return nil }, reverts.InvalidTokenAccount, true},
		{"reserve not owned by authority", func(_ *Params, r *assets.Account) *assets.Account {
			r.Owner = id("someone")
			return r
		}, reverts.InvalidTokenAccount, true},
		{"reserve of another mint", func(_ *Params, r *assets.Account) *assets.Account {
			r.Mint = id("silver")
			return r
		}, reverts.InvalidTokenAccount, true},
		{"zero period", func(p *Params, r *assets.Account) *assets.Account {
			p.Period = 0
			return r
		}, reverts.InvalidPeriod, true},
		{"reserve checked before period", func(p *Params, r *assets.Account) *assets.Account {
			p.Period = 0
			r.Owner = id("someone")
			return r
		}, reverts.InvalidTokenAccount, true},
		{"collection too long", func(p *Params, r *assets.Account) *assets.Account {
			p.StakeCollection = "ELEVENCHARS"
			return r
		}, reverts.InvalidCollection, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params()
			r := *reserve
			err := Validate(p, auth, tt.modify(p, &r))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, reverts.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestService(t *testing.T) {
	lru, err := cache.NewLRU[acct.ID, *Pool](4)
	require.NoError(t, err)
	svc := New(kv.NewMem(), authority.NewDeriver(id("program")), lru)

	auth, err := svc.Authority(id("seed"))
	require.NoError(t, err)

	p, err := svc.Get(auth.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, lru.Len(), "missing pools are not cached")

	p, err = svc.Add(auth, params())
	require.NoError(t, err)
	assert.Equal(t, auth.Bump, p.Bump)

	_, err = svc.Add(auth, params())
	assert.True(t, reverts.Is(err, reverts.PoolExists))

	got, err := svc.Get(auth.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, 1, lru.Len())

	exists, err := svc.Exists(auth.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	signer, err := svc.Signer(got)
	require.NoError(t, err)
	assert.True(t, signer.Authorizes(auth.ID))
}
