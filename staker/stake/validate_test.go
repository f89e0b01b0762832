// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/staker/reverts"
)

func id(s string) acct.ID {
	return acct.Blake2b([]byte(s))
}

func TestValidateStake(t *testing.T) {
	p := newPool()
	p.StakeCollection = "APE"
	poolID := id("pool")
	asset := id("nft")

	valid := func() *Deposit {
		return &Deposit{
			Asset:    asset,
			Mint:     &assets.Mint{Decimals: 0, Supply: 1},
			Metadata: &assets.Metadata{Mint: asset, Symbol: "APE\x00\x00"},
			Source:   &assets.Account{Owner: id("alice"), Mint: asset, Amount: 1},
			Custody:  &assets.Account{Owner: poolID, Mint: asset},
		}
	}

	tests := []struct {
		name   string
		modify func(d *Deposit)
		kind   reverts.Kind
	}{
		{"missing mint", func(d *Deposit) { d.Mint = nil }, reverts.InvalidTokenMint},
		{"fungible", func(d *Deposit) { d.Mint.Decimals = 6 }, reverts.InvalidTokenMint},
		{"supply above one", func(d *Deposit) { d.Mint.Supply = 2 }, reverts.InvalidTokenMint},
		{"mint checked first", func(d *Deposit) {
			d.Mint.Supply = 2
			d.Metadata = nil
			d.Source = nil
		}, reverts.InvalidTokenMint},
		{"missing metadata", func(d *Deposit) { d.Metadata = nil }, reverts.InvalidMetadata},
		{"metadata of another asset", func(d *Deposit) { d.Metadata.Mint = id("other") }, reverts.InvalidMetadata},
		{"source held by pool", func(d *Deposit) { d.Source.Owner = poolID }, reverts.InvalidTokenAccount},
		{"missing source", func(d *Deposit) { d.Source = nil }, reverts.InvalidTokenAccount},
		{"source of another asset", func(d *Deposit) { d.Source.Mint = id("other") }, reverts.InvalidTokenAccount},
		{"custody not held by pool", func(d *Deposit) { d.Custody.Owner = id("alice") }, reverts.InvalidTokenAccount},
		{"missing custody", func(d *Deposit) { d.Custody = nil }, reverts.InvalidTokenAccount},
		{"other collection", func(d *Deposit) { d.Metadata.Symbol = "CAT" }, reverts.InvalidMetadata},
		{"account checks before collection", func(d *Deposit) {
			d.Metadata.Symbol = "CAT"
			d.Custody = nil
		}, reverts.InvalidTokenAccount},
	}

	assert.NoError(t, ValidateStake(p, poolID, valid()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.modify(d)
			err := ValidateStake(p, poolID, d)
			assert.True(t, reverts.Is(err, tt.kind), "got %v", err)
		})
	}
}

// Only the configured collection may be staked: a matching symbol passes, any other is rejected.
func TestValidateStakeCollectionMatch(t *testing.T) {
	p := newPool()
	p.StakeCollection = "APE"
	poolID := id("pool")
	asset := id("nft")
	d := &Deposit{
		Asset:    asset,
		Mint:     &assets.Mint{Decimals: 0, Supply: 1},
		Metadata: &assets.Metadata{Mint: asset, Symbol: "APE"},
		Source:   &assets.Account{Owner: id("alice"), Mint: asset, Amount: 1},
		Custody:  &assets.Account{Owner: poolID, Mint: asset},
	}
	assert.NoError(t, ValidateStake(p, poolID, d))

	d.Metadata.Symbol = "APES"
	assert.True(t, reverts.Is(ValidateStake(p, poolID, d), reverts.InvalidMetadata))
}

func TestValidateUnstake(t *testing.T) {
	p := newPool()
	poolID := id("pool")
	unlock := uint64(day * 10)

	valid := func() *Record {
		return &Record{Owner: id("alice"), Pool: poolID, Custody: id("custody")}
	}
	tests := []struct {
		name   string
		modify func(r *Record) (owner, custody, dest acct.ID, now uint64)
		kind   reverts.Kind
	}{
		{"already unstaked", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			r.Unstaked = true
			return id("bob"), id("x"), id("custody"), 0
		}, reverts.AlreadyUnstaked},
		{"locked", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			return id("alice"), id("custody"), id("dest"), unlock - 1
		}, reverts.InvalidTime},
		{"not owner", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			return id("bob"), id("custody"), id("dest"), unlock
		}, reverts.InvalidStakeData},
		{"other pool", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			r.Pool = id("pool2")
			return id("alice"), id("custody"), id("dest"), unlock
		}, reverts.InvalidStakeData},
		{"wrong custody", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			return id("alice"), id("other"), id("dest"), unlock
		}, reverts.InvalidTokenAccount},
		{"dest is custody", func(r *Record) (acct.ID, acct.ID, acct.ID, uint64) {
			return id("alice"), id("custody"), id("custody"), unlock
		}, reverts.InvalidTokenAccount},
	}

	assert.NoError(t, ValidateUnstake(p, poolID, valid(), id("alice"), id("custody"), id("dest"), unlock))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			owner, custody, dest, now := tt.modify(r)
			err := ValidateUnstake(p, poolID, r, owner, custody, dest, now)
			assert.True(t, reverts.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestValidateClaim(t *testing.T) {
	p := newPool()
	p.RewardAccount = id("reserve")
	poolID := id("pool")

	valid := func() *Record {
		return &Record{Owner: id("alice"), Pool: poolID, Unstaked: true}
	}
	assert.NoError(t, ValidateClaim(p, poolID, valid(), id("alice"), id("reserve"), id("dest")), "unstaked records still claim")

	r := valid()
	assert.True(t, reverts.Is(ValidateClaim(p, poolID, r, id("bob"), id("reserve"), id("dest")), reverts.InvalidStakeData))
	assert.True(t, reverts.Is(ValidateClaim(p, id("pool2"), r, id("alice"), id("reserve"), id("dest")), reverts.InvalidStakeData))
	assert.True(t, reverts.Is(ValidateClaim(p, poolID, r, id("alice"), id("other"), id("dest")), reverts.InvalidTokenAccount))
	assert.True(t, reverts.Is(ValidateClaim(p, poolID, r, id("alice"), id("reserve"), id("reserve")), reverts.InvalidTokenAccount))

	r.WithdrawnNumber = p.Withdrawable
	assert.True(t, reverts.Is(ValidateClaim(p, poolID, r, id("alice"), id("other"), id("dest")), reverts.InvalidTime), "exhausted before account checks")
	assert.True(t, reverts.Is(ValidateClaim(p, poolID, r, id("bob"), id("reserve"), id("dest")), reverts.InvalidStakeData), "ownership first")
}
