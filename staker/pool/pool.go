// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/staker/reverts"
)

// MaxCollectionLength bounds the stake collection id to the metadata symbol length.
const MaxCollectionLength = assets.MaxSymbolLength

// Pool is the persisted pool record. The pool is addressed by its derived authority.
// Fields are RLP encoded by position: append new fields, never reorder.
type Pool struct {
	Owner           acct.ID // configures the pool, immutable
	Seed            acct.ID // derives the pool authority
	RewardMint      acct.ID
	RewardAccount   acct.ID // reserve holding the reward budget
	RewardAmount    uint64  // paid per completed period, per stake
	Period          uint64  // seconds in one accrual window
	Withdrawable    uint8   // max installments a stake may claim
	StakeCollection string
	Bump            uint8 // canonical bump of the authority
}

// Params are the creation parameters of a pool.
type Params struct {
	Owner           acct.ID
	Seed            acct.ID
	RewardMint      acct.ID
	RewardAccount   acct.ID
	RewardAmount    uint64
	Period          uint64
	Withdrawable    uint8
	StakeCollection string
}

// Validate checks the creation parameters against the derived authority and the reserve account.
// A nil reserve means the account does not exist.
func Validate(params *Params, authority acct.ID, reserve *assets.Account) error {
	if reserve == nil {
		return reverts.New(reverts.InvalidTokenAccount, "reward account not found")
	}
	if reserve.Owner != authority {
		return reverts.Newf(reverts.InvalidTokenAccount, "reward account owner %v is not the pool authority", reserve.Owner)
	}
	if reserve.Mint != params.RewardMint {
		return reverts.Newf(reverts.InvalidTokenAccount, "reward account holds %v, want %v", reserve.Mint, params.RewardMint)
	}
	if params.Period == 0 {
		return reverts.New(reverts.InvalidPeriod, "period must be positive")
	}
	if len(params.StakeCollection) > MaxCollectionLength {
		return reverts.Newf(reverts.InvalidCollection, "collection id exceeds %d bytes", MaxCollectionLength)
	}
	return nil
}
