// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/staker/reverts"
)

// Record is the persisted state of one staked asset.
// Fields are RLP encoded by position: append new fields, never reorder.
type Record struct {
	Unstaked        bool
	Owner           acct.ID
	Pool            acct.ID
	Custody         acct.ID // account holding the staked asset
	StakeTime       uint64
	WithdrawnNumber uint8 // installments already claimed
	Asset           acct.ID
}

// Elapsed returns the number of completed periods at now, clamped to the withdrawable count.
func (r *Record) Elapsed(p *pool.Pool, now uint64) uint8 {
	if now < r.StakeTime || p.Period == 0 {
		return 0
	}
	periods := (now - r.StakeTime) / p.Period
	if periods > uint64(p.Withdrawable) {
		return p.Withdrawable
	}
	return uint8(periods)
}

// Claimable returns the reward a claim at now pays and the installment count it advances to.
// A clock reading behind a previous claim pays nothing and keeps the count.
func (r *Record) Claimable(p *pool.Pool, now uint64) (amount uint64, elapsed uint8, err error) {
	elapsed = r.Elapsed(p, now)
	if elapsed <= r.WithdrawnNumber {
		return 0, r.WithdrawnNumber, nil
	}
	reward := new(uint256.Int).SetUint64(p.RewardAmount)
	if _, overflow := reward.MulOverflow(reward, uint256.NewInt(uint64(elapsed-r.WithdrawnNumber))); overflow || !reward.IsUint64() {
		return 0, 0, reverts.Newf(reverts.Overflow, "reward %d x %d overflows", p.RewardAmount, elapsed-r.WithdrawnNumber)
	}
	return reward.Uint64(), elapsed, nil
}

// unlockTime is stake_time + period * withdrawable, exact.
func (r *Record) unlockTime(p *pool.Pool) *uint256.Int {
	unlock := new(uint256.Int).Mul(uint256.NewInt(p.Period), uint256.NewInt(uint64(p.Withdrawable)))
	return unlock.Add(unlock, uint256.NewInt(r.StakeTime))
}

// UnlockTime returns the earliest time the staked asset may leave custody.
func (r *Record) UnlockTime(p *pool.Pool) (uint64, error) {
	unlock := r.unlockTime(p)
	if !unlock.IsUint64() {
		return 0, reverts.New(reverts.Overflow, "unlock time overflows")
	}
	return unlock.Uint64(), nil
}

// Unlocked reports whether the staked asset may leave custody at now.
func (r *Record) Unlocked(p *pool.Pool, now uint64) bool {
	return uint256.NewInt(now).Cmp(r.unlockTime(p)) >= 0
}
