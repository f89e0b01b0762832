// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/staker/reverts"
)

// Deposit gathers what a stake transition is checked against. Nil entries were not found.
type Deposit struct {
	Asset    acct.ID
	Mint     *assets.Mint
	Metadata *assets.Metadata
	Source   *assets.Account
	Custody  *assets.Account
}

// ValidateStake checks a deposit in order. The first failing check is returned.
func ValidateStake(p *pool.Pool, poolID acct.ID, d *Deposit) error {
	if d.Mint == nil || !d.Mint.IsUnique() {
		return reverts.New(reverts.InvalidTokenMint, "asset is not a unique unit")
	}
	if d.Metadata == nil || d.Metadata.Mint != d.Asset {
		return reverts.New(reverts.InvalidMetadata, "metadata does not describe the asset")
	}
	if d.Source == nil || d.Source.Owner == poolID {
		return reverts.New(reverts.InvalidTokenAccount, "source account is held by the pool")
	}
	if d.Source.Mint != d.Asset {
		return reverts.New(reverts.InvalidTokenAccount, "source account holds another asset")
	}
	if d.Custody == nil || d.Custody.Owner != poolID {
		return reverts.New(reverts.InvalidTokenAccount, "custody account is not held by the pool")
	}
	if d.Metadata.TrimmedSymbol() != p.StakeCollection {
		return reverts.Newf(reverts.InvalidMetadata, "collection %q is not staked in this pool", d.Metadata.TrimmedSymbol())
	}
	return nil
}

// ValidateUnstake checks the release of a staked asset at now.
func ValidateUnstake(p *pool.Pool, poolID acct.ID, r *Record, owner, custody, dest acct.ID, now uint64) error {
	if r.Unstaked {
		return reverts.New(reverts.AlreadyUnstaked, "asset already unstaked")
	}
	if !r.Unlocked(p, now) {
		return reverts.New(reverts.InvalidTime, "stake still locked")
	}
	if r.Owner != owner {
		return reverts.New(reverts.InvalidStakeData, "caller does not own the stake")
	}
	if r.Pool != poolID {
		return reverts.New(reverts.InvalidStakeData, "stake belongs to another pool")
	}
	if custody != r.Custody {
		return reverts.New(reverts.InvalidTokenAccount, "source is not the custody account")
	}
	if dest == r.Custody {
		return reverts.New(reverts.InvalidTokenAccount, "destination is the custody account")
	}
	return nil
}

// ValidateClaim checks a reward claim. It does not look at the unstaked flag.
func ValidateClaim(p *pool.Pool, poolID acct.ID, r *Record, owner, source, dest acct.ID) error {
	if r.Owner != owner {
		return reverts.New(reverts.InvalidStakeData, "caller does not own the stake")
	}
	if r.Pool != poolID {
		return reverts.New(reverts.InvalidStakeData, "stake belongs to another pool")
	}
	if r.WithdrawnNumber >= p.Withdrawable {
		return reverts.New(reverts.InvalidTime, "all installments claimed")
	}
	if source != p.RewardAccount {
		return reverts.New(reverts.InvalidTokenAccount, "source is not the reward account")
	}
	if dest == p.RewardAccount {
		return reverts.New(reverts.InvalidTokenAccount, "destination is the reward account")
	}
	return nil
}
