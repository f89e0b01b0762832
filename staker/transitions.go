// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/staker/reverts"
	"github.com/vechain/stakepool/staker/stake"
)

// InitPool creates a pool addressed by the authority derived from params.Seed.
func (s *Staker) InitPool(params *pool.Params) (poolID acct.ID, err error) {
	err = s.update("init_pool", func(sess *session, _ uint64) error {
		auth, err := sess.pools.Authority(params.Seed)
		if err != nil {
			return err
		}
		exists, err := sess.pools.Exists(auth.ID)
		if err != nil {
			return err
		}
		if exists {
			return reverts.Newf(reverts.PoolExists, "pool %v already initialised", auth.ID)
		}
		reserve, err := lookup(sess.ledger.Account(params.RewardAccount))(assets.ErrAccountNotFound)
		if err != nil {
			return err
		}
		if err := pool.Validate(params, auth.ID, reserve); err != nil {
			return err
		}
		if _, err := sess.pools.Add(auth, params); err != nil {
			return err
		}
		poolID = auth.ID
		logger.Debug("pool initialised", "pool", auth.ID, "owner", params.Owner, "period", params.Period, "withdrawable", params.Withdrawable)
		return nil
	})
	if err != nil {
		return acct.ID{}, err
	}
	return poolID, nil
}

// Stake moves one unit of a unique asset into the pool custody and opens a record for it.
func (s *Staker) Stake(poolID, owner, asset, source, custody acct.ID) (recordID acct.ID, err error) {
	err = s.update("stake", func(sess *session, now uint64) error {
		p, err := sess.pool(poolID)
		if err != nil {
			return err
		}
		d := &stake.Deposit{Asset: asset}
		if d.Mint, err = lookup(sess.ledger.Mint(asset))(assets.ErrMintNotFound); err != nil {
			return err
		}
		if d.Metadata, err = lookup(sess.meta.MetadataOf(asset))(assets.ErrMetadataNotFound); err != nil {
			return err
		}
		if d.Source, err = lookup(sess.ledger.Account(source))(assets.ErrAccountNotFound); err != nil {
			return err
		}
		if d.Custody, err = lookup(sess.ledger.Account(custody))(assets.ErrAccountNotFound); err != nil {
			return err
		}
		if err := stake.ValidateStake(p, poolID, d); err != nil {
			return err
		}

		if err := sess.ledger.Transfer(source, custody, owner, 1, nil); err != nil {
			return reverts.Wrap(reverts.TokenTransferFailed, err, "deposit asset")
		}

		recordID, err = sess.stakes.Add(&stake.Record{
			Owner:     owner,
			Pool:      poolID,
			Custody:   custody,
			StakeTime: now,
			Asset:     asset,
		})
		if err != nil {
			return err
		}
		sess.afterCommit(func() { metricStakedAssets().Add(1) })
		logger.Debug("asset staked", "pool", poolID, "record", recordID, "owner", owner, "asset", asset, "time", now)
		return nil
	})
	if err != nil {
		return acct.ID{}, err
	}
	return recordID, nil
}

// Unstake returns the staked asset once every period of the stake has elapsed.
func (s *Staker) Unstake(poolID, recordID, owner, custody, dest acct.ID) error {
	return s.update("unstake", func(sess *session, now uint64) error {
		p, err := sess.pool(poolID)
		if err != nil {
			return err
		}
		r, err := sess.record(recordID)
		if err != nil {
			return err
		}
		if err := stake.ValidateUnstake(p, poolID, r, owner, custody, dest, now); err != nil {
			return err
		}

		signer, err := sess.pools.Signer(p)
		if err != nil {
			return err
		}
		if err := sess.ledger.Transfer(custody, dest, poolID, 1, signer); err != nil {
			return reverts.Wrap(reverts.TokenTransferFailed, err, "release asset")
		}

		r.Unstaked = true
		if err := sess.stakes.Update(recordID, r); err != nil {
			return err
		}
		sess.afterCommit(func() { metricStakedAssets().Add(-1) })
		logger.Debug("asset unstaked", "pool", poolID, "record", recordID, "dest", dest, "time", now)
		return nil
	})
}

// Claim pays the installments completed since the last claim and returns the amount paid.
func (s *Staker) Claim(poolID, recordID, owner, source, dest acct.ID) (amount uint64, err error) {
	err = s.update("claim", func(sess *session, now uint64) error {
		amount, err = sess.claim(poolID, recordID, owner, source, dest, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

func (sess *session) claim(poolID, recordID, owner, source, dest acct.ID, now uint64) (uint64, error) {
	p, err := sess.pool(poolID)
	if err != nil {
		return 0, err
	}
	r, err := sess.record(recordID)
	if err != nil {
		return 0, err
	}
	if err := stake.ValidateClaim(p, poolID, r, owner, source, dest); err != nil {
		return 0, err
	}
	amount, elapsed, err := r.Claimable(p, now)
	if err != nil {
		return 0, err
	}
	installments := elapsed - r.WithdrawnNumber

	signer, err := sess.pools.Signer(p)
	if err != nil {
		return 0, err
	}
	if err := sess.ledger.Transfer(source, dest, poolID, amount, signer); err != nil {
		return 0, reverts.Wrap(reverts.TokenTransferFailed, err, "pay reward")
	}

	r.WithdrawnNumber = elapsed
	if err := sess.stakes.Update(recordID, r); err != nil {
		return 0, err
	}
	sess.afterCommit(func() {
		metricRewardPaid().Add(int64(amount))
		metricInstallments().Observe(int64(installments))
	})
	logger.Debug("reward claimed", "pool", poolID, "record", recordID, "amount", amount, "withdrawn", elapsed, "time", now)
	return amount, nil
}

// ClaimAll claims every record of owner in the pool that has installments to pay, each in its
// own transition. It stops at the first failure and returns what was paid until then.
func (s *Staker) ClaimAll(owner, poolID, dest acct.ID) (total uint64, err error) {
	p, err := s.Pool(poolID)
	if err != nil {
		return 0, err
	}
	entries, err := s.StakesOf(owner, poolID)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	for _, e := range entries {
		if e.WithdrawnNumber >= p.Withdrawable {
			continue
		}
		if due, _, err := e.Claimable(p, now); err == nil && due == 0 {
			continue
		}
		amount, err := s.Claim(poolID, e.ID, owner, p.RewardAccount, dest)
		if err != nil {
			return total, errors.WithMessagef(err, "claim %v", e.ID)
		}
		total += amount
	}
	return total, nil
}

// lookup turns the not found error of a collaborator into a nil value.
func lookup[T any](v *T, err error) func(notFound error) (*T, error) {
	return func(notFound error) (*T, error) {
		if err == nil {
			return v, nil
		}
		if errors.Is(err, notFound) {
			return nil, nil
		}
		return nil, err
	}
}
