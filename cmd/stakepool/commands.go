// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets/tokenledger"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/staker"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/staker/reverts"
	"github.com/vechain/stakepool/staker/stake"
)

type poolView struct {
	ID              acct.ID `json:"id"`
	Owner           acct.ID `json:"owner"`
	Seed            acct.ID `json:"seed"`
	Bump            uint8   `json:"bump"`
	RewardMint      acct.ID `json:"rewardMint"`
	RewardAccount   acct.ID `json:"rewardAccount"`
	RewardAmount    uint64  `json:"rewardAmount"`
	Period          uint64  `json:"period"`
	Withdrawable    uint8   `json:"withdrawable"`
	StakeCollection string  `json:"stakeCollection"`
}

func newPoolView(id acct.ID, p *pool.Pool) *poolView {
	return &poolView{
		ID:              id,
		Owner:           p.Owner,
		Seed:            p.Seed,
		Bump:            p.Bump,
		RewardMint:      p.RewardMint,
		RewardAccount:   p.RewardAccount,
		RewardAmount:    p.RewardAmount,
		Period:          p.Period,
		Withdrawable:    p.Withdrawable,
		StakeCollection: p.StakeCollection,
	}
}

type stakeView struct {
	ID              acct.ID `json:"id"`
	Owner           acct.ID `json:"owner"`
	Pool            acct.ID `json:"pool"`
	Custody         acct.ID `json:"custody"`
	Asset           acct.ID `json:"asset"`
	StakeTime       uint64  `json:"stakeTime"`
	WithdrawnNumber uint8   `json:"withdrawnNumber"`
	Unstaked        bool    `json:"unstaked"`
	Claimable       uint64  `json:"claimable"`
	UnlockTime      uint64  `json:"unlockTime"`
}

func newStakeView(s *staker.Staker, e stake.Entry) (*stakeView, error) {
	claimable, err := s.Claimable(e.ID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.UnlockTime(e.ID)
	if err != nil && !reverts.Is(err, reverts.Overflow) {
		return nil, err
	}
	if err != nil {
		unlock = math.MaxUint64
	}
	return &stakeView{
		ID:              e.ID,
		Owner:           e.Owner,
		Pool:            e.Pool,
		Custody:         e.Custody,
		Asset:           e.Asset,
		StakeTime:       e.StakeTime,
		WithdrawnNumber: e.WithdrawnNumber,
		Unstaked:        e.Unstaked,
		Claimable:       claimable,
		UnlockTime:      unlock,
	}, nil
}

func genesisAction(ctx *cli.Context) error {
	path := ctx.String(fileFlag.Name)
	if path == "" {
		return errors.Errorf("missing --%s", fileFlag.Name)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open fixture")
	}
	defer f.Close()

	fixture, err := tokenledger.DecodeFixture(f)
	if err != nil {
		return err
	}

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	progress := func() {}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		bar := pb.New(fixture.Len()).SetMaxWidth(90).Start()
		defer bar.Finish()
		progress = func() { bar.Increment() }
	}

	staged := kv.NewStaged(db)
	if err := tokenledger.New(staged).Apply(fixture, progress); err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		return err
	}
	logger.Info("ledger loaded", "mints", len(fixture.Mints), "accounts", len(fixture.Accounts))
	return nil
}

func deriveAction(ctx *cli.Context) error {
	seed, err := readID(ctx, seedFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		auth, err := s.Authority(seed)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"pool": auth.ID, "bump": auth.Bump})
	})
}

func initPoolAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, seedFlag, ownerFlag, rewardMintFlag, rewardAccountFlag)
	if err != nil {
		return err
	}
	withdrawable := ctx.Uint(withdrawableFlag.Name)
	if withdrawable > math.MaxUint8 {
		return errors.Errorf("--%s exceeds %d", withdrawableFlag.Name, math.MaxUint8)
	}
	params := &pool.Params{
		Seed:            ids[0],
		Owner:           ids[1],
		RewardMint:      ids[2],
		RewardAccount:   ids[3],
		RewardAmount:    ctx.Uint64(rewardAmountFlag.Name),
		Period:          ctx.Uint64(periodFlag.Name),
		Withdrawable:    uint8(withdrawable),
		StakeCollection: ctx.String(collectionFlag.Name),
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		id, err := s.InitPool(params)
		if err != nil {
			return err
		}
		p, err := s.Pool(id)
		if err != nil {
			return err
		}
		return printJSON(newPoolView(id, p))
	})
}

func stakeAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, poolFlag, ownerFlag, assetFlag, sourceFlag, custodyFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		recordID, err := s.Stake(ids[0], ids[1], ids[2], ids[3], ids[4])
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"record": recordID})
	})
}

func unstakeAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, poolFlag, recordFlag, ownerFlag, custodyFlag, destFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		if err := s.Unstake(ids[0], ids[1], ids[2], ids[3], ids[4]); err != nil {
			return err
		}
		return printJSON(map[string]any{"record": ids[1], "unstaked": true})
	})
}

func claimAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, poolFlag, recordFlag, ownerFlag, sourceFlag, destFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		amount, err := s.Claim(ids[0], ids[1], ids[2], ids[3], ids[4])
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"record": ids[1], "amount": amount})
	})
}

func claimAllAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, poolFlag, ownerFlag, destFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		total, err := s.ClaimAll(ids[1], ids[0], ids[2])
		if err != nil {
			return errors.WithMessagef(err, "paid %d before failing", total)
		}
		return printJSON(map[string]any{"amount": total})
	})
}

func poolAction(ctx *cli.Context) error {
	id, err := readID(ctx, poolFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		p, err := s.Pool(id)
		if err != nil {
			return err
		}
		return printJSON(newPoolView(id, p))
	})
}

func stakesAction(ctx *cli.Context) error {
	ids, err := readIDs(ctx, poolFlag, ownerFlag)
	if err != nil {
		return err
	}
	return withStaker(ctx, func(s *staker.Staker) error {
		entries, err := s.StakesOf(ids[1], ids[0])
		if err != nil {
			return err
		}
		views := make([]*stakeView, 0, len(entries))
		for _, e := range entries {
			v, err := newStakeView(s, e)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return printJSON(views)
	})
}

func accountAction(ctx *cli.Context) error {
	id, err := readID(ctx, accountFlag)
	if err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := tokenledger.New(db).Account(id)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"id": id, "owner": a.Owner, "mint": a.Mint, "amount": a.Amount})
}
