// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/assets/tokenledger"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/test/datagen"
)

const day = 86400

func id(s string) acct.ID {
	return acct.Blake2b([]byte(s))
}

var (
	programID = id("program")
	gold      = id("gold")
	ape       = id("ape #1")
	alice     = datagen.UserID("alice")
	bob       = datagen.UserID("bob")

	aliceApe  = id("alice/ape")
	aliceGold = id("alice/gold")
	bobGold   = id("bob/gold")
	reserve   = id("reserve")
	custody   = id("custody")
)

func tokenBackend(db kv.Store) (assets.Ledger, assets.MetadataProvider) {
	l := tokenledger.New(db)
	return l, l
}

type testStaker struct {
	*Staker
	t      *testing.T
	db     *kv.MemStore
	clock  *clockwork.FakeClock
	ledger *tokenledger.Ledger
	pool   acct.ID // authority of the seed "pool"
}

// newTestStaker prepares a ledger with an APE collectible owned by alice, a gold reward
// reserve and a custody account both held by the authority of the seed "pool".
func newTestStaker(t *testing.T) *testStaker {
	db := kv.NewMem()
	fake := clockwork.NewFakeClockAt(time.Unix(0, 0))

	s, err := New(Config{ProgramID: programID, PoolCacheSize: 16}, db, tokenBackend, clock.New(fake))
	require.NoError(t, err)

	auth, err := s.Authority(id("pool"))
	require.NoError(t, err)

	l := tokenledger.New(db)
	require.NoError(t, l.Apply(&tokenledger.Fixture{
		Mints: []tokenledger.MintEntry{
			{ID: gold, Decimals: 9, Supply: 1_000_000},
			{ID: ape, Decimals: 0, Supply: 1, Symbol: "APE"},
		},
		Accounts: []tokenledger.AccountEntry{
			{ID: aliceApe, Owner: alice, Mint: ape, Amount: 1},
			{ID: aliceGold, Owner: alice, Mint: gold},
			{ID: bobGold, Owner: bob, Mint: gold},
			{ID: reserve, Owner: auth.ID, Mint: gold, Amount: 1000},
			{ID: custody, Owner: auth.ID, Mint: ape},
		},
	}, nil))

	return &testStaker{Staker: s, t: t, db: db, clock: fake, ledger: l, pool: auth.ID}
}

func (ts *testStaker) params() *pool.Params {
	return &pool.Params{
		Owner:           alice,
		Seed:            id("pool"),
		RewardMint:      gold,
		RewardAccount:   reserve,
		RewardAmount:    5,
		Period:          day,
		Withdrawable:    10,
		StakeCollection: "APE",
	}
}

func (ts *testStaker) initPool(modify func(*pool.Params)) {
	p := ts.params()
	if modify != nil {
		modify(p)
	}
	id, err := ts.InitPool(p)
	require.NoError(ts.t, err)
	require.Equal(ts.t, ts.pool, id)
}

func (ts *testStaker) stake() acct.ID {
	recordID, err := ts.Stake(ts.pool, alice, ape, aliceApe, custody)
	require.NoError(ts.t, err)
	return recordID
}

func (ts *testStaker) at(sec int64) {
	ts.clock.Advance(time.Unix(sec, 0).Sub(ts.clock.Now()))
}

func (ts *testStaker) balance(account acct.ID) uint64 {
	a, err := ts.ledger.Account(account)
	require.NoError(ts.t, err)
	return a.Amount
}
