// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/staker/reverts"
	"github.com/vechain/stakepool/test/datagen"
)

func id(s string) acct.ID {
	return acct.Blake2b([]byte(s))
}

type harness struct {
	t       *testing.T
	dataDir string
	out     bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	h := &harness{t: t, dataDir: t.TempDir()}
	prev := output
	output = &h.out
	t.Cleanup(func() { output = prev })
	return h
}

// run executes one command at the given unix time and decodes its JSON output into v.
func (h *harness) run(now uint64, v any, args ...string) error {
	h.out.Reset()
	argv := append([]string{"stakepool", "--data-dir", h.dataDir, "--verbosity", "0", "--now", strconv.FormatUint(now, 10)}, args...)
	if err := newApp().Run(argv); err != nil {
		return err
	}
	if v != nil {
		require.NoError(h.t, json.Unmarshal(h.out.Bytes(), v))
	}
	return nil
}

func TestCommands(t *testing.T) {
	h := newHarness(t)

	seed := id("seed")
	auth, err := authority.NewDeriver(defaultProgramID).Find(seed)
	require.NoError(t, err)

	var (
		alice     = datagen.UserID("alice")
		gold      = id("gold")
		ape       = id("ape")
		aliceApe  = id("alice/ape")
		aliceGold = id("alice/gold")
		reserve   = id("reserve")
		custody   = id("custody")
	)
	fixture := `
mints:
  - id: ` + gold.String() + `
    decimals: 9
    supply: 1000000
  - id: ` + ape.String() + `
    decimals: 0
    supply: 1
    symbol: APE
accounts:
  - {id: ` + aliceApe.String() + `, owner: ` + alice.String() + `, mint: ` + ape.String() + `, amount: 1}
  - {id: ` + aliceGold.String() + `, owner: ` + alice.String() + `, mint: ` + gold.String() + `, amount: 0}
  - {id: ` + reserve.String() + `, owner: ` + auth.ID.String() + `, mint: ` + gold.String() + `, amount: 100}
  - {id: ` + custody.String() + `, owner: ` + auth.ID.String() + `, mint: ` + ape.String() + `, amount: 0}
`
	file := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fixture), 0o600))
	require.NoError(t, h.run(0, nil, "genesis", "--file", file))

	var derived struct {
		Pool acct.ID `json:"pool"`
		Bump uint8   `json:"bump"`
	}
	require.NoError(t, h.run(0, &derived, "derive", "--seed", seed.String()))
	assert.Equal(t, auth.ID, derived.Pool)
	assert.Equal(t, auth.Bump, derived.Bump)

	var p poolView
	require.NoError(t, h.run(0, &p, "init-pool",
		"--seed", seed.String(),
		"--owner", alice.String(),
		"--reward-mint", gold.String(),
		"--reward-account", reserve.String(),
		"--reward-amount", "5",
		"--period", "86400",
		"--withdrawable", "10",
		"--collection", "APE",
	))
	assert.Equal(t, auth.ID, p.ID)
	assert.Equal(t, uint8(10), p.Withdrawable)

	var staked struct {
		Record acct.ID `json:"record"`
	}
	require.NoError(t, h.run(0, &staked, "stake",
		"--pool", auth.ID.String(),
		"--owner", alice.String(),
		"--asset", ape.String(),
		"--source", aliceApe.String(),
		"--custody", custody.String(),
	))

	var claimed struct {
		Amount uint64 `json:"amount"`
	}
	require.NoError(t, h.run(86400*3+1, &claimed, "claim",
		"--pool", auth.ID.String(),
		"--record", staked.Record.String(),
		"--owner", alice.String(),
		"--source", reserve.String(),
		"--dest", aliceGold.String(),
	))
	assert.Equal(t, uint64(15), claimed.Amount)

	err = h.run(86400*9, nil, "unstake",
		"--pool", auth.ID.String(),
		"--record", staked.Record.String(),
		"--owner", alice.String(),
		"--custody", custody.String(),
		"--dest", aliceApe.String(),
	)
	assert.True(t, reverts.Is(err, reverts.InvalidTime), "got %v", err)

	var stakes []stakeView
	require.NoError(t, h.run(86400*4, &stakes, "stakes", "--pool", auth.ID.String(), "--owner", alice.String()))
	require.Len(t, stakes, 1)
	assert.Equal(t, uint8(3), stakes[0].WithdrawnNumber)
	assert.Equal(t, uint64(5), stakes[0].Claimable)
	assert.Equal(t, uint64(86400*10), stakes[0].UnlockTime)

	require.NoError(t, h.run(86400*5, &claimed, "claim-all",
		"--pool", auth.ID.String(),
		"--owner", alice.String(),
		"--dest", aliceGold.String(),
	))
	assert.Equal(t, uint64(10), claimed.Amount)

	var account struct {
		Amount uint64 `json:"amount"`
	}
	require.NoError(t, h.run(0, &account, "account", "--account", aliceGold.String()))
	assert.Equal(t, uint64(25), account.Amount)
}

func TestMissingFlags(t *testing.T) {
	h := newHarness(t)
	err := h.run(0, nil, "pool")
	assert.EqualError(t, err, "missing --pool")

	err = h.run(0, nil, "pool", "--pool", "not-base58!")
	assert.Error(t, err)

	err = h.run(0, nil, "pool", "--pool", id("nothing").String())
	assert.True(t, reverts.Is(err, reverts.NotFound), "got %v", err)
}
