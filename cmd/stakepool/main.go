// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")

	defaultProgramID = acct.Blake2b([]byte("stakepool"))
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "stakepool"
	app.Usage = "Stake unique assets in reward pools"
	app.Flags = []cli.Flag{
		dataDirFlag,
		programIDFlag,
		verbosityFlag,
		jsonLogsFlag,
		metricsFlag,
		ntpCheckFlag,
		nowFlag,
		poolCacheFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		initMetrics(ctx)
		return nil
	}
	app.After = dumpMetrics
	app.Commands = []cli.Command{
		{
			Name:   "genesis",
			Usage:  "load mints, token accounts and metadata from a yaml fixture",
			Flags:  []cli.Flag{fileFlag},
			Action: genesisAction,
		},
		{
			Name:   "derive",
			Usage:  "print the pool id derived from a seed",
			Flags:  []cli.Flag{seedFlag},
			Action: deriveAction,
		},
		{
			Name:  "init-pool",
			Usage: "create a staking pool",
			Flags: []cli.Flag{
				seedFlag,
				ownerFlag,
				rewardMintFlag,
				rewardAccountFlag,
				rewardAmountFlag,
				periodFlag,
				withdrawableFlag,
				collectionFlag,
			},
			Action: initPoolAction,
		},
		{
			Name:   "stake",
			Usage:  "lock a unique asset in a pool",
			Flags:  []cli.Flag{poolFlag, ownerFlag, assetFlag, sourceFlag, custodyFlag},
			Action: stakeAction,
		},
		{
			Name:   "unstake",
			Usage:  "release a staked asset after its lock",
			Flags:  []cli.Flag{poolFlag, recordFlag, ownerFlag, custodyFlag, destFlag},
			Action: unstakeAction,
		},
		{
			Name:   "claim",
			Usage:  "claim the rewards of one stake",
			Flags:  []cli.Flag{poolFlag, recordFlag, ownerFlag, sourceFlag, destFlag},
			Action: claimAction,
		},
		{
			Name:   "claim-all",
			Usage:  "claim the rewards of every stake of an owner",
			Flags:  []cli.Flag{poolFlag, ownerFlag, destFlag},
			Action: claimAllAction,
		},
		{
			Name:   "pool",
			Usage:  "show a pool",
			Flags:  []cli.Flag{poolFlag},
			Action: poolAction,
		},
		{
			Name:   "stakes",
			Usage:  "list the stakes of an owner in a pool",
			Flags:  []cli.Flag{poolFlag, ownerFlag},
			Action: stakesAction,
		},
		{
			Name:   "account",
			Usage:  "show a token account",
			Flags:  []cli.Flag{accountFlag},
			Action: accountAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
