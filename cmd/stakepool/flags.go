// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger and pool database",
	}
	programIDFlag = cli.StringFlag{
		Name:  "program-id",
		Value: defaultProgramID.String(),
		Usage: "program identity pool authorities are derived under",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "dump metrics to stderr on exit",
	}
	ntpCheckFlag = cli.BoolFlag{
		Name:  "ntp-check",
		Usage: "warn when the host clock drifts from pool.ntp.org",
	}
	nowFlag = cli.Uint64Flag{
		Name:  "now",
		Usage: "evaluate transitions at this unix time instead of the host clock",
	}
	poolCacheFlag = cli.IntFlag{
		Name:   "pool-cache",
		Value:  256,
		Hidden: true,
		Usage:  "number of pools kept in memory",
	}

	fileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "path of the yaml ledger fixture",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed",
		Usage: "random seed the pool authority is derived from",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "identity performing the operation",
	}
	rewardMintFlag = cli.StringFlag{
		Name:  "reward-mint",
		Usage: "mint of the reward token",
	}
	rewardAccountFlag = cli.StringFlag{
		Name:  "reward-account",
		Usage: "reserve account holding the reward budget",
	}
	rewardAmountFlag = cli.Uint64Flag{
		Name:  "reward-amount",
		Usage: "reward paid per period and stake",
	}
	periodFlag = cli.Uint64Flag{
		Name:  "period",
		Value: 86400,
		Usage: "seconds in one reward period",
	}
	withdrawableFlag = cli.UintFlag{
		Name:  "withdrawable",
		Usage: "number of periods a stake may claim (0-255)",
	}
	collectionFlag = cli.StringFlag{
		Name:  "collection",
		Usage: "collection symbol accepted by the pool",
	}
	poolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "pool id",
	}
	recordFlag = cli.StringFlag{
		Name:  "record",
		Usage: "stake record id",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "mint of the unique asset",
	}
	sourceFlag = cli.StringFlag{
		Name:  "source",
		Usage: "source token account",
	}
	custodyFlag = cli.StringFlag{
		Name:  "custody",
		Usage: "custody account held by the pool",
	}
	destFlag = cli.StringFlag{
		Name:  "dest",
		Usage: "destination token account",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "token account id",
	}
)
