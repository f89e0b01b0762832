// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/assets/tokenledger"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/staker"
)

var output io.Writer = os.Stdout

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".stakepool")
	}
	return ".stakepool"
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(int(ctx.GlobalUint64(verbosityFlag.Name))))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func initMetrics(ctx *cli.Context) {
	if ctx.GlobalBool(metricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
}

func dumpMetrics(ctx *cli.Context) error {
	if !ctx.GlobalBool(metricsFlag.Name) {
		return nil
	}
	return metrics.WriteText(os.Stderr)
}

func makeClock(ctx *cli.Context) clock.Source {
	if ctx.GlobalBool(ntpCheckFlag.Name) {
		// a failed query is logged and otherwise ignored
		_, _ = clock.CheckOffset("pool.ntp.org", 5*time.Second)
	}
	if ctx.GlobalIsSet(nowFlag.Name) {
		return clock.Fixed(ctx.GlobalUint64(nowFlag.Name))
	}
	return clock.System()
}

func openDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dir := ctx.GlobalString(dataDirFlag.Name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              16,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

func tokenBackend(db kv.Store) (assets.Ledger, assets.MetadataProvider) {
	l := tokenledger.New(db)
	return l, l
}

// withStaker opens the database, runs fn on an engine over it and closes the database.
func withStaker(ctx *cli.Context, fn func(s *staker.Staker) error) error {
	programID, err := acct.ParseID(ctx.GlobalString(programIDFlag.Name))
	if err != nil {
		return errors.Wrap(err, "--"+programIDFlag.Name)
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "err", err)
		}
	}()

	s, err := staker.New(staker.Config{
		ProgramID:     programID,
		PoolCacheSize: ctx.GlobalInt(poolCacheFlag.Name),
	}, db, tokenBackend, makeClock(ctx))
	if err != nil {
		return err
	}
	return fn(s)
}

func readID(ctx *cli.Context, flag cli.StringFlag) (acct.ID, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return acct.ID{}, errors.Errorf("missing --%s", flag.Name)
	}
	id, err := acct.ParseID(s)
	if err != nil {
		return acct.ID{}, errors.Wrapf(err, "--%s", flag.Name)
	}
	return id, nil
}

// readIDs reads the flags in order, failing on the first missing or malformed one.
func readIDs(ctx *cli.Context, flags ...cli.StringFlag) ([]acct.ID, error) {
	ids := make([]acct.ID, 0, len(flags))
	for _, f := range flags {
		id, err := readID(ctx, f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
