// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock supplies the logical time, in unix seconds, at which stake transitions are evaluated.
package clock

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"

	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "clock")

// Source returns the current time in unix seconds.
type Source interface {
	Now() uint64
}

// Clock adapts a clockwork clock into a Source.
type Clock struct {
	clock clockwork.Clock
}

func New(c clockwork.Clock) *Clock {
	return &Clock{clock: c}
}

// System returns a Source backed by the host clock.
func System() *Clock {
	return New(clockwork.NewRealClock())
}

// Now truncates to whole seconds. Times before the unix epoch read as zero.
func (c *Clock) Now() uint64 {
	sec := c.clock.Now().Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}

// Fixed is a Source frozen at a given unix second, used to replay operations.
type Fixed uint64

func (f Fixed) Now() uint64 { return uint64(f) }

var queryNTP = ntp.Query

// CheckOffset queries server and warns when the host clock drifts beyond tolerance.
func CheckOffset(server string, tolerance time.Duration) (time.Duration, error) {
	resp, err := queryNTP(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return 0, err
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > tolerance {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
	return resp.ClockOffset, nil
}
