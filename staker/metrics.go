// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/vechain/stakepool/metrics"

var (
	metricTransitions  = metrics.LazyLoadCounterVec("transitions_count", []string{"op", "result"})
	metricRewardPaid   = metrics.LazyLoadCounter("reward_paid")
	metricStakedAssets = metrics.LazyLoadGauge("staked_assets")
	metricInstallments = metrics.LazyLoadHistogram("claim_installments", metrics.BucketInstallments)
)
