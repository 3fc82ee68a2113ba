// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/rewardpool/metrics"
)

var (
	metricCalls        = metrics.LazyLoadCounterVec("pool_calls_count", []string{"op", "status"})
	metricRewardAssets = metrics.LazyLoadGauge("pool_reward_assets_count")
	metricEnrolled     = metrics.LazyLoadGauge("pool_yield_redirect_participants_count")
	metricPenalty      = metrics.LazyLoadCounter("pool_penalty_events_count")
)
