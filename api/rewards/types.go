// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
)

type Pool struct {
	Address           core.Address          `json:"address"`
	StakingAsset      core.Address          `json:"stakingAsset"`
	TotalSupply       *math.HexOrDecimal256 `json:"totalSupply"`
	PenaltyCollected  *math.HexOrDecimal256 `json:"penaltyCollected"`
	Paused            bool                  `json:"paused"`
	Owner             core.Address          `json:"owner"`
	RewardDistributor core.Address          `json:"rewardDistributor"`
	PenaltySink       core.Address          `json:"penaltySink"`
	RewardAssets      []core.Address        `json:"rewardAssets"`
}

type Asset struct {
	Asset                    core.Address          `json:"asset"`
	RewardRate               *math.HexOrDecimal256 `json:"rewardRate"`
	PeriodFinish             uint64                `json:"periodFinish"`
	LastUpdateTime           uint64                `json:"lastUpdateTime"`
	LastTimeRewardApplicable uint64                `json:"lastTimeRewardApplicable"`
	RewardPerToken           *math.HexOrDecimal256 `json:"rewardPerToken"`
	RewardForDuration        *math.HexOrDecimal256 `json:"rewardForDuration"`
	Duration                 uint64                `json:"duration"`
	Notified                 *math.HexOrDecimal256 `json:"notified"`
	Paid                     *math.HexOrDecimal256 `json:"paid"`
}

func convertAsset(s *pool.AssetState, applicable uint64, forDuration *math.HexOrDecimal256) *Asset {
	return &Asset{
		Asset:                    s.Asset,
		RewardRate:               (*math.HexOrDecimal256)(s.RewardRate),
		PeriodFinish:             s.PeriodFinish,
		LastUpdateTime:           s.LastUpdateTime,
		LastTimeRewardApplicable: applicable,
		RewardPerToken:           (*math.HexOrDecimal256)(s.RewardPerToken),
		RewardForDuration:        forDuration,
		Duration:                 s.Duration,
		Notified:                 (*math.HexOrDecimal256)(s.Notified),
		Paid:                     (*math.HexOrDecimal256)(s.Paid),
	}
}
