// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/vechain/rewardpool/core"
)

// Asset is the accrual state of one reward asset.
type Asset struct {
	RewardRate           *big.Int // amount per second
	PeriodFinish         uint64
	LastUpdateTime       uint64
	RewardPerTokenStored *big.Int // scaled by core.Precision
	Duration             uint64
}

func newAsset(duration uint64) *Asset {
	return &Asset{
		RewardRate:           new(big.Int),
		RewardPerTokenStored: new(big.Int),
		Duration:             duration,
	}
}

// IsEmpty returns whether the asset was never registered. Registered assets always have a duration.
func (a *Asset) IsEmpty() bool {
	return a.Duration == 0
}

func (a *Asset) rate() *big.Int {
	if a.RewardRate == nil {
		return new(big.Int)
	}
	return a.RewardRate
}

func (a *Asset) stored() *big.Int {
	if a.RewardPerTokenStored == nil {
		return new(big.Int)
	}
	return a.RewardPerTokenStored
}

// LastTimeRewardApplicable returns min(now, periodFinish).
func (a *Asset) LastTimeRewardApplicable(now uint64) uint64 {
	return min(now, a.PeriodFinish)
}

// RewardPerToken returns the accumulator value at now without changing the asset.
func (a *Asset) RewardPerToken(totalSupply *big.Int, now uint64) *big.Int {
	rpt := new(big.Int).Set(a.stored())
	if totalSupply.Sign() == 0 {
		return rpt
	}
	applicable := a.LastTimeRewardApplicable(now)
	if applicable <= a.LastUpdateTime {
		return rpt
	}
	delta := new(big.Int).SetUint64(applicable - a.LastUpdateTime)
	delta.Mul(delta, a.rate())
	delta.Mul(delta, core.Precision)
	delta.Div(delta, totalSupply)
	return rpt.Add(rpt, delta)
}

// Settle folds the accrual elapsed since the last update into the accumulator.
func (a *Asset) Settle(totalSupply *big.Int, now uint64) {
	a.RewardPerTokenStored = a.RewardPerToken(totalSupply, now)
	if applicable := a.LastTimeRewardApplicable(now); applicable > a.LastUpdateTime {
		a.LastUpdateTime = applicable
	}
}

// RewardForDuration returns the amount emitted over one full period at the current rate.
func (a *Asset) RewardForDuration() *big.Int {
	return new(big.Int).Mul(a.rate(), new(big.Int).SetUint64(a.Duration))
}

// NextRate returns the rate a notification of amount at now would set.
// Any undistributed leftover of a running period is carried into the new one.
func (a *Asset) NextRate(amount *big.Int, now uint64) *big.Int {
	total := new(big.Int).Set(amount)
	if now < a.PeriodFinish {
		leftover := new(big.Int).SetUint64(a.PeriodFinish - now)
		total.Add(total, leftover.Mul(leftover, a.rate()))
	}
	return total.Div(total, new(big.Int).SetUint64(a.Duration))
}

// Earned returns balance * (rewardPerToken - paid) / precision + accrued.
func Earned(balance, rewardPerToken, paid, accrued *big.Int) *big.Int {
	delta := new(big.Int).Sub(rewardPerToken, paid)
	delta.Mul(delta, balance)
	delta.Div(delta, core.Precision)
	return delta.Add(delta, accrued)
}
