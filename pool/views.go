// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math"
	"math/big"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/params"
	"github.com/vechain/rewardpool/pool/account"
	"github.com/vechain/rewardpool/pool/globalstats"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/pool/reward"
)

// AssetState is the accrual state of a reward asset as seen at the time of the read.
type AssetState struct {
	Asset                core.Address
	RewardRate           *big.Int
	PeriodFinish         uint64
	LastUpdateTime       uint64
	RewardPerTokenStored *big.Int
	RewardPerToken       *big.Int
	Duration             uint64
	Notified             *big.Int
	Paid                 *big.Int
}

// Earned returns the reward participant could claim in asset right now.
func (p *Pool) Earned(participant, asset core.Address) (*big.Int, error) {
	return p.CalculatePotentialReward(asset, participant, 0)
}

// CalculatePotentialReward projects Earned secondsAhead into the future, assuming
// no call changes the pool in between. Horizons past the end of time saturate.
func (p *Pool) CalculatePotentialReward(asset, participant core.Address, secondsAhead uint64) (*big.Int, error) {
	var earned *big.Int
	err := p.view(func(now uint64) error {
		a, err := p.rewards.Get(asset)
		if err != nil {
			return err
		}
		supply, err := p.stats.TotalSupply()
		if err != nil {
			return err
		}
		at := uint64(math.MaxUint64)
		if secondsAhead <= math.MaxUint64-now {
			at = now + secondsAhead
		}
		rpt := a.RewardPerToken(supply, at)
		earned, err = p.accounts.Earned(participant, asset, rpt)
		return err
	})
	return earned, err
}

// BalanceOf returns the staked balance of participant.
func (p *Pool) BalanceOf(participant core.Address) (*big.Int, error) {
	var balance *big.Int
	err := p.view(func(uint64) error {
		var err error
		balance, err = p.accounts.BalanceOf(participant)
		return err
	})
	return balance, err
}

// Account returns the staked position of participant.
func (p *Pool) Account(participant core.Address) (*account.Account, error) {
	var acc *account.Account
	err := p.view(func(uint64) error {
		var err error
		acc, err = p.accounts.Get(participant)
		return err
	})
	return acc, err
}

func (p *Pool) TotalSupply() (*big.Int, error) {
	var supply *big.Int
	err := p.view(func(uint64) error {
		var err error
		supply, err = p.stats.TotalSupply()
		return err
	})
	return supply, err
}

// RewardAssets lists the registered reward assets in registration order.
func (p *Pool) RewardAssets() ([]core.Address, error) {
	var assets []core.Address
	err := p.view(func(uint64) error {
		var err error
		assets, err = p.rewards.Assets()
		return err
	})
	return assets, err
}

// RewardAssetCount returns the number of registered reward assets.
func (p *Pool) RewardAssetCount() (uint64, error) {
	var n uint64
	err := p.view(func(uint64) error {
		var err error
		n, err = p.rewards.Count()
		return err
	})
	return n, err
}

// RewardAssetAt returns the i-th registered reward asset.
func (p *Pool) RewardAssetAt(i uint64) (core.Address, error) {
	var asset core.Address
	err := p.view(func(uint64) error {
		n, err := p.rewards.Count()
		if err != nil {
			return err
		}
		if i >= n {
			return reverts.Newf(reverts.KindUnknownAsset, "no reward asset at index %d", i)
		}
		asset, err = p.rewards.At(i)
		return err
	})
	return asset, err
}

func (p *Pool) AssetState(asset core.Address) (*AssetState, error) {
	var st *AssetState
	err := p.view(func(now uint64) error {
		a, err := p.rewards.Get(asset)
		if err != nil {
			return err
		}
		supply, err := p.stats.TotalSupply()
		if err != nil {
			return err
		}
		notified, paid, err := p.stats.AssetTotals(asset)
		if err != nil {
			return err
		}
		st = &AssetState{
			Asset:                asset,
			RewardRate:           a.RewardRate,
			PeriodFinish:         a.PeriodFinish,
			LastUpdateTime:       a.LastUpdateTime,
			RewardPerTokenStored: a.RewardPerTokenStored,
			RewardPerToken:       a.RewardPerToken(supply, now),
			Duration:             a.Duration,
			Notified:             notified,
			Paid:                 paid,
		}
		return nil
	})
	return st, err
}

func (p *Pool) asset(asset core.Address) (*reward.Asset, uint64, error) {
	var (
		a   *reward.Asset
		now uint64
	)
	err := p.view(func(n uint64) error {
		var err error
		a, err = p.rewards.Get(asset)
		now = n
		return err
	})
	return a, now, err
}

// LastTimeRewardApplicable returns min(now, periodFinish) of asset.
func (p *Pool) LastTimeRewardApplicable(asset core.Address) (uint64, error) {
	a, now, err := p.asset(asset)
	if err != nil {
		return 0, err
	}
	return a.LastTimeRewardApplicable(now), nil
}

// GetRewardForDuration returns what asset emits over a full period at its current rate.
func (p *Pool) GetRewardForDuration(asset core.Address) (*big.Int, error) {
	a, _, err := p.asset(asset)
	if err != nil {
		return nil, err
	}
	return a.RewardForDuration(), nil
}

func (p *Pool) Paused() (bool, error) {
	var paused bool
	err := p.view(func(uint64) error {
		var err error
		paused, err = p.params.GetBool(params.KeyPaused)
		return err
	})
	return paused, err
}

// Stats returns the pool wide totals.
func (p *Pool) Stats() (*globalstats.Stats, error) {
	var s *globalstats.Stats
	err := p.view(func(uint64) error {
		var err error
		s, err = p.stats.Get()
		return err
	})
	return s, err
}

func (p *Pool) address(key core.Bytes32) (core.Address, error) {
	var addr core.Address
	err := p.view(func(uint64) error {
		var err error
		addr, err = p.params.GetAddress(key)
		return err
	})
	return addr, err
}

func (p *Pool) Owner() (core.Address, error) {
	return p.address(params.KeyOwner)
}

func (p *Pool) RewardDistributor() (core.Address, error) {
	return p.address(params.KeyRewardDistributor)
}

func (p *Pool) PenaltySink() (core.Address, error) {
	return p.address(params.KeyPenaltySink)
}

// IsExempt tells whether participant skips the enrollment lock window.
func (p *Pool) IsExempt(participant core.Address) (bool, error) {
	var exempt bool
	err := p.view(func(uint64) error {
		var err error
		exempt, err = p.isExempt(participant)
		return err
	})
	return exempt, err
}
