// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/solidity"
)

var (
	slotAssets    = core.BytesToBytes32([]byte("reward-assets"))
	slotAssetList = core.BytesToBytes32([]byte("reward-asset-list"))
)

// Service keeps the accumulators of all registered reward assets.
type Service struct {
	assets *solidity.Mapping[core.Address, *Asset]
	list   *solidity.Set[core.Address]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		assets: solidity.NewMapping[core.Address, *Asset](sctx, slotAssets),
		list:   solidity.NewSet[core.Address](sctx, slotAssetList),
	}
}

// Register adds a reward asset with the given emission period.
func (s *Service) Register(asset core.Address, duration uint64) error {
	if duration == 0 {
		return reverts.Newf(reverts.KindInvalidAmount, "reward duration must be positive")
	}
	existing, err := s.assets.Get(asset)
	if err != nil {
		return errors.Wrap(err, "get reward asset")
	}
	if !existing.IsEmpty() {
		return reverts.Newf(reverts.KindAssetAlreadyRegistered, "reward asset %v already registered", asset)
	}
	if _, err := s.list.Add(asset); err != nil {
		return errors.Wrap(err, "add reward asset")
	}
	return s.assets.Set(asset, newAsset(duration))
}

// IsRegistered returns whether asset accepts notifications.
func (s *Service) IsRegistered(asset core.Address) (bool, error) {
	return s.list.Contains(asset)
}

// Count returns the number of registered reward assets.
func (s *Service) Count() (uint64, error) {
	return s.list.Len()
}

// At returns the i-th registered reward asset, in registration order.
func (s *Service) At(i uint64) (core.Address, error) {
	return s.list.At(i)
}

// Assets lists all registered reward assets.
func (s *Service) Assets() ([]core.Address, error) {
	return s.list.Members()
}

// Get returns the state of a registered asset, or ErrUnknownAsset.
func (s *Service) Get(asset core.Address) (*Asset, error) {
	a, err := s.assets.Get(asset)
	if err != nil {
		return nil, errors.Wrap(err, "get reward asset")
	}
	if a.IsEmpty() {
		return nil, reverts.Newf(reverts.KindUnknownAsset, "unknown reward asset %s", asset)
	}
	return a, nil
}

// Settle brings the asset accumulator up to now and stores it.
func (s *Service) Settle(asset core.Address, totalSupply *big.Int, now uint64) (*Asset, error) {
	a, err := s.Get(asset)
	if err != nil {
		return nil, err
	}
	a.Settle(totalSupply, now)
	if err := s.assets.Set(asset, a); err != nil {
		return nil, errors.Wrap(err, "set reward asset")
	}
	return a, nil
}

// Notify starts a new emission period for amount. available is the balance of
// the asset the pool can promise; the new rate must be deliverable from it.
// A zero amount only settles.
func (s *Service) Notify(asset core.Address, amount, available, totalSupply *big.Int, now uint64) (*Asset, error) {
	if amount.Sign() < 0 {
		return nil, reverts.Newf(reverts.KindInvalidAmount, "negative reward amount")
	}
	a, err := s.Settle(asset, totalSupply, now)
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return a, nil
	}

	rate := a.NextRate(amount, now)
	promised := new(big.Int).Mul(rate, new(big.Int).SetUint64(a.Duration))
	if promised.Cmp(available) > 0 {
		return nil, reverts.Newf(reverts.KindRewardTooHigh, "reward too high: %s promised, %s available", promised, available)
	}

	a.RewardRate = rate
	a.LastUpdateTime = now
	a.PeriodFinish = now + a.Duration
	if err := s.assets.Set(asset, a); err != nil {
		return nil, errors.Wrap(err, "set reward asset")
	}
	return a, nil
}

// SetDuration changes the emission period. It is only allowed once the running period finished.
func (s *Service) SetDuration(asset core.Address, duration uint64, now uint64) error {
	if duration == 0 {
		return reverts.Newf(reverts.KindInvalidAmount, "reward duration must be positive")
	}
	a, err := s.Get(asset)
	if err != nil {
		return err
	}
	if now < a.PeriodFinish {
		return reverts.Newf(reverts.KindDurationLocked, "reward period of %s finishes at %d", asset, a.PeriodFinish)
	}
	a.Duration = duration
	return s.assets.Set(asset, a)
}
