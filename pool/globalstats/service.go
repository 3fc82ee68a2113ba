// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/solidity"
)

var (
	slotTotalSupply      = core.BytesToBytes32([]byte("total-supply"))
	slotPenaltyCollected = core.BytesToBytes32([]byte("penalty-collected"))
	slotNotified         = core.BytesToBytes32([]byte("notified"))
	slotPaid             = core.BytesToBytes32([]byte("paid"))
)

// Stats is a snapshot of the pool wide totals.
type Stats struct {
	TotalSupply      *big.Int
	PenaltyCollected *big.Int
}

// Service manages pool-wide totals.
// The total supply is the denominator of every reward accumulator.
type Service struct {
	totalSupply      *solidity.Uint256
	penaltyCollected *solidity.Uint256

	notified *solidity.Mapping[core.Address, *big.Int]
	paid     *solidity.Mapping[core.Address, *big.Int]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalSupply:      solidity.NewUint256(sctx, slotTotalSupply),
		penaltyCollected: solidity.NewUint256(sctx, slotPenaltyCollected),
		notified:         solidity.NewMapping[core.Address, *big.Int](sctx, slotNotified),
		paid:             solidity.NewMapping[core.Address, *big.Int](sctx, slotPaid),
	}
}

func (s *Service) TotalSupply() (*big.Int, error) {
	return s.totalSupply.Get()
}

func (s *Service) AddSupply(amount *big.Int) error {
	return s.totalSupply.Add(amount)
}

func (s *Service) SubSupply(amount *big.Int) error {
	return s.totalSupply.Sub(amount)
}

// AddPenalty records principal retained by the exit penalty.
func (s *Service) AddPenalty(amount *big.Int) error {
	return s.penaltyCollected.Add(amount)
}

func addTo(m *solidity.Mapping[core.Address, *big.Int], asset core.Address, amount *big.Int) error {
	v, err := m.Get(asset)
	if err != nil {
		return err
	}
	return m.Set(asset, v.Add(v, amount))
}

// AddNotified records reward handed to the pool for asset.
func (s *Service) AddNotified(asset core.Address, amount *big.Int) error {
	return errors.Wrap(addTo(s.notified, asset, amount), "add notified")
}

// AddPaid records reward paid out to participants for asset.
func (s *Service) AddPaid(asset core.Address, amount *big.Int) error {
	return errors.Wrap(addTo(s.paid, asset, amount), "add paid")
}

// AssetTotals returns the notified and paid totals of asset.
func (s *Service) AssetTotals(asset core.Address) (notified, paid *big.Int, err error) {
	if notified, err = s.notified.Get(asset); err != nil {
		return nil, nil, err
	}
	if paid, err = s.paid.Get(asset); err != nil {
		return nil, nil, err
	}
	return notified, paid, nil
}

// Get returns the current totals.
func (s *Service) Get() (*Stats, error) {
	supply, err := s.totalSupply.Get()
	if err != nil {
		return nil, err
	}
	penalty, err := s.penaltyCollected.Get()
	if err != nil {
		return nil, err
	}
	return &Stats{TotalSupply: supply, PenaltyCollected: penalty}, nil
}
