// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package penalty implements the two-tier exit penalty applied to withdrawn principal.
package penalty

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
)

// Policy maps the time since the last stake to the fraction of principal paid out.
// Below LockWindow the payout is MinPayoutBps, from LockWindow on it is MaturePayoutBps.
// There is no interpolation between the two tiers.
type Policy struct {
	LockWindow      uint64 `yaml:"lock-window"`
	MinPayoutBps    uint64 `yaml:"min-payout-bps"`
	MaturePayoutBps uint64 `yaml:"mature-payout-bps"`
}

// Default returns the 24h, 50% / 90% policy.
func Default() Policy {
	return Policy{
		LockWindow:      core.DefaultLockWindow,
		MinPayoutBps:    5000,
		MaturePayoutBps: 9000,
	}
}

func (p Policy) Validate() error {
	if p.MaturePayoutBps > core.MaxBps {
		return errors.Errorf("mature payout %d bps exceeds %d", p.MaturePayoutBps, core.MaxBps)
	}
	if p.MinPayoutBps > p.MaturePayoutBps {
		return errors.Errorf("min payout %d bps exceeds mature payout %d bps", p.MinPayoutBps, p.MaturePayoutBps)
	}
	return nil
}

// PayoutBps returns the payout fraction, in basis points, for the given holding time.
func (p Policy) PayoutBps(elapsed uint64) uint64 {
	if elapsed < p.LockWindow {
		return p.MinPayoutBps
	}
	return p.MaturePayoutBps
}

// Split divides amount into the participant payout and the part retained for the sink.
// payout + retained == amount always holds.
func (p Policy) Split(amount *big.Int, elapsed uint64) (payout, retained *big.Int) {
	payout = new(big.Int).Mul(amount, new(big.Int).SetUint64(p.PayoutBps(elapsed)))
	payout.Div(payout, big.NewInt(core.MaxBps))
	retained = new(big.Int).Sub(amount, payout)
	return payout, retained
}
