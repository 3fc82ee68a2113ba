// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import "math/big"

// Constants of the reward ledger.
const (
	// MaxBps is 100% expressed in basis points.
	MaxBps = 10000

	// DefaultRewardsDuration is the emission period applied to a reward asset when none is configured.
	DefaultRewardsDuration uint64 = 43200 // 12 hours

	// DefaultLockWindow is the holding time separating the two exit penalty tiers.
	DefaultLockWindow uint64 = 86400 // 1 day
)

// Precision scales the reward-per-token accumulator.
var Precision = big.NewInt(1e18)

// Ether returns n * 1e18.
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Precision)
}

// BigMin returns the smaller of x and y.
func BigMin(x, y *big.Int) *big.Int {
	if x.Cmp(y) < 0 {
		return x
	}
	return y
}
