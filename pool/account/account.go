// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"math/big"
)

// Account is the staked position of a participant.
type Account struct {
	Balance       *big.Int
	LastStakeTime uint64
}

func (a *Account) balance() *big.Int {
	if a.Balance == nil {
		return new(big.Int)
	}
	return a.Balance
}

// IsEmpty returns whether the participant holds no stake.
func (a *Account) IsEmpty() bool {
	return a.balance().Sign() == 0
}

// Checkpoint is the per asset reward bookkeeping of a participant.
type Checkpoint struct {
	RewardPerTokenPaid *big.Int
	Accrued            *big.Int
}

func (c *Checkpoint) paid() *big.Int {
	if c.RewardPerTokenPaid == nil {
		return new(big.Int)
	}
	return c.RewardPerTokenPaid
}

func (c *Checkpoint) accrued() *big.Int {
	if c.Accrued == nil {
		return new(big.Int)
	}
	return c.Accrued
}
