// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/pool/investment"
)

// Account is the staked position of a participant.
type Account struct {
	Address       core.Address          `json:"address"`
	Balance       *math.HexOrDecimal256 `json:"balance"`
	LastStakeTime uint64                `json:"lastStakeTime"`
	Earned        []AssetAmount         `json:"earned"`
	Enrollment    *Enrollment           `json:"enrollment"`
}

type AssetAmount struct {
	Asset  core.Address          `json:"asset"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Enrollment struct {
	YieldRedirectBps uint64                  `json:"yieldRedirectBps"`
	Allocations      []investment.Allocation `json:"allocations"`
	EnrolledAt       uint64                  `json:"enrolledAt"`
}

// AmountRequest is the body of stake and withdraw calls. Amount is decimal or 0x hex.
type AmountRequest struct {
	Amount string `json:"amount"`
}

type Withdrawal struct {
	Amount   *math.HexOrDecimal256 `json:"amount"`
	Payout   *math.HexOrDecimal256 `json:"payout"`
	Retained *math.HexOrDecimal256 `json:"retained"`
}

type ExitResult struct {
	Rewards    []AssetAmount `json:"rewards"`
	Withdrawal *Withdrawal   `json:"withdrawal"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func convertPayments(paid []pool.Payment) []AssetAmount {
	out := make([]AssetAmount, 0, len(paid))
	for _, p := range paid {
		out = append(out, AssetAmount{Asset: p.Asset, Amount: hexOrDecimal(p.Amount)})
	}
	return out
}

func convertWithdrawal(w *pool.Withdrawal) *Withdrawal {
	if w == nil {
		return nil
	}
	return &Withdrawal{
		Amount:   hexOrDecimal(w.Amount),
		Payout:   hexOrDecimal(w.Payout),
		Retained: hexOrDecimal(w.Retained),
	}
}

func convertEnrollment(e *investment.Enrollment) *Enrollment {
	allocations := e.Allocations
	if allocations == nil {
		allocations = []investment.Allocation{}
	}
	return &Enrollment{
		YieldRedirectBps: e.YieldRedirectBps,
		Allocations:      allocations,
		EnrolledAt:       e.EnrolledAt,
	}
}
