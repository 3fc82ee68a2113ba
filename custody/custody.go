// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody moves assets between participants and the pool.
package custody

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/solidity"
)

var (
	logger = log.WithContext("pkg", "custody")

	slotBalances = solidity.Slot("custody-balances")
	slotSupply   = solidity.Slot("custody-supply")
)

// Custody holds the assets of one holder, the pool, and moves them in and out.
type Custody interface {
	// TransferIn moves amount of asset from an external account into the holder.
	TransferIn(asset, from core.Address, amount *big.Int) error
	// TransferOut moves amount of asset from the holder to an external account.
	TransferOut(asset, to core.Address, amount *big.Int) error
	BalanceOf(asset, holder core.Address) (*big.Int, error)
}

// Ledger is a Custody keeping balances in contract storage. When it shares the
// pool's state, reverting the pool reverts the transfers as well.
type Ledger struct {
	holder   core.Address
	balances *solidity.Mapping[core.Bytes32, *big.Int]
	sctx     *solidity.Context
}

var _ Custody = (*Ledger)(nil)

// NewLedger creates a ledger whose TransferIn/TransferOut move funds to and from holder.
func NewLedger(sctx *solidity.Context, holder core.Address) *Ledger {
	return &Ledger{
		holder:   holder,
		balances: solidity.NewMapping[core.Bytes32, *big.Int](sctx, slotBalances),
		sctx:     sctx,
	}
}

func balanceKey(asset, holder core.Address) core.Bytes32 {
	return core.Blake2b(asset.Bytes(), holder.Bytes())
}

func (l *Ledger) supply(asset core.Address) *solidity.Uint256 {
	return solidity.NewUint256(l.sctx, core.Blake2b(slotSupply.Bytes(), asset.Bytes()))
}

func (l *Ledger) BalanceOf(asset, holder core.Address) (*big.Int, error) {
	bal, err := l.balances.Get(balanceKey(asset, holder))
	if err != nil {
		return nil, errors.Wrap(err, "get custody balance")
	}
	return bal, nil
}

// TotalSupply returns the amount of asset minted so far.
func (l *Ledger) TotalSupply(asset core.Address) (*big.Int, error) {
	return l.supply(asset).Get()
}

// Mint credits amount of asset to holder out of thin air.
func (l *Ledger) Mint(asset, holder core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Newf(reverts.KindInvalidAmount, "mint of negative amount %s", amount)
	}
	bal, err := l.BalanceOf(asset, holder)
	if err != nil {
		return err
	}
	if err := l.balances.Set(balanceKey(asset, holder), bal.Add(bal, amount)); err != nil {
		return errors.Wrap(err, "set custody balance")
	}
	logger.Trace("minted", "asset", asset, "holder", holder, "amount", amount)
	return l.supply(asset).Add(amount)
}

// Transfer moves amount of asset between two accounts.
func (l *Ledger) Transfer(asset, from, to core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Newf(reverts.KindInvalidAmount, "transfer of negative amount %s", amount)
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	fromBal, err := l.BalanceOf(asset, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.Newf(reverts.KindInsufficientBalance, "%s holds %s of %s, needs %s", from, fromBal, asset, amount)
	}
	toBal, err := l.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	if err := l.balances.Set(balanceKey(asset, from), fromBal.Sub(fromBal, amount)); err != nil {
		return errors.Wrap(err, "set custody balance")
	}
	if err := l.balances.Set(balanceKey(asset, to), toBal.Add(toBal, amount)); err != nil {
		return errors.Wrap(err, "set custody balance")
	}
	return nil
}

func (l *Ledger) TransferIn(asset, from core.Address, amount *big.Int) error {
	return l.Transfer(asset, from, l.holder, amount)
}

func (l *Ledger) TransferOut(asset, to core.Address, amount *big.Int) error {
	return l.Transfer(asset, l.holder, to, amount)
}
