// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/params"
	"github.com/vechain/rewardpool/pool/reverts"
)

// Withdrawal is the outcome of a withdraw.
type Withdrawal struct {
	Amount   *big.Int // principal removed from the balance
	Payout   *big.Int // sent to the participant
	Retained *big.Int // sent to the penalty sink
}

// Payment is a reward paid out in one asset.
type Payment struct {
	Asset  core.Address
	Amount *big.Int
}

// Stake pulls amount of the staking asset from caller into the pool and restarts
// the caller's exit penalty clock.
func (p *Pool) Stake(caller core.Address, amount *big.Int) error {
	logger.Debug("staking", "participant", caller, "amount", amount)

	return p.run("stake", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Newf(reverts.KindInvalidAmount, "stake amount must be positive")
		}
		if err := p.settle(caller, now); err != nil {
			return err
		}

		before, err := p.custody.BalanceOf(p.cfg.StakingAsset, p.addr)
		if err != nil {
			return err
		}
		if err := p.custody.TransferIn(p.cfg.StakingAsset, caller, amount); err != nil {
			return err
		}
		after, err := p.custody.BalanceOf(p.cfg.StakingAsset, p.addr)
		if err != nil {
			return err
		}
		if received := new(big.Int).Sub(after, before); received.Cmp(amount) < 0 {
			return reverts.Newf(reverts.KindTransferShortfall, "received %s of %s staked", received, amount)
		}

		oldBalance, newBalance, err := p.accounts.AddStake(caller, amount, now)
		if err != nil {
			return err
		}
		if err := p.stats.AddSupply(amount); err != nil {
			return err
		}
		exempt, err := p.isExempt(caller)
		if err != nil {
			return err
		}
		if err := p.registry.OnBalanceChange(caller, oldBalance, newBalance, now, exempt); err != nil {
			return err
		}

		logger.Info("staked", "participant", caller, "amount", amount, "balance", newBalance)
		return nil
	})
}

// Withdraw removes amount from the caller's balance. The penalty policy decides which
// part is paid to the caller; the rest goes to the penalty sink.
func (p *Pool) Withdraw(caller core.Address, amount *big.Int) (*Withdrawal, error) {
	logger.Debug("withdrawing", "participant", caller, "amount", amount)

	var w *Withdrawal
	err := p.run("withdraw", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		var err error
		w, err = p.withdraw(caller, amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Pool) withdraw(caller core.Address, amount *big.Int, now uint64) (*Withdrawal, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.Newf(reverts.KindInvalidAmount, "withdraw amount must be positive")
	}
	balance, err := p.accounts.BalanceOf(caller)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(balance) > 0 {
		return nil, reverts.Newf(reverts.KindInsufficientBalance, "withdraw %s exceeds balance %s", amount, balance)
	}
	if err := p.settle(caller, now); err != nil {
		return nil, err
	}

	acc, oldBalance, err := p.accounts.SubStake(caller, amount)
	if err != nil {
		return nil, err
	}
	if err := p.stats.SubSupply(amount); err != nil {
		return nil, err
	}
	exempt, err := p.isExempt(caller)
	if err != nil {
		return nil, err
	}
	if err := p.registry.OnBalanceChange(caller, oldBalance, acc.Balance, now, exempt); err != nil {
		return nil, err
	}

	var elapsed uint64
	if now > acc.LastStakeTime {
		elapsed = now - acc.LastStakeTime
	}
	payout, retained := p.cfg.Penalty.Split(amount, elapsed)

	if err := p.custody.TransferOut(p.cfg.StakingAsset, caller, payout); err != nil {
		return nil, err
	}
	if retained.Sign() > 0 {
		sink, err := p.params.GetAddress(params.KeyPenaltySink)
		if err != nil {
			return nil, err
		}
		if err := p.custody.TransferOut(p.cfg.StakingAsset, sink, retained); err != nil {
			return nil, err
		}
		if err := p.stats.AddPenalty(retained); err != nil {
			return nil, err
		}
		metricPenalty().Add(1)
	}

	logger.Info("withdrew", "participant", caller, "amount", amount, "payout", payout, "retained", retained)
	return &Withdrawal{Amount: new(big.Int).Set(amount), Payout: payout, Retained: retained}, nil
}

// GetReward pays the caller everything accrued in every reward asset.
// Nothing accrued is not an error.
func (p *Pool) GetReward(caller core.Address) ([]Payment, error) {
	logger.Debug("claiming rewards", "participant", caller)

	var paid []Payment
	err := p.run("claim", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		var err error
		paid, err = p.getReward(caller, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// Claim is an alias of GetReward.
func (p *Pool) Claim(caller core.Address) ([]Payment, error) {
	return p.GetReward(caller)
}

func (p *Pool) getReward(caller core.Address, now uint64) ([]Payment, error) {
	if err := p.settle(caller, now); err != nil {
		return nil, err
	}
	assets, err := p.rewards.Assets()
	if err != nil {
		return nil, err
	}
	var paid []Payment
	for _, asset := range assets {
		amount, err := p.accounts.TakeAccrued(caller, asset)
		if err != nil {
			return nil, err
		}
		if amount.Sign() == 0 {
			continue
		}
		if err := p.custody.TransferOut(asset, caller, amount); err != nil {
			return nil, err
		}
		if err := p.stats.AddPaid(asset, amount); err != nil {
			return nil, err
		}
		paid = append(paid, Payment{Asset: asset, Amount: amount})
		logger.Info("reward paid", "participant", caller, "asset", asset, "amount", amount)
	}
	return paid, nil
}

// Exit claims all rewards and withdraws the whole balance.
func (p *Pool) Exit(caller core.Address) ([]Payment, *Withdrawal, error) {
	logger.Debug("exiting", "participant", caller)

	var (
		paid []Payment
		w    *Withdrawal
	)
	err := p.run("exit", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		balance, err := p.accounts.BalanceOf(caller)
		if err != nil {
			return err
		}
		if balance.Sign() == 0 {
			return reverts.Newf(reverts.KindNothingToWithdraw, "%s has nothing staked", caller)
		}
		if paid, err = p.getReward(caller, now); err != nil {
			return err
		}
		w, err = p.withdraw(caller, balance, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return paid, w, nil
}
