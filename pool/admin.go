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

type minter interface {
	Mint(asset, holder core.Address, amount *big.Int) error
}

// NotifyRewardAmount starts a new emission period of amount for asset. The pool must
// already hold enough of asset to deliver the resulting rate over the whole period.
// Only the reward distributor may call it.
func (p *Pool) NotifyRewardAmount(caller, asset core.Address, amount *big.Int) error {
	logger.Debug("notifying reward", "asset", asset, "amount", amount)

	return p.run("notify", func(now uint64) error {
		if err := p.requireRole(caller, params.KeyRewardDistributor, "reward distributor"); err != nil {
			return err
		}
		return p.notify(asset, amount, now)
	})
}

// FundAndNotify transfers amount of asset from the distributor into the pool and
// notifies it in the same call.
func (p *Pool) FundAndNotify(caller, asset core.Address, amount *big.Int) error {
	logger.Debug("funding reward", "asset", asset, "amount", amount)

	return p.run("fund_notify", func(now uint64) error {
		if err := p.requireRole(caller, params.KeyRewardDistributor, "reward distributor"); err != nil {
			return err
		}
		if amount == nil || amount.Sign() < 0 {
			return reverts.Newf(reverts.KindInvalidAmount, "negative reward amount")
		}
		if err := p.custody.TransferIn(asset, caller, amount); err != nil {
			return err
		}
		return p.notify(asset, amount, now)
	})
}

func (p *Pool) notify(asset core.Address, amount *big.Int, now uint64) error {
	if amount == nil {
		return reverts.Newf(reverts.KindInvalidAmount, "missing reward amount")
	}
	// accumulators of all assets move to now, not only the notified one
	if err := p.settle(core.Address{}, now); err != nil {
		return err
	}
	supply, err := p.stats.TotalSupply()
	if err != nil {
		return err
	}
	available, err := p.available(asset)
	if err != nil {
		return err
	}
	a, err := p.rewards.Notify(asset, amount, available, supply, now)
	if err != nil {
		return err
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := p.stats.AddNotified(asset, amount); err != nil {
		return err
	}
	logger.Info("reward notified", "asset", asset, "amount", amount, "rate", a.RewardRate, "periodFinish", a.PeriodFinish)
	return nil
}

// Mint credits amount of asset to holder, when the custody can mint.
// Owner and reward distributor only.
func (p *Pool) Mint(caller, asset, holder core.Address, amount *big.Int) error {
	return p.run("mint", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			if err := p.requireRole(caller, params.KeyRewardDistributor, "reward distributor"); err != nil {
				return err
			}
		}
		m, ok := p.custody.(minter)
		if !ok {
			return reverts.Newf(reverts.KindUnsupported, "custody does not support minting")
		}
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Newf(reverts.KindInvalidAmount, "mint amount must be positive")
		}
		return m.Mint(asset, holder, amount)
	})
}

// SetRewardsDuration changes the emission period of asset once its running period finished.
func (p *Pool) SetRewardsDuration(caller, asset core.Address, duration uint64) error {
	logger.Debug("setting rewards duration", "asset", asset, "duration", duration)

	return p.run("set_duration", func(now uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if err := p.rewards.SetDuration(asset, duration, now); err != nil {
			return err
		}
		logger.Info("rewards duration set", "asset", asset, "duration", duration)
		return nil
	})
}

// AddRewardAsset registers a new reward asset. A zero duration takes the configured default.
func (p *Pool) AddRewardAsset(caller, asset core.Address, duration uint64) error {
	logger.Debug("adding reward asset", "asset", asset, "duration", duration)

	return p.run("add_asset", func(now uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if asset.IsZero() {
			return reverts.Newf(reverts.KindInvalidAddress, "reward asset must not be the zero address")
		}
		// existing assets settle against the current supply before the set grows
		if err := p.settle(core.Address{}, now); err != nil {
			return err
		}
		return p.rewards.Register(asset, p.cfg.assetDuration(duration))
	})
}

func (p *Pool) setAddress(op string, caller core.Address, key core.Bytes32, addr core.Address) error {
	return p.run(op, func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if addr.IsZero() {
			return reverts.Newf(reverts.KindInvalidAddress, "%s: zero address", op)
		}
		logger.Info("address updated", "op", op, "address", addr)
		return p.params.SetAddress(key, addr)
	})
}

// SetPenaltySink sets the receiver of the retained part of withdrawals.
func (p *Pool) SetPenaltySink(caller, sink core.Address) error {
	return p.setAddress("set_penalty_sink", caller, params.KeyPenaltySink, sink)
}

// SetRewardDistributor sets the account allowed to notify rewards.
func (p *Pool) SetRewardDistributor(caller, distributor core.Address) error {
	return p.setAddress("set_distributor", caller, params.KeyRewardDistributor, distributor)
}

// TransferOwnership hands the owner role to owner.
func (p *Pool) TransferOwnership(caller, owner core.Address) error {
	return p.setAddress("transfer_ownership", caller, params.KeyOwner, owner)
}

// Pause stops every participant call until Unpause.
func (p *Pool) Pause(caller core.Address) error {
	return p.run("pause", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		logger.Info("pool paused")
		return p.params.SetBool(params.KeyPaused, true)
	})
}

func (p *Pool) Unpause(caller core.Address) error {
	return p.run("unpause", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		paused, err := p.params.GetBool(params.KeyPaused)
		if err != nil {
			return err
		}
		if !paused {
			return reverts.Newf(reverts.KindNotPaused, "pool is not paused")
		}
		logger.Info("pool unpaused")
		return p.params.SetBool(params.KeyPaused, false)
	})
}

// ExemptFromRestrictions lets account skip the enrollment lock window.
func (p *Pool) ExemptFromRestrictions(caller, account core.Address, exempt bool) error {
	return p.run("exempt", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		logger.Info("restriction exemption updated", "account", account, "exempt", exempt)
		if !exempt {
			p.exempt.Delete(account)
			return nil
		}
		return p.exempt.Set(account, true)
	})
}

// OpenProgram lets participants enroll into allocation program id.
func (p *Pool) OpenProgram(caller core.Address, id uint64) error {
	return p.run("open_program", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		return p.programs.Open(id)
	})
}

// CloseProgram stops new enrollments into allocation program id.
func (p *Pool) CloseProgram(caller core.Address, id uint64) error {
	return p.run("close_program", func(uint64) error {
		if err := p.requireOwner(caller); err != nil {
			return err
		}
		return p.programs.Close(id)
	})
}
