// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the staking pool: stake and withdraw under a two-tier exit
// penalty, lazily accrued rewards in any number of assets, and the investment program
// overlay kept in sync with staked balances.
//
// Every public call runs under a single mutex inside a state checkpoint. A call that
// fails leaves no trace; a call that succeeds is committed to the backing store.
package pool

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/params"
	"github.com/vechain/rewardpool/pool/account"
	"github.com/vechain/rewardpool/pool/globalstats"
	"github.com/vechain/rewardpool/pool/investment"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/pool/reward"
	"github.com/vechain/rewardpool/programs"
	"github.com/vechain/rewardpool/solidity"
	"github.com/vechain/rewardpool/state"
)

var (
	logger = log.WithContext("pkg", "pool")

	slotExempt = solidity.Slot("restriction-exempt")
)

// Pool is a staking pool bound to one address.
type Pool struct {
	mu      sync.Mutex
	addr    core.Address
	state   *state.State
	custody custody.Custody
	clock   Clock
	cfg     Config

	params   *params.Params
	rewards  *reward.Service
	accounts *account.Service
	stats    *globalstats.Service
	programs *programs.Registry
	registry *investment.Registry
	exempt   *solidity.Mapping[core.Address, bool]
}

// New creates the pool at addr. custody must keep its balances in st for failed
// calls to roll back their transfers. On first start the pool state is seeded from cfg.
func New(addr core.Address, st *state.State, cust custody.Custody, clock Clock, cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pool config")
	}
	sctx := solidity.NewContext(addr, st)

	p := &Pool{
		addr:     addr,
		state:    st,
		custody:  cust,
		clock:    clock,
		cfg:      cfg,
		params:   params.New(sctx),
		rewards:  reward.New(sctx),
		accounts: account.New(sctx),
		stats:    globalstats.New(sctx),
		programs: programs.New(sctx),
		exempt:   solidity.NewMapping[core.Address, bool](sctx, slotExempt),
	}
	p.registry = investment.New(sctx, p.programs, p.accounts, cfg.EnrollmentLockWindow)

	if err := p.run("init", p.init); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) init(uint64) error {
	initialized, err := p.params.GetBool(params.KeyInitialized)
	if err != nil || initialized {
		return err
	}
	if err := p.params.SetAddress(params.KeyOwner, p.cfg.Owner); err != nil {
		return err
	}
	if err := p.params.SetAddress(params.KeyRewardDistributor, p.cfg.RewardDistributor); err != nil {
		return err
	}
	if err := p.params.SetAddress(params.KeyPenaltySink, p.cfg.PenaltySink); err != nil {
		return err
	}
	for _, a := range p.cfg.RewardAssets {
		if err := p.rewards.Register(a.Asset, p.cfg.assetDuration(a.Duration)); err != nil {
			return errors.Wrapf(err, "register reward asset %s", a.Asset)
		}
	}
	logger.Info("pool initialized", "address", p.addr, "owner", p.cfg.Owner, "rewardAssets", len(p.cfg.RewardAssets))
	return p.params.SetBool(params.KeyInitialized, true)
}

// Address returns the address holding the pool funds.
func (p *Pool) Address() core.Address {
	return p.addr
}

// StakingAsset returns the asset participants stake.
func (p *Pool) StakingAsset() core.Address {
	return p.cfg.StakingAsset
}

// run executes fn as one all-or-nothing call.
func (p *Pool) run(op string, fn func(now uint64) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	checkpoint := p.state.NewCheckpoint()
	if err := fn(now); err != nil {
		p.state.RevertTo(checkpoint)
		status := "error"
		if reverts.IsRevertErr(err) {
			status = "reverted"
		}
		metricCalls().AddWithLabel(1, map[string]string{"op": op, "status": status})
		logger.Debug("call failed", "op", op, "error", err)
		return err
	}
	if err := p.state.Commit(); err != nil {
		p.state.RevertTo(checkpoint)
		metricCalls().AddWithLabel(1, map[string]string{"op": op, "status": "error"})
		logger.Error("failed to commit pool state", "op", op, "error", err)
		return errors.Wrap(err, "commit")
	}
	metricCalls().AddWithLabel(1, map[string]string{"op": op, "status": "ok"})
	p.observe()
	return nil
}

// view executes a read under the pool lock.
func (p *Pool) view(fn func(now uint64) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.clock.Now())
}

func (p *Pool) observe() {
	if n, err := p.rewards.Count(); err == nil {
		metricRewardAssets().Set(int64(n))
	}
	if n, err := p.registry.Participants(investment.YieldRedirect).Len(); err == nil {
		metricEnrolled().Set(int64(n))
	}
}

//
// authority helpers
//

func (p *Pool) requireRole(caller core.Address, key core.Bytes32, role string) error {
	holder, err := p.params.GetAddress(key)
	if err != nil {
		return err
	}
	if caller != holder {
		return reverts.Newf(reverts.KindUnauthorized, "%s is not the %s", caller, role)
	}
	return nil
}

func (p *Pool) requireOwner(caller core.Address) error {
	return p.requireRole(caller, params.KeyOwner, "owner")
}

func (p *Pool) requireNotPaused() error {
	paused, err := p.params.GetBool(params.KeyPaused)
	if err != nil {
		return err
	}
	if paused {
		return reverts.Newf(reverts.KindPaused, "pool is paused")
	}
	return nil
}

func (p *Pool) isExempt(participant core.Address) (bool, error) {
	return p.exempt.Get(participant)
}

//
// settlement
//

// settle folds the accrual of every reward asset into the global accumulators and,
// when participant is not zero, into the participant's accrued buckets.
func (p *Pool) settle(participant core.Address, now uint64) error {
	supply, err := p.stats.TotalSupply()
	if err != nil {
		return err
	}
	assets, err := p.rewards.Assets()
	if err != nil {
		return err
	}
	for _, asset := range assets {
		a, err := p.rewards.Settle(asset, supply, now)
		if err != nil {
			return err
		}
		if participant.IsZero() {
			continue
		}
		if err := p.accounts.Settle(participant, asset, a.RewardPerTokenStored); err != nil {
			return err
		}
	}
	return nil
}

// available returns the amount of asset the pool may still promise as reward.
// Staked principal never counts.
func (p *Pool) available(asset core.Address) (*big.Int, error) {
	held, err := p.custody.BalanceOf(asset, p.addr)
	if err != nil {
		return nil, err
	}
	if asset != p.cfg.StakingAsset {
		return held, nil
	}
	supply, err := p.stats.TotalSupply()
	if err != nil {
		return nil, err
	}
	free := new(big.Int).Sub(held, supply)
	if free.Sign() < 0 {
		free.SetInt64(0)
	}
	return free, nil
}
