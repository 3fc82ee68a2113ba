// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package distributor funds a pool with reward assets on a cron schedule.
package distributor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
)

var (
	logger = log.WithContext("pkg", "distributor")

	metricRuns = metrics.LazyLoadCounterVec("distributor_runs_count", []string{"status"})
)

// Plan notifies Amount of Asset every time Schedule fires. With Mint set, the
// amount is minted to the distributor first.
type Plan struct {
	Asset    core.Address          `yaml:"asset"`
	Amount   *math.HexOrDecimal256 `yaml:"amount"`
	Schedule string                `yaml:"schedule"`
	Mint     bool                  `yaml:"mint"`
}

func (p *Plan) amount() *big.Int {
	if p.Amount == nil {
		return new(big.Int)
	}
	return (*big.Int)(p.Amount)
}

// Pool is the part of the pool the distributor drives.
type Pool interface {
	Mint(caller, asset, holder core.Address, amount *big.Int) error
	FundAndNotify(caller, asset core.Address, amount *big.Int) error
}

// Distributor acts as the reward distributor of a pool.
type Distributor struct {
	cron   *cron.Cron
	pool   Pool
	caller core.Address
	plans  []Plan
}

// New schedules plans on behalf of caller. Schedules use the six field cron
// syntax with seconds, or descriptors such as "@every 12h".
func New(pool Pool, caller core.Address, plans []Plan) (*Distributor, error) {
	d := &Distributor{
		cron:   cron.New(cron.WithSeconds()),
		pool:   pool,
		caller: caller,
		plans:  plans,
	}
	for i := range plans {
		plan := plans[i]
		if plan.amount().Sign() <= 0 {
			return nil, errors.Errorf("plan %d: amount must be positive", i)
		}
		if _, err := d.cron.AddFunc(plan.Schedule, func() { d.run(plan) }); err != nil {
			return nil, errors.Wrapf(err, "plan %d: schedule %q", i, plan.Schedule)
		}
	}
	return d, nil
}

// Distribute executes plan once.
func (d *Distributor) Distribute(plan Plan) error {
	amount := plan.amount()
	if plan.Mint {
		if err := d.pool.Mint(d.caller, plan.Asset, d.caller, amount); err != nil {
			return errors.Wrap(err, "mint")
		}
	}
	if err := d.pool.FundAndNotify(d.caller, plan.Asset, amount); err != nil {
		return errors.Wrap(err, "notify")
	}
	return nil
}

func (d *Distributor) run(plan Plan) {
	if err := d.Distribute(plan); err != nil {
		metricRuns().AddWithLabel(1, map[string]string{"status": "failed"})
		logger.Warn("reward distribution failed", "asset", plan.Asset, "amount", plan.amount(), "error", err)
		return
	}
	metricRuns().AddWithLabel(1, map[string]string{"status": "ok"})
	logger.Info("reward distributed", "asset", plan.Asset, "amount", plan.amount())
}

// Plans returns the number of scheduled plans.
func (d *Distributor) Plans() int {
	return len(d.cron.Entries())
}

func (d *Distributor) Start() {
	d.cron.Start()
	logger.Info("distributor started", "plans", len(d.plans))
}

// Stop stops scheduling and waits for running distributions, or until ctx is done.
func (d *Distributor) Stop(ctx context.Context) {
	done := d.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	logger.Info("distributor stopped")
}
