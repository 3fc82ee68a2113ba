// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/investment"
)

// Enroll enrolls the caller's position into the programs of spec.
func (p *Pool) Enroll(caller core.Address, spec investment.Spec) error {
	logger.Debug("enrolling", "participant", caller, "yieldRedirectBps", spec.YieldRedirectBps, "allocations", len(spec.Allocations))

	return p.run("enroll", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		return p.registry.Enroll(caller, spec, now)
	})
}

// EnrollYieldRedirect enrolls bps of the caller's position into the yield redirect.
func (p *Pool) EnrollYieldRedirect(caller core.Address, bps uint64) error {
	return p.Enroll(caller, investment.Spec{YieldRedirectBps: bps})
}

// EnrollAllocation enrolls bps of the caller's position into allocation program id.
func (p *Pool) EnrollAllocation(caller core.Address, id uint64, bps uint64) error {
	return p.Enroll(caller, investment.Spec{Allocations: []investment.Allocation{{ProgramID: id, Bps: bps}}})
}

// EnrollMixed enrolls into the yield redirect and several allocation programs at once.
func (p *Pool) EnrollMixed(caller core.Address, yieldBps uint64, allocations []investment.Allocation) error {
	return p.Enroll(caller, investment.Spec{YieldRedirectBps: yieldBps, Allocations: allocations})
}

// ChangeEnrollment replaces the caller's enrollment. An empty spec removes it.
func (p *Pool) ChangeEnrollment(caller core.Address, spec investment.Spec) error {
	logger.Debug("changing enrollment", "participant", caller, "yieldRedirectBps", spec.YieldRedirectBps, "allocations", len(spec.Allocations))

	return p.run("change_enrollment", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		exempt, err := p.isExempt(caller)
		if err != nil {
			return err
		}
		return p.registry.ChangeEnrollment(caller, spec, now, exempt)
	})
}

// Deactivate removes the caller from every program.
func (p *Pool) Deactivate(caller core.Address) error {
	logger.Debug("deactivating enrollment", "participant", caller)

	return p.run("deactivate", func(now uint64) error {
		if err := p.requireNotPaused(); err != nil {
			return err
		}
		exempt, err := p.isExempt(caller)
		if err != nil {
			return err
		}
		return p.registry.Deactivate(caller, now, exempt)
	})
}

//
// Getters - no state change
//

// Enrollment returns the enrollment of participant, and whether there is one.
func (p *Pool) Enrollment(participant core.Address) (*investment.Enrollment, bool, error) {
	var (
		e   *investment.Enrollment
		err error
	)
	err = p.view(func(uint64) error {
		e, err = p.registry.Enrollment(participant)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return e, !e.IsEmpty(), nil
}

// YieldRedirectParticipants lists the participants enrolled in the yield redirect.
func (p *Pool) YieldRedirectParticipants() ([]core.Address, error) {
	return p.participants(investment.YieldRedirect)
}

// AllocationParticipants lists the participants enrolled in allocation program id.
func (p *Pool) AllocationParticipants(id uint64) ([]core.Address, error) {
	return p.participants(investment.AllocationKey(id))
}

func (p *Pool) participants(key investment.ProgramKey) ([]core.Address, error) {
	var members []core.Address
	err := p.view(func(uint64) error {
		var err error
		members, err = p.registry.Participants(key).Members()
		return err
	})
	return members, err
}

// AggregateYieldRedirectSupply returns the staked balance enrolled in the yield redirect.
func (p *Pool) AggregateYieldRedirectSupply() (*big.Int, error) {
	return p.aggregate(investment.YieldRedirect)
}

// AggregateAllocationSupply returns the staked balance enrolled in allocation program id.
func (p *Pool) AggregateAllocationSupply(id uint64) (*big.Int, error) {
	return p.aggregate(investment.AllocationKey(id))
}

func (p *Pool) aggregate(key investment.ProgramKey) (*big.Int, error) {
	var v *big.Int
	err := p.view(func(uint64) error {
		var err error
		v, err = p.registry.AggregateSupply(key)
		return err
	})
	return v, err
}

// IsProgramOpen tells whether allocation program id accepts enrollments.
func (p *Pool) IsProgramOpen(id uint64) (bool, error) {
	var open bool
	err := p.view(func(uint64) error {
		var err error
		open, err = p.programs.IsProgramOpen(id)
		return err
	})
	return open, err
}

// OpenPrograms lists the allocation programs accepting enrollments.
func (p *Pool) OpenPrograms() ([]uint64, error) {
	var ids []uint64
	err := p.view(func(uint64) error {
		var err error
		ids, err = p.programs.List()
		return err
	})
	return ids, err
}
