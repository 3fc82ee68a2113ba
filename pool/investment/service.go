// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package investment

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/solidity"
)

var (
	logger = log.WithContext("pkg", "investment")

	slotEnrollments  = core.BytesToBytes32([]byte("enrollments"))
	slotAggregates   = core.BytesToBytes32([]byte("program-aggregates"))
	slotParticipants = core.BytesToBytes32([]byte("program-participants"))
)

// BalanceReader exposes the staked balances of the pool to the registry.
type BalanceReader interface {
	BalanceOf(participant core.Address) (*big.Int, error)
}

// Registry records enrollments and keeps, for every program, the sum of the
// balances of its enrolled participants.
type Registry struct {
	sctx        *solidity.Context
	oracle      ProgramOracle
	balances    BalanceReader
	lockWindow  uint64
	enrollments *solidity.Mapping[core.Address, *Enrollment]
	aggregates  *solidity.Mapping[ProgramKey, *big.Int]
}

func New(sctx *solidity.Context, oracle ProgramOracle, balances BalanceReader, lockWindow uint64) *Registry {
	return &Registry{
		sctx:        sctx,
		oracle:      oracle,
		balances:    balances,
		lockWindow:  lockWindow,
		enrollments: solidity.NewMapping[core.Address, *Enrollment](sctx, slotEnrollments),
		aggregates:  solidity.NewMapping[ProgramKey, *big.Int](sctx, slotAggregates),
	}
}

// Participants returns the enumerable participant set of a program.
func (r *Registry) Participants(key ProgramKey) *solidity.Set[core.Address] {
	return solidity.NewSet[core.Address](r.sctx, core.Blake2b(slotParticipants.Bytes(), key.Bytes()))
}

// AggregateSupply returns the summed balance enrolled in a program.
func (r *Registry) AggregateSupply(key ProgramKey) (*big.Int, error) {
	return r.aggregates.Get(key)
}

// Enrollment returns the enrollment of participant; IsEmpty when not enrolled.
func (r *Registry) Enrollment(participant core.Address) (*Enrollment, error) {
	e, err := r.enrollments.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "get enrollment")
	}
	return e, nil
}

func (r *Registry) IsEnrolled(participant core.Address) (bool, error) {
	e, err := r.Enrollment(participant)
	if err != nil {
		return false, err
	}
	return !e.IsEmpty(), nil
}

// Enroll records spec for participant and adds its balance to every referenced program.
// A spec referencing no program is accepted and records nothing.
func (r *Registry) Enroll(participant core.Address, spec Spec, now uint64) error {
	e, err := r.Enrollment(participant)
	if err != nil {
		return err
	}
	if !e.IsEmpty() {
		return reverts.Newf(reverts.KindAlreadyEnrolled, "%s is already enrolled", participant)
	}
	if err := Validate(spec, r.oracle); err != nil {
		return err
	}
	balance, err := r.stakedBalance(participant)
	if err != nil {
		return err
	}
	if spec.IsEmpty() {
		return nil
	}
	for _, key := range spec.Keys() {
		if err := r.join(key, participant, balance); err != nil {
			return err
		}
	}
	logger.Debug("enrolled", "participant", participant, "yieldRedirectBps", spec.YieldRedirectBps, "allocations", len(spec.Allocations))
	return r.enrollments.Set(participant, &Enrollment{
		Active:           true,
		YieldRedirectBps: spec.YieldRedirectBps,
		Allocations:      spec.Allocations,
		EnrolledAt:       now,
	})
}

// ChangeEnrollment replaces the enrollment of participant with spec once the
// enrollment lock window elapsed. Programs dropped by spec lose the participant's
// balance, new ones gain it. The enrollment clock restarts.
func (r *Registry) ChangeEnrollment(participant core.Address, spec Spec, now uint64, exempt bool) error {
	e, err := r.Enrollment(participant)
	if err != nil {
		return err
	}
	if e.IsEmpty() {
		return reverts.Newf(reverts.KindNotEnrolled, "%s is not enrolled", participant)
	}
	if err := r.checkLock(e, now, exempt); err != nil {
		return err
	}
	if err := Validate(spec, r.oracle); err != nil {
		return err
	}
	balance, err := r.stakedBalance(participant)
	if err != nil {
		return err
	}

	oldKeys := keySet(e.Spec().Keys())
	newKeys := keySet(spec.Keys())
	for key := range oldKeys {
		if _, keep := newKeys[key]; !keep {
			if err := r.leave(key, participant, balance); err != nil {
				return err
			}
		}
	}
	for key := range newKeys {
		if _, had := oldKeys[key]; !had {
			if err := r.join(key, participant, balance); err != nil {
				return err
			}
		}
	}

	if spec.IsEmpty() {
		r.enrollments.Delete(participant)
		return nil
	}
	return r.enrollments.Set(participant, &Enrollment{
		Active:           true,
		YieldRedirectBps: spec.YieldRedirectBps,
		Allocations:      spec.Allocations,
		EnrolledAt:       now,
	})
}

// Deactivate removes participant from every program once the enrollment lock window elapsed.
// Deactivating without an enrollment does nothing.
func (r *Registry) Deactivate(participant core.Address, now uint64, exempt bool) error {
	e, err := r.Enrollment(participant)
	if err != nil || e.IsEmpty() {
		return err
	}
	if err := r.checkLock(e, now, exempt); err != nil {
		return err
	}
	balance, err := r.balances.BalanceOf(participant)
	if err != nil {
		return err
	}
	return r.remove(participant, e, balance)
}

// OnBalanceChange mirrors a balance change of participant into its programs.
// A change to zero deactivates the enrollment, which is subject to the lock window.
func (r *Registry) OnBalanceChange(participant core.Address, oldBalance, newBalance *big.Int, now uint64, exempt bool) error {
	e, err := r.Enrollment(participant)
	if err != nil || e.IsEmpty() {
		return err
	}
	if newBalance.Sign() == 0 {
		if err := r.checkLock(e, now, exempt); err != nil {
			return err
		}
		logger.Debug("auto deactivating enrollment", "participant", participant)
		return r.remove(participant, e, oldBalance)
	}

	delta := new(big.Int).Sub(newBalance, oldBalance)
	for _, key := range e.Spec().Keys() {
		if err := r.adjust(key, delta); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) checkLock(e *Enrollment, now uint64, exempt bool) error {
	if exempt {
		return nil
	}
	if unlock := e.EnrolledAt + r.lockWindow; now < unlock {
		return reverts.Newf(reverts.KindTooEarly, "enrollment is locked until %d", unlock)
	}
	return nil
}

func (r *Registry) stakedBalance(participant core.Address) (*big.Int, error) {
	balance, err := r.balances.BalanceOf(participant)
	if err != nil {
		return nil, err
	}
	if balance.Sign() == 0 {
		return nil, reverts.Newf(reverts.KindNoStake, "%s has no stake", participant)
	}
	return balance, nil
}

func (r *Registry) remove(participant core.Address, e *Enrollment, balance *big.Int) error {
	for _, key := range e.Spec().Keys() {
		if err := r.leave(key, participant, balance); err != nil {
			return err
		}
	}
	r.enrollments.Delete(participant)
	logger.Debug("deactivated enrollment", "participant", participant)
	return nil
}

func (r *Registry) join(key ProgramKey, participant core.Address, balance *big.Int) error {
	if _, err := r.Participants(key).Add(participant); err != nil {
		return err
	}
	return r.adjust(key, balance)
}

func (r *Registry) leave(key ProgramKey, participant core.Address, balance *big.Int) error {
	if _, err := r.Participants(key).Remove(participant); err != nil {
		return err
	}
	return r.adjust(key, new(big.Int).Neg(balance))
}

func (r *Registry) adjust(key ProgramKey, delta *big.Int) error {
	agg, err := r.aggregates.Get(key)
	if err != nil {
		return errors.Wrap(err, "get aggregate")
	}
	agg.Add(agg, delta)
	if agg.Sign() < 0 {
		return errors.Errorf("aggregate of %x below zero", key.Bytes())
	}
	return r.aggregates.Set(key, agg)
}

func keySet(keys []ProgramKey) map[ProgramKey]struct{} {
	set := make(map[ProgramKey]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
