// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package investment

import (
	"encoding/binary"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/reverts"
)

// Allocation is the share of a position assigned to one allocation program.
type Allocation struct {
	ProgramID uint64 `json:"programId"`
	Bps       uint64 `json:"bps"`
}

// Spec describes how a position is split across programs. Percentages are in basis points.
type Spec struct {
	YieldRedirectBps uint64       `json:"yieldRedirectBps"`
	Allocations      []Allocation `json:"allocations"`
}

// Enrollment is a recorded Spec.
type Enrollment struct {
	Active           bool
	YieldRedirectBps uint64
	Allocations      []Allocation
	EnrolledAt       uint64
}

func (e *Enrollment) IsEmpty() bool {
	return !e.Active
}

// Spec returns the split of the enrollment.
func (e *Enrollment) Spec() Spec {
	return Spec{YieldRedirectBps: e.YieldRedirectBps, Allocations: e.Allocations}
}

// ProgramKey identifies a program aggregate: the yield redirect or one allocation id.
type ProgramKey struct {
	YieldRedirect bool
	ProgramID     uint64
}

// YieldRedirect is the key of the yield redirect program.
var YieldRedirect = ProgramKey{YieldRedirect: true}

// AllocationKey returns the key of allocation program id.
func AllocationKey(id uint64) ProgramKey {
	return ProgramKey{ProgramID: id}
}

func (k ProgramKey) Bytes() []byte {
	if k.YieldRedirect {
		return []byte("yield-redirect")
	}
	return binary.BigEndian.AppendUint64([]byte("allocation:"), k.ProgramID)
}

// Keys returns the programs the spec contributes balance to. Zero shares,
// yield redirect or allocation alike, reference no program.
func (s Spec) Keys() []ProgramKey {
	keys := make([]ProgramKey, 0, len(s.Allocations)+1)
	if s.YieldRedirectBps > 0 {
		keys = append(keys, YieldRedirect)
	}
	for _, a := range s.Allocations {
		if a.Bps > 0 {
			keys = append(keys, AllocationKey(a.ProgramID))
		}
	}
	return keys
}

// IsEmpty returns whether the spec references no program.
func (s Spec) IsEmpty() bool {
	return len(s.Keys()) == 0
}

// TotalBps returns the sum of all shares.
func (s Spec) TotalBps() uint64 {
	total := s.YieldRedirectBps
	for _, a := range s.Allocations {
		total += a.Bps
	}
	return total
}

// ProgramOracle tells whether an allocation program accepts enrollments.
type ProgramOracle interface {
	IsProgramOpen(id uint64) (bool, error)
}

// Validate checks a spec without touching any pool state: shares must not exceed
// 100%, ids must be unique, and every allocation program must be open.
func Validate(spec Spec, oracle ProgramOracle) error {
	if spec.YieldRedirectBps > core.MaxBps {
		return reverts.Newf(reverts.KindInvalidPercentageSum, "yield redirect share %d bps exceeds %d", spec.YieldRedirectBps, core.MaxBps)
	}
	total := spec.YieldRedirectBps
	seen := make(map[uint64]struct{}, len(spec.Allocations))
	for _, a := range spec.Allocations {
		if a.Bps > core.MaxBps {
			return reverts.Newf(reverts.KindInvalidPercentageSum, "allocation share %d bps exceeds %d", a.Bps, core.MaxBps)
		}
		total += a.Bps
		if total > core.MaxBps {
			return reverts.Newf(reverts.KindInvalidPercentageSum, "total share exceeds %d bps", core.MaxBps)
		}
		if _, dup := seen[a.ProgramID]; dup {
			return reverts.Newf(reverts.KindInvalidProgram, "program %d listed twice", a.ProgramID)
		}
		seen[a.ProgramID] = struct{}{}
	}
	for _, a := range spec.Allocations {
		open, err := oracle.IsProgramOpen(a.ProgramID)
		if err != nil {
			return err
		}
		if !open {
			return reverts.Newf(reverts.KindInvalidProgram, "program %d is not open", a.ProgramID)
		}
	}
	return nil
}
