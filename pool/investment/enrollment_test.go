// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package investment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/rewardpool/pool/reverts"
)

type openPrograms map[uint64]bool

func (o openPrograms) IsProgramOpen(id uint64) (bool, error) {
	return o[id], nil
}

func TestValidate(t *testing.T) {
	oracle := openPrograms{1: true, 2: true, 3: false}

	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"empty", Spec{}, nil},
		{"yield only", Spec{YieldRedirectBps: 10000}, nil},
		{"mixed exactly 100%", Spec{YieldRedirectBps: 5000, Allocations: []Allocation{{1, 3000}, {2, 2000}}}, nil},
		{"mixed 10001 bps", Spec{YieldRedirectBps: 5000, Allocations: []Allocation{{1, 3000}, {2, 2001}}}, reverts.ErrInvalidPercentageSum},
		{"yield above 100%", Spec{YieldRedirectBps: 10001}, reverts.ErrInvalidPercentageSum},
		{"closed program", Spec{Allocations: []Allocation{{3, 100}}}, reverts.ErrInvalidProgram},
		{"unknown program", Spec{Allocations: []Allocation{{42, 100}}}, reverts.ErrInvalidProgram},
		{"duplicate program", Spec{Allocations: []Allocation{{1, 100}, {1, 100}}}, reverts.ErrInvalidProgram},
		{"zero share allocation", Spec{Allocations: []Allocation{{1, 0}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec, oracle)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSpecKeys(t *testing.T) {
	assert.Empty(t, Spec{}.Keys())
	assert.True(t, Spec{}.IsEmpty())

	// zero shares reference no program
	spec := Spec{YieldRedirectBps: 0, Allocations: []Allocation{{7, 0}}}
	assert.Empty(t, spec.Keys())
	assert.True(t, spec.IsEmpty())

	spec = Spec{YieldRedirectBps: 0, Allocations: []Allocation{{7, 0}, {8, 5}}}
	assert.Equal(t, []ProgramKey{AllocationKey(8)}, spec.Keys())

	spec = Spec{YieldRedirectBps: 1, Allocations: []Allocation{{7, 2}}}
	assert.Equal(t, []ProgramKey{YieldRedirect, AllocationKey(7)}, spec.Keys())
	assert.Equal(t, uint64(3), spec.TotalBps())

	assert.NotEqual(t, YieldRedirect.Bytes(), AllocationKey(0).Bytes())
}
