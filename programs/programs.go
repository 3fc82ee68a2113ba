// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package programs keeps the list of allocation programs that accept enrollments.
package programs

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/solidity"
)

var (
	logger = log.WithContext("pkg", "programs")

	slotOpen = solidity.Slot("open-programs")
)

// Registry is a state-backed set of open allocation programs.
type Registry struct {
	open *solidity.Set[core.Uint64Key]
}

func New(sctx *solidity.Context) *Registry {
	return &Registry{open: solidity.NewSet[core.Uint64Key](sctx, slotOpen)}
}

// Open marks program id as accepting enrollments. Opening an open program does nothing.
func (r *Registry) Open(id uint64) error {
	added, err := r.open.Add(core.Uint64Key(id))
	if err != nil {
		return errors.Wrap(err, "open program")
	}
	if added {
		logger.Info("program opened", "id", id)
	}
	return nil
}

// Close stops program id from accepting enrollments. Existing enrollments are kept.
func (r *Registry) Close(id uint64) error {
	removed, err := r.open.Remove(core.Uint64Key(id))
	if err != nil {
		return errors.Wrap(err, "close program")
	}
	if removed {
		logger.Info("program closed", "id", id)
	}
	return nil
}

func (r *Registry) IsProgramOpen(id uint64) (bool, error) {
	return r.open.Contains(core.Uint64Key(id))
}

// List returns the ids of all open programs.
func (r *Registry) List() ([]uint64, error) {
	members, err := r.open.Members()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, uint64(m))
	}
	return ids, nil
}
