// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/rewardpool/kv"
)

// Stage abstracts changes that are ready to be written.
type Stage struct {
	store   kv.Store
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit commits all changes into the store in one batch.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	bulk := s.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.bytes())
		} else {
			err = bulk.Put(k.bytes(), v)
		}
		if err != nil {
			return err
		}
	}
	metricCommitSize().Observe(int64(len(s.changes)))
	metricStorageCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write"})
	return bulk.Write()
}
