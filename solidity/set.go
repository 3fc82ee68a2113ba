// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/rewardpool/core"
)

// Set is an enumerable set of keys kept in storage: an array of members
// plus a 1-based index per member. Removal swaps the last member into the hole,
// so member order is not stable.
type Set[K Key] struct {
	length  *Uint256
	members *Mapping[core.Uint64Key, K]
	index   *Mapping[K, uint64]
}

func NewSet[K Key](context *Context, pos core.Bytes32) *Set[K] {
	return &Set[K]{
		length:  NewUint256(context, core.Blake2b(pos.Bytes(), []byte("length"))),
		members: NewMapping[core.Uint64Key, K](context, core.Blake2b(pos.Bytes(), []byte("members"))),
		index:   NewMapping[K, uint64](context, core.Blake2b(pos.Bytes(), []byte("index"))),
	}
}

func (s *Set[K]) Len() (uint64, error) {
	n, err := s.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (s *Set[K]) Contains(key K) (bool, error) {
	idx, err := s.index.Get(key)
	if err != nil {
		return false, err
	}
	return idx != 0, nil
}

// Add inserts key, returning false if it was already present.
func (s *Set[K]) Add(key K) (bool, error) {
	if ok, err := s.Contains(key); err != nil || ok {
		return false, err
	}
	n, err := s.Len()
	if err != nil {
		return false, err
	}
	if err := s.members.Set(core.Uint64Key(n), key); err != nil {
		return false, err
	}
	if err := s.index.Set(key, n+1); err != nil {
		return false, err
	}
	s.length.Set(new(big.Int).SetUint64(n + 1))
	return true, nil
}

// Remove deletes key, returning false if it was absent.
func (s *Set[K]) Remove(key K) (bool, error) {
	idx, err := s.index.Get(key)
	if err != nil || idx == 0 {
		return false, err
	}
	n, err := s.Len()
	if err != nil {
		return false, err
	}
	last := n - 1
	if idx-1 != last {
		moved, err := s.members.Get(core.Uint64Key(last))
		if err != nil {
			return false, err
		}
		if err := s.members.Set(core.Uint64Key(idx-1), moved); err != nil {
			return false, err
		}
		if err := s.index.Set(moved, idx); err != nil {
			return false, err
		}
	}
	s.members.Delete(core.Uint64Key(last))
	s.index.Delete(key)
	s.length.Set(new(big.Int).SetUint64(last))
	return true, nil
}

// At returns the member at position i.
func (s *Set[K]) At(i uint64) (K, error) {
	return s.members.Get(core.Uint64Key(i))
}

// Members returns all members.
func (s *Set[K]) Members() ([]K, error) {
	n, err := s.Len()
	if err != nil {
		return nil, err
	}
	out := make([]K, 0, n)
	for i := range n {
		k, err := s.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
