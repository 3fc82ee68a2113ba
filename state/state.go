// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/stackedmap"
)

const (
	// StoreName is the kv bucket that holds committed slots.
	StoreName = "state.s/"
	// DefaultCacheSize is the count of committed slots New keeps in memory.
	DefaultCacheSize = 4096
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr core.Address
	key  core.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, len(k.addr)+len(k.key))
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State manages the pool storage.
type State struct {
	store kv.Store
	cache *lru.Cache // committed values already read from store
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object on top of the given store.
func New(store kv.Store) *State {
	return NewWithCache(store, DefaultCacheSize)
}

// NewWithCache creates a state object keeping at most cacheSize committed slots
// in memory. A non-positive size falls back to DefaultCacheSize.
func NewWithCache(store kv.Store, cacheSize int) *State {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New(cacheSize)
	s := &State{
		store: kv.Bucket(StoreName).NewStore(store),
		cache: cache,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key storageKey) (rlp.RawValue, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(rlp.RawValue), true, nil
	}
	metricStorageCounter().AddWithLabel(1, map[string]string{"type": "read"})

	v, err := s.store.Get(key.bytes())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		v = nil
	}
	s.cache.Add(key, v)
	return v, true, nil
}

// GetRawStorage returns storage raw value for the given address and key.
func (s *State) GetRawStorage(addr core.Address, key core.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage raw value for the given address and key.
func (s *State) SetRawStorage(addr core.Address, key core.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr core.Address, key core.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr core.Address, key core.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the changes made since the last commit.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{store: s.store, changes: changes}
}

// Commit writes all changes into the underlying store and resets the journal.
// Pending checkpoints are discarded.
func (s *State) Commit() error {
	stage := s.Stage()
	if err := stage.Commit(); err != nil {
		return &Error{err}
	}
	for k, v := range stage.changes {
		s.cache.Add(k, v)
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return nil
}
