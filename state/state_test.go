// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/lvldb"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateReadWrite(t *testing.T) {
	st, _ := newTestState(t)

	addr := core.BytesToAddress([]byte("pool"))
	key := core.BytesToBytes32([]byte("k"))

	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(uint64(42))
	}))

	var v uint64
	require.NoError(t, st.DecodeStorage(addr, key, func(b []byte) error {
		return rlp.DecodeBytes(b, &v)
	}))
	assert.Equal(t, uint64(42), v)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)
	addr := core.BytesToAddress([]byte("pool"))
	k1 := core.BytesToBytes32([]byte("k1"))
	k2 := core.BytesToBytes32([]byte("k2"))

	st.SetRawStorage(addr, k1, rlp.RawValue{0x01})
	cp := st.NewCheckpoint()
	st.SetRawStorage(addr, k1, rlp.RawValue{0x02})
	st.SetRawStorage(addr, k2, rlp.RawValue{0x03})

	raw, _ := st.GetRawStorage(addr, k1)
	assert.Equal(t, rlp.RawValue{0x02}, raw)

	st.RevertTo(cp)
	raw, _ = st.GetRawStorage(addr, k1)
	assert.Equal(t, rlp.RawValue{0x01}, raw)
	raw, _ = st.GetRawStorage(addr, k2)
	assert.Empty(t, raw)
}

func TestStateCommit(t *testing.T) {
	st, db := newTestState(t)
	addr := core.BytesToAddress([]byte("pool"))
	k1 := core.BytesToBytes32([]byte("k1"))
	k2 := core.BytesToBytes32([]byte("k2"))

	st.SetRawStorage(addr, k1, rlp.RawValue{0x01})
	st.SetRawStorage(addr, k2, rlp.RawValue{0x02})
	assert.Equal(t, 2, st.Stage().Len())
	require.NoError(t, st.Commit())
	assert.Equal(t, 0, st.Stage().Len())

	// a fresh state over the same store sees the committed values
	reopened := New(db)
	raw, err := reopened.GetRawStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)

	// clearing a slot deletes it
	st.SetRawStorage(addr, k2, nil)
	require.NoError(t, st.Commit())
	raw, err = New(db).GetRawStorage(addr, k2)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateCacheIsBounded(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := NewWithCache(db, 16)
	addr := core.BytesToAddress([]byte("pool"))
	kept := core.BytesToBytes32([]byte("kept"))
	st.SetRawStorage(addr, kept, rlp.RawValue{0x2a})
	require.NoError(t, st.Commit())

	for i := range 1000 {
		raw, err := st.GetRawStorage(core.BytesToAddress([]byte{byte(i >> 8), byte(i)}), kept)
		require.NoError(t, err)
		assert.Empty(t, raw)
	}
	assert.Equal(t, 16, st.cache.Len())

	// evicted slots are read back from the store
	raw, err := st.GetRawStorage(addr, kept)
	require.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x2a}, raw)
}
