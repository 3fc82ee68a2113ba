// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/solidity"
	"github.com/vechain/rewardpool/state"
)

func TestOpenClose(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	r := New(solidity.NewContext(core.BytesToAddress([]byte("programs")), state.New(db)))

	open, err := r.IsProgramOpen(1)
	require.NoError(t, err)
	assert.False(t, open)

	require.NoError(t, r.Open(1))
	require.NoError(t, r.Open(2))
	require.NoError(t, r.Open(1))

	ids, err := r.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2}, ids)

	require.NoError(t, r.Close(1))
	require.NoError(t, r.Close(7))

	open, _ = r.IsProgramOpen(1)
	assert.False(t, open)
	open, _ = r.IsProgramOpen(2)
	assert.True(t, open)

	ids, _ = r.List()
	assert.Equal(t, []uint64{2}, ids)
}
