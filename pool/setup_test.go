// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/pool/investment"
	"github.com/vechain/rewardpool/solidity"
	"github.com/vechain/rewardpool/state"
)

const (
	startTime      = uint64(1_700_000_000)
	testDuration   = uint64(100)
	testLockWindow = uint64(86400)
)

var (
	vet  = core.BytesToAddress([]byte("vet"))
	vtho = core.BytesToAddress([]byte("vtho"))

	poolAddr    = core.BytesToAddress([]byte("pool"))
	custodyAddr = core.BytesToAddress([]byte("custody"))
	owner       = core.BytesToAddress([]byte("owner"))
	distributor = core.BytesToAddress([]byte("distributor"))
	sink        = core.BytesToAddress([]byte("sink"))
	alice       = core.BytesToAddress([]byte("alice"))
	bob         = core.BytesToAddress([]byte("bob"))
	carol       = core.BytesToAddress([]byte("carol"))
)

type testPool struct {
	*Pool
	db     *lvldb.LevelDB
	clock  *ManualClock
	ledger *custody.Ledger
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StakingAsset = vet
	cfg.RewardsDuration = testDuration
	cfg.Owner = owner
	cfg.RewardDistributor = distributor
	cfg.PenaltySink = sink
	cfg.RewardAssets = []AssetConfig{{Asset: vtho}, {Asset: vet}}
	return cfg
}

func newTestPool(t require.TestingT) *testPool {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return openTestPool(t, db, NewManualClock(startTime))
}

func openTestPool(t require.TestingT, db *lvldb.LevelDB, clock *ManualClock) *testPool {
	st := state.New(db)
	ledger := custody.NewLedger(solidity.NewContext(custodyAddr, st), poolAddr)
	p, err := New(poolAddr, st, ledger, clock, testConfig())
	require.NoError(t, err)
	return &testPool{Pool: p, db: db, clock: clock, ledger: ledger}
}

// fund mints amount of the staking and reward assets to each participant.
func (tp *testPool) fund(t require.TestingT, amount int64, participants ...core.Address) {
	for _, p := range participants {
		require.NoError(t, tp.Mint(owner, vet, p, big.NewInt(amount)))
		require.NoError(t, tp.Mint(owner, vtho, p, big.NewInt(amount)))
	}
}

func (tp *testPool) custodyBalance(t require.TestingT, asset, holder core.Address) int64 {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	bal, err := tp.ledger.BalanceOf(asset, holder)
	require.NoError(t, err)
	return bal.Int64()
}

func (tp *testPool) earned(t require.TestingT, participant, asset core.Address) int64 {
	e, err := tp.Earned(participant, asset)
	require.NoError(t, err)
	return e.Int64()
}

func (tp *testPool) balance(t require.TestingT, participant core.Address) int64 {
	b, err := tp.BalanceOf(participant)
	require.NoError(t, err)
	return b.Int64()
}

type TestFunc func(t *testing.T)

// TestSequence runs pool calls in order, failing the test on the first error.
type TestSequence struct {
	pool *testPool

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(pool *testPool) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), pool: pool}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Stake(addr core.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Stake(addr, big.NewInt(amount)); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, addr, err)
		}
		t.Logf("staked %d for %s", amount, addr)
	})
}

func (st *TestSequence) Withdraw(addr core.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		w, err := st.pool.Withdraw(addr, big.NewInt(amount))
		if err != nil {
			t.Fatalf("failed to withdraw %d for %s: %v", amount, addr, err)
		}
		t.Logf("withdrew %d for %s, paid %s", amount, addr, w.Payout)
	})
}

func (st *TestSequence) FundAndNotify(asset core.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Mint(distributor, asset, distributor, big.NewInt(amount)); err != nil {
			t.Fatalf("failed to mint %d of %s: %v", amount, asset, err)
		}
		if err := st.pool.FundAndNotify(distributor, asset, big.NewInt(amount)); err != nil {
			t.Fatalf("failed to notify %d of %s: %v", amount, asset, err)
		}
		t.Logf("notified %d of %s", amount, asset)
	})
}

func (st *TestSequence) Enroll(addr core.Address, spec investment.Spec) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Enroll(addr, spec); err != nil {
			t.Fatalf("failed to enroll %s: %v", addr, err)
		}
		t.Logf("enrolled %s", addr)
	})
}

func (st *TestSequence) OpenProgram(id uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.OpenProgram(owner, id); err != nil {
			t.Fatalf("failed to open program %d: %v", id, err)
		}
	})
}

func (st *TestSequence) Advance(seconds uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.pool.clock.Advance(seconds)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}
