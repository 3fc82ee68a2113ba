// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/pool/investment"
	"github.com/vechain/rewardpool/pool/reverts"
	"github.com/vechain/rewardpool/solidity"
	"github.com/vechain/rewardpool/state"
)

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, cfg.Validate())

	bad := testConfig()
	bad.StakingAsset = core.Address{}
	assert.Error(t, bad.Validate())

	bad = testConfig()
	bad.Penalty.MinPayoutBps = 9500
	assert.Error(t, bad.Validate())

	bad = testConfig()
	bad.RewardAssets = append(bad.RewardAssets, AssetConfig{Asset: vtho})
	assert.Error(t, bad.Validate())

	_, err := New(poolAddr, nil, nil, NewManualClock(0), bad)
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	tp := newTestPool(t)

	assets, err := tp.RewardAssets()
	require.NoError(t, err)
	assert.Equal(t, []core.Address{vtho, vet}, assets)

	o, err := tp.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, o)

	d, _ := tp.RewardDistributor()
	assert.Equal(t, distributor, d)
	s, _ := tp.PenaltySink()
	assert.Equal(t, sink, s)

	a, err := tp.AssetState(vtho)
	require.NoError(t, err)
	assert.Equal(t, testDuration, a.Duration)
}

func TestPenaltyTiers(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice, bob)

	// immediate exit pays the minimum
	require.NoError(t, tp.Stake(alice, big.NewInt(100)))
	w, err := tp.Withdraw(alice, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(50), w.Payout.Int64())
	assert.Equal(t, int64(50), w.Retained.Int64())
	assert.Equal(t, int64(950), tp.custodyBalance(t, vet, alice))
	assert.Equal(t, int64(50), tp.custodyBalance(t, vet, sink))

	// one second before maturity still pays the minimum
	require.NoError(t, tp.Stake(bob, big.NewInt(100)))
	tp.clock.Advance(testLockWindow - 1)
	w, err = tp.Withdraw(bob, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(50), w.Payout.Int64())

	// a fresh stake held for the full window pays the mature fraction
	require.NoError(t, tp.Stake(bob, big.NewInt(100)))
	tp.clock.Advance(testLockWindow)
	w, err = tp.Withdraw(bob, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(90), w.Payout.Int64())
	assert.Equal(t, int64(10), w.Retained.Int64())

	assert.Equal(t, int64(940), tp.custodyBalance(t, vet, bob))
	assert.Equal(t, int64(110), tp.custodyBalance(t, vet, sink))
	assert.Equal(t, int64(0), tp.custodyBalance(t, vet, poolAddr))

	stats, err := tp.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(110), stats.PenaltyCollected.Int64())
	assert.Equal(t, 0, stats.TotalSupply.Sign())
}

func TestStakeRestartsPenaltyClock(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)

	require.NoError(t, tp.Stake(alice, big.NewInt(100)))
	tp.clock.Advance(testLockWindow)
	require.NoError(t, tp.Stake(alice, big.NewInt(1)))

	w, err := tp.Withdraw(alice, big.NewInt(101))
	require.NoError(t, err)
	assert.Equal(t, int64(50), w.Payout.Int64())
	assert.Equal(t, int64(51), w.Retained.Int64())
}

func TestStakeWithdrawFailures(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 100, alice)

	assert.ErrorIs(t, tp.Stake(alice, big.NewInt(0)), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, tp.Stake(alice, big.NewInt(-1)), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, tp.Stake(alice, big.NewInt(101)), reverts.ErrInsufficientBalance)
	assert.Equal(t, int64(0), tp.balance(t, alice))
	assert.Equal(t, int64(100), tp.custodyBalance(t, vet, alice))

	require.NoError(t, tp.Stake(alice, big.NewInt(60)))

	_, err := tp.Withdraw(alice, big.NewInt(0))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = tp.Withdraw(alice, big.NewInt(61))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)

	_, _, err = tp.Exit(bob)
	assert.ErrorIs(t, err, reverts.ErrNothingToWithdraw)

	supply, err := tp.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, int64(60), supply.Int64())
}

func TestRewardAccrual(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice, bob)

	NewSequence(tp).
		Stake(alice, 100).
		FundAndNotify(vtho, 1000). // 10 per second for 100 seconds
		Advance(50).
		AddFunc(func(t *testing.T) {
			assert.Equal(t, int64(500), tp.earned(t, alice, vtho))
		}).
		Stake(bob, 100).
		Advance(50).
		AddFunc(func(t *testing.T) {
			assert.Equal(t, int64(750), tp.earned(t, alice, vtho))
			assert.Equal(t, int64(250), tp.earned(t, bob, vtho))
		}).
		Advance(100).
		AddFunc(func(t *testing.T) {
			// nothing accrues after the period finished
			assert.Equal(t, int64(750), tp.earned(t, alice, vtho))
			assert.Equal(t, int64(250), tp.earned(t, bob, vtho))
			assert.Equal(t, int64(0), tp.earned(t, alice, vet))
		}).
		Run(t)

	applicable, err := tp.LastTimeRewardApplicable(vtho)
	require.NoError(t, err)
	assert.Equal(t, startTime+testDuration, applicable)
}

func TestIdempotentClaim(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)

	NewSequence(tp).
		Stake(alice, 100).
		FundAndNotify(vtho, 1000).
		Advance(testDuration).
		Run(t)

	paid, err := tp.GetReward(alice)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, vtho, paid[0].Asset)
	assert.Equal(t, int64(1000), paid[0].Amount.Int64())

	paid, err = tp.Claim(alice)
	require.NoError(t, err)
	assert.Empty(t, paid)

	assert.Equal(t, int64(2000), tp.custodyBalance(t, vtho, alice))
	assert.Equal(t, int64(0), tp.earned(t, alice, vtho))

	a, err := tp.AssetState(vtho)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), a.Notified.Int64())
	assert.Equal(t, int64(1000), a.Paid.Int64())
}

func TestExitClaimsAndWithdraws(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)

	NewSequence(tp).
		Stake(alice, 100).
		FundAndNotify(vtho, 1000).
		Advance(testDuration).
		Run(t)

	paid, w, err := tp.Exit(alice)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, int64(1000), paid[0].Amount.Int64())
	assert.Equal(t, int64(100), w.Amount.Int64())
	assert.Equal(t, int64(50), w.Payout.Int64())
	assert.Equal(t, int64(0), tp.balance(t, alice))

	// the account survives with nothing left to claim
	paid, err = tp.GetReward(alice)
	require.NoError(t, err)
	assert.Empty(t, paid)
}

func TestCalculatePotentialReward(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)

	NewSequence(tp).
		Stake(alice, 100).
		FundAndNotify(vtho, 1000).
		Run(t)

	potential, err := tp.CalculatePotentialReward(vtho, alice, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(300), potential.Int64())

	beyond, err := tp.CalculatePotentialReward(vtho, alice, 10*testDuration)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), beyond.Int64())

	tp.clock.Advance(30)
	assert.Equal(t, potential.Int64(), tp.earned(t, alice, vtho))

	_, err = tp.CalculatePotentialReward(core.BytesToAddress([]byte("nope")), alice, 0)
	assert.ErrorIs(t, err, reverts.ErrUnknownAsset)
}

func TestCalculatePotentialRewardSaturates(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)

	NewSequence(tp).
		Stake(alice, 1000).
		FundAndNotify(vtho, 10000).
		Advance(50).
		Run(t)

	now := tp.earned(t, alice, vtho)
	assert.Equal(t, int64(5000), now)

	for _, ahead := range []uint64{1 << 40, math.MaxUint64 - startTime, math.MaxUint64} {
		v, err := tp.CalculatePotentialReward(vtho, alice, ahead)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), v.Int64(), "ahead %d", ahead)
	}
}

func TestRewardTooHigh(t *testing.T) {
	tp := newTestPool(t)
	require.NoError(t, tp.Mint(owner, vtho, poolAddr, big.NewInt(1000)))

	assert.ErrorIs(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(1100)), reverts.ErrRewardTooHigh)
	require.NoError(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(1000)))

	a, err := tp.AssetState(vtho)
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.RewardRate.Int64())
	assert.Equal(t, startTime+testDuration, a.PeriodFinish)

	// leftover of the running period is carried over
	tp.clock.Advance(50)
	require.NoError(t, tp.Mint(owner, vtho, poolAddr, big.NewInt(500)))
	require.NoError(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(500)))
	a, _ = tp.AssetState(vtho)
	assert.Equal(t, int64(10), a.RewardRate.Int64())
	assert.Equal(t, startTime+50+testDuration, a.PeriodFinish)
	assert.Equal(t, int64(1500), a.Notified.Int64())
}

func TestRewardTooHighStakingAsset(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice)
	require.NoError(t, tp.Stake(alice, big.NewInt(100)))

	// staked principal is never promised as reward
	assert.ErrorIs(t, tp.NotifyRewardAmount(distributor, vet, big.NewInt(100)), reverts.ErrRewardTooHigh)

	require.NoError(t, tp.Mint(owner, vet, poolAddr, big.NewInt(100)))
	require.NoError(t, tp.NotifyRewardAmount(distributor, vet, big.NewInt(100)))

	tp.clock.Advance(testDuration)
	paid, w, err := tp.Exit(alice)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, int64(100), paid[0].Amount.Int64())
	assert.Equal(t, int64(50), w.Payout.Int64())
	assert.Equal(t, int64(0), tp.custodyBalance(t, vet, poolAddr))
}

func TestNotifyFailures(t *testing.T) {
	tp := newTestPool(t)

	assert.ErrorIs(t, tp.NotifyRewardAmount(alice, vtho, big.NewInt(1)), reverts.ErrUnauthorized)
	assert.ErrorIs(t, tp.NotifyRewardAmount(distributor, carol, big.NewInt(1)), reverts.ErrUnknownAsset)
	assert.ErrorIs(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(-1)), reverts.ErrInvalidAmount)

	// zero only settles
	require.NoError(t, tp.NotifyRewardAmount(distributor, vtho, new(big.Int)))
	a, err := tp.AssetState(vtho)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), a.PeriodFinish)
	assert.Equal(t, 0, a.Notified.Sign())

	assert.ErrorIs(t, tp.FundAndNotify(distributor, vtho, big.NewInt(10)), reverts.ErrInsufficientBalance)
}

func TestDurationLock(t *testing.T) {
	tp := newTestPool(t)
	require.NoError(t, tp.Mint(owner, vtho, poolAddr, big.NewInt(2000)))
	require.NoError(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(1000)))

	tp.clock.Advance(testDuration - 1)
	assert.ErrorIs(t, tp.SetRewardsDuration(owner, vtho, 200), reverts.ErrDurationLocked)

	tp.clock.Advance(1)
	assert.ErrorIs(t, tp.SetRewardsDuration(alice, vtho, 200), reverts.ErrUnauthorized)
	assert.ErrorIs(t, tp.SetRewardsDuration(owner, vtho, 0), reverts.ErrInvalidAmount)
	require.NoError(t, tp.SetRewardsDuration(owner, vtho, 200))

	require.NoError(t, tp.NotifyRewardAmount(distributor, vtho, big.NewInt(1000)))
	a, err := tp.AssetState(vtho)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.RewardRate.Int64())
	assert.Equal(t, startTime+testDuration+200, a.PeriodFinish)

	forDuration, err := tp.GetRewardForDuration(vtho)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), forDuration.Int64())
}

func TestAddRewardAsset(t *testing.T) {
	tp := newTestPool(t)
	b3tr := core.BytesToAddress([]byte("b3tr"))

	assert.ErrorIs(t, tp.AddRewardAsset(alice, b3tr, 0), reverts.ErrUnauthorized)
	require.NoError(t, tp.AddRewardAsset(owner, b3tr, 0))
	assert.ErrorIs(t, tp.AddRewardAsset(owner, b3tr, 0), reverts.ErrAssetAlreadyRegistered)
	assert.ErrorIs(t, tp.AddRewardAsset(owner, core.Address{}, 0), reverts.ErrInvalidAddress)

	a, err := tp.AssetState(b3tr)
	require.NoError(t, err)
	assert.Equal(t, testDuration, a.Duration)

	assets, _ := tp.RewardAssets()
	assert.Equal(t, []core.Address{vtho, vet, b3tr}, assets)

	n, err := tp.RewardAssetCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
	for i, want := range assets {
		got, err := tp.RewardAssetAt(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = tp.RewardAssetAt(n)
	assert.ErrorIs(t, err, reverts.ErrUnknownAsset)
}

func TestOwnerSetters(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 100, bob)

	assert.ErrorIs(t, tp.SetPenaltySink(alice, bob), reverts.ErrUnauthorized)
	assert.ErrorIs(t, tp.SetPenaltySink(owner, core.Address{}), reverts.ErrInvalidAddress)
	assert.ErrorIs(t, tp.SetRewardDistributor(owner, core.Address{}), reverts.ErrInvalidAddress)
	assert.ErrorIs(t, tp.TransferOwnership(owner, core.Address{}), reverts.ErrInvalidAddress)
	require.NoError(t, tp.SetPenaltySink(owner, bob))
	require.NoError(t, tp.SetRewardDistributor(owner, carol))
	require.NoError(t, tp.TransferOwnership(owner, alice))

	s, _ := tp.PenaltySink()
	assert.Equal(t, bob, s)
	d, _ := tp.RewardDistributor()
	assert.Equal(t, carol, d)
	assert.ErrorIs(t, tp.SetPenaltySink(owner, carol), reverts.ErrUnauthorized)
	require.NoError(t, tp.SetPenaltySink(alice, carol))

	// retained principal follows the new sink
	require.NoError(t, tp.Stake(bob, big.NewInt(100)))
	_, err := tp.Withdraw(bob, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(50), tp.custodyBalance(t, vet, carol))
}

func TestPause(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 100, alice)
	require.NoError(t, tp.Stake(alice, big.NewInt(10)))

	assert.ErrorIs(t, tp.Pause(alice), reverts.ErrUnauthorized)
	require.NoError(t, tp.Pause(owner))
	assert.ErrorIs(t, tp.Pause(owner), reverts.ErrPaused)

	paused, err := tp.Paused()
	require.NoError(t, err)
	assert.True(t, paused)

	assert.ErrorIs(t, tp.Stake(alice, big.NewInt(10)), reverts.ErrPaused)
	_, err = tp.Withdraw(alice, big.NewInt(10))
	assert.ErrorIs(t, err, reverts.ErrPaused)
	_, _, err = tp.Exit(alice)
	assert.ErrorIs(t, err, reverts.ErrPaused)
	_, err = tp.GetReward(alice)
	assert.ErrorIs(t, err, reverts.ErrPaused)
	assert.ErrorIs(t, tp.EnrollYieldRedirect(alice, 100), reverts.ErrPaused)

	require.NoError(t, tp.Unpause(owner))
	assert.ErrorIs(t, tp.Unpause(owner), reverts.ErrNotPaused)
	require.NoError(t, tp.Stake(alice, big.NewInt(10)))
}

func TestEnrollmentFlow(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 1000, alice, bob, carol)

	NewSequence(tp).
		OpenProgram(1).
		OpenProgram(2).
		Stake(alice, 100).
		Stake(bob, 50).
		Stake(carol, 10).
		Run(t)

	require.NoError(t, tp.EnrollMixed(alice, 5000, []investment.Allocation{{ProgramID: 1, Bps: 5000}}))
	require.NoError(t, tp.EnrollYieldRedirect(bob, 10000))
	assert.ErrorIs(t, tp.EnrollAllocation(bob, 1, 100), reverts.ErrAlreadyEnrolled)
	assert.ErrorIs(t, tp.EnrollAllocation(carol, 3, 100), reverts.ErrInvalidProgram)
	assert.ErrorIs(t, tp.EnrollMixed(carol, 5000, []investment.Allocation{{ProgramID: 2, Bps: 5001}}), reverts.ErrInvalidPercentageSum)
	require.NoError(t, tp.EnrollMixed(carol, 5000, []investment.Allocation{{ProgramID: 2, Bps: 5000}}))

	tp.fund(t, 10, core.BytesToAddress([]byte("dave")))
	assert.ErrorIs(t, tp.EnrollYieldRedirect(core.BytesToAddress([]byte("dave")), 1), reverts.ErrNoStake)

	assertAggregates := func(yield, alloc1, alloc2 int64) {
		t.Helper()
		v, err := tp.AggregateYieldRedirectSupply()
		require.NoError(t, err)
		assert.Equal(t, yield, v.Int64())
		v, _ = tp.AggregateAllocationSupply(1)
		assert.Equal(t, alloc1, v.Int64())
		v, _ = tp.AggregateAllocationSupply(2)
		assert.Equal(t, alloc2, v.Int64())
	}
	assertAggregates(160, 100, 10)

	members, err := tp.YieldRedirectParticipants()
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Address{alice, bob, carol}, members)
	members, _ = tp.AllocationParticipants(1)
	assert.Equal(t, []core.Address{alice}, members)

	// balance changes flow into the aggregates
	require.NoError(t, tp.Stake(alice, big.NewInt(20)))
	assertAggregates(180, 120, 10)
	_, err = tp.Withdraw(alice, big.NewInt(20))
	require.NoError(t, err)
	assertAggregates(160, 100, 10)

	// closing a program keeps existing enrollments
	require.NoError(t, tp.CloseProgram(owner, 1))
	open, _ := tp.IsProgramOpen(1)
	assert.False(t, open)
	assertAggregates(160, 100, 10)

	// a full withdrawal inside the enrollment window reverts entirely
	_, err = tp.Withdraw(bob, big.NewInt(50))
	assert.ErrorIs(t, err, reverts.ErrTooEarly)
	assert.Equal(t, int64(50), tp.balance(t, bob))
	assert.Equal(t, int64(950), tp.custodyBalance(t, vet, bob))
	assert.Equal(t, int64(10), tp.custodyBalance(t, vet, sink))
	assertAggregates(160, 100, 10)

	assert.ErrorIs(t, tp.Deactivate(alice), reverts.ErrTooEarly)
	assert.ErrorIs(t, tp.ChangeEnrollment(carol, investment.Spec{}), reverts.ErrTooEarly)

	tp.clock.Advance(testLockWindow)

	_, err = tp.Withdraw(bob, big.NewInt(50))
	require.NoError(t, err)
	assertAggregates(110, 100, 10)
	_, enrolled, err := tp.Enrollment(bob)
	require.NoError(t, err)
	assert.False(t, enrolled)

	require.NoError(t, tp.Deactivate(alice))
	assertAggregates(10, 0, 10)
	require.NoError(t, tp.Deactivate(alice))

	require.NoError(t, tp.ChangeEnrollment(carol, investment.Spec{}))
	assertAggregates(0, 0, 0)
	members, _ = tp.YieldRedirectParticipants()
	assert.Empty(t, members)
}

func TestExemptFromRestrictions(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 100, alice)
	require.NoError(t, tp.Stake(alice, big.NewInt(100)))
	require.NoError(t, tp.EnrollYieldRedirect(alice, 10000))

	assert.ErrorIs(t, tp.ExemptFromRestrictions(alice, alice, true), reverts.ErrUnauthorized)
	require.NoError(t, tp.ExemptFromRestrictions(owner, alice, true))
	exempt, err := tp.IsExempt(alice)
	require.NoError(t, err)
	assert.True(t, exempt)

	_, _, err = tp.Exit(alice)
	require.NoError(t, err)
	_, enrolled, _ := tp.Enrollment(alice)
	assert.False(t, enrolled)

	require.NoError(t, tp.ExemptFromRestrictions(owner, alice, false))
	exempt, _ = tp.IsExempt(alice)
	assert.False(t, exempt)
}

func TestPersistence(t *testing.T) {
	tp := newTestPool(t)
	tp.fund(t, 100, alice)
	require.NoError(t, tp.Stake(alice, big.NewInt(100)))
	require.NoError(t, tp.TransferOwnership(owner, bob))
	_, err := tp.Withdraw(alice, big.NewInt(1000))
	require.Error(t, err)

	reopened := openTestPool(t, tp.db, tp.clock)
	assert.Equal(t, int64(100), reopened.balance(t, alice))
	assert.Equal(t, int64(100), reopened.custodyBalance(t, vet, poolAddr))

	// stored owner wins over the config
	o, err := reopened.Owner()
	require.NoError(t, err)
	assert.Equal(t, bob, o)
}

// taxedCustody keeps one unit of every incoming transfer.
type taxedCustody struct {
	*custody.Ledger
	holder core.Address
}

func (c *taxedCustody) TransferIn(asset, from core.Address, amount *big.Int) error {
	if err := c.Transfer(asset, from, c.holder, new(big.Int).Sub(amount, big.NewInt(1))); err != nil {
		return err
	}
	return c.Transfer(asset, from, core.BytesToAddress([]byte("tax")), big.NewInt(1))
}

func TestTransferShortfall(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	ledger := custody.NewLedger(solidity.NewContext(custodyAddr, st), poolAddr)
	p, err := New(poolAddr, st, &taxedCustody{Ledger: ledger, holder: poolAddr}, NewManualClock(startTime), testConfig())
	require.NoError(t, err)

	require.NoError(t, p.Mint(owner, vet, alice, big.NewInt(100)))
	assert.ErrorIs(t, p.Stake(alice, big.NewInt(100)), reverts.ErrTransferShortfall)

	bal, err := ledger.BalanceOf(vet, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal.Int64())
	supply, _ := p.TotalSupply()
	assert.Equal(t, 0, supply.Sign())
}

// plainCustody hides the ledger's Mint.
type plainCustody struct {
	custody.Custody
}

func TestMintUnsupported(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	ledger := custody.NewLedger(solidity.NewContext(custodyAddr, st), poolAddr)
	p, err := New(poolAddr, st, plainCustody{ledger}, NewManualClock(startTime), testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, p.Mint(owner, vet, alice, big.NewInt(100)), reverts.ErrUnsupported)
	assert.ErrorIs(t, p.Mint(alice, vet, alice, big.NewInt(100)), reverts.ErrUnauthorized)
}
