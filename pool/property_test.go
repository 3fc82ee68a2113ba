// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/investment"
	"github.com/vechain/rewardpool/pool/reverts"
)

var participants = []core.Address{alice, bob, carol}

func drawParticipant(rt *rapid.T) core.Address {
	return rapid.SampledFrom(participants).Draw(rt, "participant")
}

func notifyDrawn(rt *rapid.T, tp *testPool) {
	amount := big.NewInt(rapid.Int64Range(1, 1_000_000).Draw(rt, "reward"))
	require.NoError(rt, tp.Mint(distributor, vtho, distributor, amount))
	if err := tp.FundAndNotify(distributor, vtho, amount); err != nil {
		require.ErrorIs(rt, err, reverts.ErrRewardTooHigh)
	}
}

func TestPotentialRewardIsExact(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tp := newTestPool(rt)
		tp.fund(rt, 1_000_000_000, participants...)

		for _, p := range participants {
			if amount := rapid.Int64Range(0, 1_000_000).Draw(rt, "stake"); amount > 0 {
				require.NoError(rt, tp.Stake(p, big.NewInt(amount)))
			}
		}
		notifyDrawn(rt, tp)
		tp.clock.Advance(rapid.Uint64Range(0, 2*testDuration).Draw(rt, "warmup"))
		if rapid.Bool().Draw(rt, "renotify") {
			notifyDrawn(rt, tp)
		}

		ahead := rapid.Uint64Range(0, 3*testDuration).Draw(rt, "ahead")
		potential := make(map[core.Address]*big.Int)
		for _, p := range participants {
			v, err := tp.CalculatePotentialReward(vtho, p, ahead)
			require.NoError(rt, err)
			potential[p] = v
		}

		tp.clock.Advance(ahead)
		for _, p := range participants {
			earned, err := tp.Earned(p, vtho)
			require.NoError(rt, err)
			require.Zero(rt, earned.Cmp(potential[p]), "participant %s: earned %s, projected %s", p, earned, potential[p])
		}
	})
}

func TestRewardConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tp := newTestPool(rt)
		tp.fund(rt, 1_000_000_000, participants...)

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for range steps {
			p := drawParticipant(rt)
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				amount := rapid.Int64Range(1, 1_000_000).Draw(rt, "stake")
				require.NoError(rt, tp.Stake(p, big.NewInt(amount)))
			case 1:
				balance := tp.balance(rt, p)
				if balance == 0 {
					continue
				}
				amount := rapid.Int64Range(1, balance).Draw(rt, "withdraw")
				_, err := tp.Withdraw(p, big.NewInt(amount))
				require.NoError(rt, err)
			case 2:
				_, err := tp.GetReward(p)
				require.NoError(rt, err)
			case 3:
				notifyDrawn(rt, tp)
			case 4:
				tp.clock.Advance(rapid.Uint64Range(0, testDuration).Draw(rt, "advance"))
			}
			checkConservation(rt, tp)
		}
	})
}

// checkConservation asserts that what participants can claim plus what they claimed
// never exceeds what was notified and already emitted.
func checkConservation(rt *rapid.T, tp *testPool) {
	a, err := tp.AssetState(vtho)
	require.NoError(rt, err)

	owed := new(big.Int).Set(a.Paid)
	for _, p := range participants {
		earned, err := tp.Earned(p, vtho)
		require.NoError(rt, err)
		owed.Add(owed, earned)
	}

	limit := new(big.Int).Set(a.Notified)
	if now := tp.clock.Now(); now < a.PeriodFinish {
		future := new(big.Int).SetUint64(a.PeriodFinish - now)
		limit.Sub(limit, future.Mul(future, a.RewardRate))
	}
	require.LessOrEqual(rt, owed.Cmp(limit), 0, "owed %s exceeds emitted %s", owed, limit)
}

func drawSpec(rt *rapid.T) investment.Spec {
	spec := investment.Spec{YieldRedirectBps: rapid.Uint64Range(0, 6000).Draw(rt, "yieldBps")}
	for _, id := range []uint64{1, 2, 3} {
		if rapid.Bool().Draw(rt, "allocate") {
			spec.Allocations = append(spec.Allocations, investment.Allocation{
				ProgramID: id,
				Bps:       rapid.Uint64Range(0, 4000).Draw(rt, "allocationBps"),
			})
		}
	}
	return spec
}

func TestEnrollmentAggregates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tp := newTestPool(rt)
		tp.fund(rt, 1_000_000_000, participants...)
		require.NoError(rt, tp.OpenProgram(owner, 1))
		require.NoError(rt, tp.OpenProgram(owner, 2))

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for range steps {
			p := drawParticipant(rt)
			var err error
			switch rapid.IntRange(0, 5).Draw(rt, "op") {
			case 0:
				err = tp.Stake(p, big.NewInt(rapid.Int64Range(1, 1_000_000).Draw(rt, "stake")))
			case 1:
				if balance := tp.balance(rt, p); balance > 0 {
					_, err = tp.Withdraw(p, big.NewInt(rapid.Int64Range(1, balance).Draw(rt, "withdraw")))
				}
			case 2:
				err = tp.Enroll(p, drawSpec(rt))
			case 3:
				err = tp.ChangeEnrollment(p, drawSpec(rt))
			case 4:
				err = tp.Deactivate(p)
			case 5:
				tp.clock.Advance(rapid.Uint64Range(0, 2*testLockWindow).Draw(rt, "advance"))
			}
			if err != nil {
				require.True(rt, reverts.IsRevertErr(err), "unexpected failure: %v", err)
			}
			checkAggregates(rt, tp)
		}
	})
}

// checkAggregates asserts every program aggregate equals the summed balance of its participants.
func checkAggregates(rt *rapid.T, tp *testPool) {
	keys := []investment.ProgramKey{investment.YieldRedirect, investment.AllocationKey(1), investment.AllocationKey(2), investment.AllocationKey(3)}
	want := make(map[investment.ProgramKey]*big.Int, len(keys))
	for _, k := range keys {
		want[k] = new(big.Int)
	}
	for _, p := range participants {
		e, enrolled, err := tp.Enrollment(p)
		require.NoError(rt, err)
		if !enrolled {
			continue
		}
		balance, err := tp.BalanceOf(p)
		require.NoError(rt, err)
		require.Positive(rt, balance.Sign(), "%s enrolled without stake", p)
		for _, k := range e.Spec().Keys() {
			want[k].Add(want[k], balance)
		}
	}
	for _, k := range keys {
		got, err := tp.Pool.aggregate(k)
		require.NoError(rt, err)
		require.Zero(rt, got.Cmp(want[k]), "program %x: aggregate %s, balances %s", k.Bytes(), got, want[k])
	}
}
