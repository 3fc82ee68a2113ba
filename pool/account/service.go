// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/reward"
	"github.com/vechain/rewardpool/solidity"
)

var (
	slotAccounts    = core.BytesToBytes32([]byte("accounts"))
	slotCheckpoints = core.BytesToBytes32([]byte("reward-checkpoints"))
)

// Service stores participant accounts and their reward checkpoints.
type Service struct {
	accounts    *solidity.Mapping[core.Address, *Account]
	checkpoints *solidity.Mapping[core.Bytes32, *Checkpoint]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		accounts:    solidity.NewMapping[core.Address, *Account](sctx, slotAccounts),
		checkpoints: solidity.NewMapping[core.Bytes32, *Checkpoint](sctx, slotCheckpoints),
	}
}

func checkpointKey(participant, asset core.Address) core.Bytes32 {
	return core.Blake2b(participant.Bytes(), asset.Bytes())
}

// Get returns the account of participant. Unknown participants get an empty account.
func (s *Service) Get(participant core.Address) (*Account, error) {
	acc, err := s.accounts.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	acc.Balance = acc.balance()
	return acc, nil
}

func (s *Service) set(participant core.Address, acc *Account) error {
	if err := s.accounts.Set(participant, acc); err != nil {
		return errors.Wrap(err, "set account")
	}
	return nil
}

// BalanceOf returns the staked balance of participant.
func (s *Service) BalanceOf(participant core.Address) (*big.Int, error) {
	acc, err := s.Get(participant)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// Checkpoint returns the reward checkpoint of participant for asset.
func (s *Service) Checkpoint(participant, asset core.Address) (*Checkpoint, error) {
	cp, err := s.checkpoints.Get(checkpointKey(participant, asset))
	if err != nil {
		return nil, errors.Wrap(err, "get checkpoint")
	}
	cp.RewardPerTokenPaid = cp.paid()
	cp.Accrued = cp.accrued()
	return cp, nil
}

func (s *Service) setCheckpoint(participant, asset core.Address, cp *Checkpoint) error {
	if err := s.checkpoints.Set(checkpointKey(participant, asset), cp); err != nil {
		return errors.Wrap(err, "set checkpoint")
	}
	return nil
}

// Earned returns the reward owed to participant given the current accumulator value.
func (s *Service) Earned(participant, asset core.Address, rewardPerToken *big.Int) (*big.Int, error) {
	acc, err := s.Get(participant)
	if err != nil {
		return nil, err
	}
	cp, err := s.Checkpoint(participant, asset)
	if err != nil {
		return nil, err
	}
	return reward.Earned(acc.Balance, rewardPerToken, cp.RewardPerTokenPaid, cp.Accrued), nil
}

// Settle moves the reward earned since the last checkpoint into the accrued bucket.
func (s *Service) Settle(participant, asset core.Address, rewardPerToken *big.Int) error {
	earned, err := s.Earned(participant, asset, rewardPerToken)
	if err != nil {
		return err
	}
	return s.setCheckpoint(participant, asset, &Checkpoint{
		RewardPerTokenPaid: new(big.Int).Set(rewardPerToken),
		Accrued:            earned,
	})
}

// TakeAccrued zeroes the accrued bucket and returns what it held.
// The participant must be settled for asset beforehand.
func (s *Service) TakeAccrued(participant, asset core.Address) (*big.Int, error) {
	cp, err := s.Checkpoint(participant, asset)
	if err != nil {
		return nil, err
	}
	amount := cp.Accrued
	if amount.Sign() == 0 {
		return amount, nil
	}
	cp.Accrued = new(big.Int)
	if err := s.setCheckpoint(participant, asset, cp); err != nil {
		return nil, err
	}
	return amount, nil
}

// AddStake increases the balance and restarts the exit penalty clock.
// It returns the balance before and after.
func (s *Service) AddStake(participant core.Address, amount *big.Int, now uint64) (*big.Int, *big.Int, error) {
	acc, err := s.Get(participant)
	if err != nil {
		return nil, nil, err
	}
	old := new(big.Int).Set(acc.Balance)
	acc.Balance = new(big.Int).Add(acc.Balance, amount)
	acc.LastStakeTime = now
	if err := s.set(participant, acc); err != nil {
		return nil, nil, err
	}
	return old, acc.Balance, nil
}

// SubStake decreases the balance, keeping the penalty clock. The caller checks the amount.
func (s *Service) SubStake(participant core.Address, amount *big.Int) (*Account, *big.Int, error) {
	acc, err := s.Get(participant)
	if err != nil {
		return nil, nil, err
	}
	old := new(big.Int).Set(acc.Balance)
	acc.Balance = new(big.Int).Sub(acc.Balance, amount)
	if err := s.set(participant, acc); err != nil {
		return nil, nil, err
	}
	return acc, old, nil
}
