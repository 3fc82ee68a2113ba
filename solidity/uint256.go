// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
)

// ErrUnderflow is returned when a subtraction would make a stored amount negative.
var ErrUnderflow = errors.New("uint256 underflow")

// Uint256 is a wrapper for storage and retrieval of a non-negative big integer,
// similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     core.Bytes32
}

func NewUint256(context *Context, pos core.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	value := new(big.Int)
	err := u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (u *Uint256) Set(value *big.Int) {
	if value == nil || value.Sign() == 0 {
		u.context.state.SetRawStorage(u.context.address, u.pos, nil)
		return
	}
	raw, _ := rlp.EncodeToBytes(value)
	u.context.state.SetRawStorage(u.context.address, u.pos, raw)
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	u.Set(storage.Add(storage, value))
	return nil
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Cmp(value) < 0 {
		return errors.Wrapf(ErrUnderflow, "%s - %s", storage, value)
	}
	u.Set(storage.Sub(storage, value))
	return nil
}
