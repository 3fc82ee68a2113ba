// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/solidity"
)

// Keys of the governance parameters of a pool.
var (
	KeyOwner             = core.BytesToBytes32([]byte("owner"))
	KeyRewardDistributor = core.BytesToBytes32([]byte("reward-distributor"))
	KeyPenaltySink       = core.BytesToBytes32([]byte("penalty-sink"))
	KeyPaused            = core.BytesToBytes32([]byte("paused"))
	KeyInitialized       = core.BytesToBytes32([]byte("initialized"))
)

var slotParams = core.BytesToBytes32([]byte("params"))

// Params binder of the pool's parameter table.
type Params struct {
	values *solidity.Mapping[core.Bytes32, *big.Int]
}

func New(sctx *solidity.Context) *Params {
	return &Params{values: solidity.NewMapping[core.Bytes32, *big.Int](sctx, slotParams)}
}

// Get returns the param value, zero when unset.
func (p *Params) Get(key core.Bytes32) (*big.Int, error) {
	v, err := p.values.Get(key)
	if err != nil {
		return nil, errors.Wrapf(err, "get param %v", key.AbbrevString())
	}
	return v, nil
}

// Set stores the param value. Zero clears it.
func (p *Params) Set(key core.Bytes32, value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		p.values.Delete(key)
		return nil
	}
	if err := p.values.Set(key, value); err != nil {
		return errors.Wrapf(err, "set param %v", key.AbbrevString())
	}
	return nil
}

func (p *Params) GetAddress(key core.Bytes32) (core.Address, error) {
	v, err := p.Get(key)
	if err != nil {
		return core.Address{}, err
	}
	return core.BytesToAddress(v.Bytes()), nil
}

func (p *Params) SetAddress(key core.Bytes32, addr core.Address) error {
	return p.Set(key, new(big.Int).SetBytes(addr.Bytes()))
}

func (p *Params) GetBool(key core.Bytes32) (bool, error) {
	v, err := p.Get(key)
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

func (p *Params) SetBool(key core.Bytes32, b bool) error {
	if b {
		return p.Set(key, big.NewInt(1))
	}
	return p.Set(key, nil)
}
