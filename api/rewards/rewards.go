// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
)

type Rewards struct {
	pool *pool.Pool
}

func New(pool *pool.Pool) *Rewards {
	return &Rewards{pool}
}

func (r *Rewards) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	stats, err := r.pool.Stats()
	if err != nil {
		return err
	}
	paused, err := r.pool.Paused()
	if err != nil {
		return err
	}
	assets, err := r.pool.RewardAssets()
	if err != nil {
		return err
	}
	res := &Pool{
		Address:          r.pool.Address(),
		StakingAsset:     r.pool.StakingAsset(),
		TotalSupply:      (*math.HexOrDecimal256)(stats.TotalSupply),
		PenaltyCollected: (*math.HexOrDecimal256)(stats.PenaltyCollected),
		Paused:           paused,
		RewardAssets:     assets,
	}
	if res.Owner, err = r.pool.Owner(); err != nil {
		return err
	}
	if res.RewardDistributor, err = r.pool.RewardDistributor(); err != nil {
		return err
	}
	if res.PenaltySink, err = r.pool.PenaltySink(); err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (r *Rewards) asset(asset core.Address) (*Asset, error) {
	s, err := r.pool.AssetState(asset)
	if err != nil {
		return nil, err
	}
	applicable, err := r.pool.LastTimeRewardApplicable(asset)
	if err != nil {
		return nil, err
	}
	forDuration, err := r.pool.GetRewardForDuration(asset)
	if err != nil {
		return nil, err
	}
	return convertAsset(s, applicable, (*math.HexOrDecimal256)(forDuration)), nil
}

func (r *Rewards) handleGetAssets(w http.ResponseWriter, _ *http.Request) error {
	assets, err := r.pool.RewardAssets()
	if err != nil {
		return err
	}
	res := make([]*Asset, 0, len(assets))
	for _, asset := range assets {
		a, err := r.asset(asset)
		if err != nil {
			return err
		}
		res = append(res, a)
	}
	return utils.WriteJSON(w, res)
}

func (r *Rewards) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(mux.Vars(req), "asset")
	if err != nil {
		return err
	}
	a, err := r.asset(asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, a)
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetPool))
	sub.Path("/assets").
		Methods(http.MethodGet).
		Name("GET /pool/assets").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetAssets))
	sub.Path("/assets/{asset}").
		Methods(http.MethodGet).
		Name("GET /pool/assets/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetAsset))
}
