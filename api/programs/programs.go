// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package programs

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
)

// Program is the aggregate view of one investment program.
type Program struct {
	ID           *uint64               `json:"id,omitempty"`
	Open         *bool                 `json:"open,omitempty"`
	Supply       *math.HexOrDecimal256 `json:"supply"`
	Participants []core.Address        `json:"participants"`
}

type Programs struct {
	pool *pool.Pool
}

func New(pool *pool.Pool) *Programs {
	return &Programs{pool}
}

func (p *Programs) handleGetOpen(w http.ResponseWriter, _ *http.Request) error {
	ids, err := p.pool.OpenPrograms()
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return utils.WriteJSON(w, ids)
}

func (p *Programs) handleGetYieldRedirect(w http.ResponseWriter, _ *http.Request) error {
	supply, err := p.pool.AggregateYieldRedirectSupply()
	if err != nil {
		return err
	}
	participants, err := p.pool.YieldRedirectParticipants()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Program{
		Supply:       (*math.HexOrDecimal256)(supply),
		Participants: nonNil(participants),
	})
}

func (p *Programs) handleGetProgram(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(mux.Vars(req), "id")
	if err != nil {
		return err
	}
	open, err := p.pool.IsProgramOpen(id)
	if err != nil {
		return err
	}
	supply, err := p.pool.AggregateAllocationSupply(id)
	if err != nil {
		return err
	}
	participants, err := p.pool.AllocationParticipants(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Program{
		ID:           &id,
		Open:         &open,
		Supply:       (*math.HexOrDecimal256)(supply),
		Participants: nonNil(participants),
	})
}

func nonNil(addrs []core.Address) []core.Address {
	if addrs == nil {
		return []core.Address{}
	}
	return addrs
}

func (p *Programs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /programs").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetOpen))
	sub.Path("/yield-redirect").
		Methods(http.MethodGet).
		Name("GET /programs/yield-redirect").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetYieldRedirect))
	sub.Path("/{id:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /programs/{id}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetProgram))
}
