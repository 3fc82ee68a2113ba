// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/admin/apilogs"
	"github.com/vechain/rewardpool/api/admin/loglevel"
	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
)

// Admin serves the privileged pool operations. Authorization is the pool's job:
// the caller named in the body must hold the role the operation requires.
type Admin struct {
	pool       *pool.Pool
	logLevel   *slog.LevelVar
	apiLogging *atomic.Bool
}

// New creates the admin routes. logLevel and apiLogging may be nil, which leaves
// the corresponding runtime switches unmounted.
func New(pool *pool.Pool, logLevel *slog.LevelVar, apiLogging *atomic.Bool) *Admin {
	return &Admin{pool, logLevel, apiLogging}
}

func parse(req *http.Request, v any) error {
	if err := utils.ParseJSON(req.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

func (a *Admin) handleNotify(w http.ResponseWriter, req *http.Request) error {
	var body NotifyRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if body.Fund {
		err = a.pool.FundAndNotify(body.Caller, body.Asset, amount)
	} else {
		err = a.pool.NotifyRewardAmount(body.Caller, body.Asset, amount)
	}
	if err != nil {
		return err
	}
	return a.writeAsset(w, body.Asset)
}

func (a *Admin) handleDuration(w http.ResponseWriter, req *http.Request) error {
	var body DurationRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	if err := a.pool.SetRewardsDuration(body.Caller, body.Asset, body.Duration); err != nil {
		return err
	}
	return a.writeAsset(w, body.Asset)
}

func (a *Admin) handleAddAsset(w http.ResponseWriter, req *http.Request) error {
	var body DurationRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	if err := a.pool.AddRewardAsset(body.Caller, body.Asset, body.Duration); err != nil {
		return err
	}
	return a.writeAsset(w, body.Asset)
}

func (a *Admin) writeAsset(w http.ResponseWriter, asset core.Address) error {
	s, err := a.pool.AssetState(asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{
		"asset":        s.Asset,
		"rewardRate":   s.RewardRate.String(),
		"periodFinish": s.PeriodFinish,
		"duration":     s.Duration,
	})
}

func (a *Admin) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if err := a.pool.Mint(body.Caller, body.Asset, body.Holder, amount); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"minted": amount.String()})
}

func (a *Admin) handlePause(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	if err := a.pool.Pause(body.Caller); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"paused": true})
}

func (a *Admin) handleUnpause(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	if err := a.pool.Unpause(body.Caller); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"paused": false})
}

func (a *Admin) handleSetAddress(set func(caller, addr core.Address) error) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body AddressRequest
		if err := parse(req, &body); err != nil {
			return err
		}
		if err := set(body.Caller, body.Address); err != nil {
			return err
		}
		return utils.WriteJSON(w, utils.M{"address": body.Address})
	}
}

func (a *Admin) handleExempt(w http.ResponseWriter, req *http.Request) error {
	var body ExemptRequest
	if err := parse(req, &body); err != nil {
		return err
	}
	if err := a.pool.ExemptFromRestrictions(body.Caller, body.Account, body.Exempt); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"account": body.Account, "exempt": body.Exempt})
}

func (a *Admin) handleProgram(open bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := utils.Uint64Var(mux.Vars(req), "id")
		if err != nil {
			return err
		}
		var body CallerRequest
		if err := parse(req, &body); err != nil {
			return err
		}
		if open {
			err = a.pool.OpenProgram(body.Caller, id)
		} else {
			err = a.pool.CloseProgram(body.Caller, id)
		}
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, utils.M{"id": id, "open": open})
	}
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/notify").
		Methods(http.MethodPost).
		Name("POST /admin/notify").
		HandlerFunc(utils.WrapHandlerFunc(a.handleNotify))
	sub.Path("/duration").
		Methods(http.MethodPost).
		Name("POST /admin/duration").
		HandlerFunc(utils.WrapHandlerFunc(a.handleDuration))
	sub.Path("/assets").
		Methods(http.MethodPost).
		Name("POST /admin/assets").
		HandlerFunc(utils.WrapHandlerFunc(a.handleAddAsset))
	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("POST /admin/mint").
		HandlerFunc(utils.WrapHandlerFunc(a.handleMint))
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("POST /admin/pause").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePause))
	sub.Path("/unpause").
		Methods(http.MethodPost).
		Name("POST /admin/unpause").
		HandlerFunc(utils.WrapHandlerFunc(a.handleUnpause))
	sub.Path("/penalty-sink").
		Methods(http.MethodPost).
		Name("POST /admin/penalty-sink").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetAddress(a.pool.SetPenaltySink)))
	sub.Path("/distributor").
		Methods(http.MethodPost).
		Name("POST /admin/distributor").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetAddress(a.pool.SetRewardDistributor)))
	sub.Path("/owner").
		Methods(http.MethodPost).
		Name("POST /admin/owner").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetAddress(a.pool.TransferOwnership)))
	sub.Path("/exempt").
		Methods(http.MethodPost).
		Name("POST /admin/exempt").
		HandlerFunc(utils.WrapHandlerFunc(a.handleExempt))
	sub.Path("/programs/{id:[0-9]+}/open").
		Methods(http.MethodPost).
		Name("POST /admin/programs/{id}/open").
		HandlerFunc(utils.WrapHandlerFunc(a.handleProgram(true)))
	sub.Path("/programs/{id:[0-9]+}/close").
		Methods(http.MethodPost).
		Name("POST /admin/programs/{id}/close").
		HandlerFunc(utils.WrapHandlerFunc(a.handleProgram(false)))

	if a.logLevel != nil {
		loglevel.New(a.logLevel).Mount(sub, "/loglevel")
	}
	if a.apiLogging != nil {
		apilogs.New(a.apiLogging).Mount(sub, "/apilogs")
	}
}
