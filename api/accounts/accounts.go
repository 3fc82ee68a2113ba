// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/pool/investment"
)

type Accounts struct {
	pool *pool.Pool
}

func New(pool *pool.Pool) *Accounts {
	return &Accounts{pool}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	acc, err := a.pool.Account(addr)
	if err != nil {
		return err
	}
	assets, err := a.pool.RewardAssets()
	if err != nil {
		return err
	}
	earned := make([]AssetAmount, 0, len(assets))
	for _, asset := range assets {
		v, err := a.pool.Earned(addr, asset)
		if err != nil {
			return err
		}
		earned = append(earned, AssetAmount{Asset: asset, Amount: hexOrDecimal(v)})
	}
	res := &Account{
		Address:       addr,
		Balance:       hexOrDecimal(acc.Balance),
		LastStakeTime: acc.LastStakeTime,
		Earned:        earned,
	}
	e, enrolled, err := a.pool.Enrollment(addr)
	if err != nil {
		return err
	}
	if enrolled {
		res.Enrollment = convertEnrollment(e)
	}
	return utils.WriteJSON(w, res)
}

func (a *Accounts) handleGetEarned(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	addr, err := utils.AddressVar(vars, "address")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(vars, "asset")
	if err != nil {
		return err
	}
	v, err := a.pool.Earned(addr, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &AssetAmount{Asset: asset, Amount: hexOrDecimal(v)})
}

func (a *Accounts) handleGetPotential(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	addr, err := utils.AddressVar(vars, "address")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(vars, "asset")
	if err != nil {
		return err
	}
	var seconds uint64
	if s := req.URL.Query().Get("seconds"); s != "" {
		if seconds, err = strconv.ParseUint(s, 10, 64); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "seconds"))
		}
	}
	v, err := a.pool.CalculatePotentialReward(asset, addr, seconds)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &AssetAmount{Asset: asset, Amount: hexOrDecimal(v)})
}

func (a *Accounts) handleStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if err := a.pool.Stake(addr, amount); err != nil {
		return err
	}
	balance, err := a.pool.BalanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"balance": hexOrDecimal(balance)})
}

func (a *Accounts) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	res, err := a.pool.Withdraw(addr, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertWithdrawal(res))
}

func (a *Accounts) handleExit(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	paid, res, err := a.pool.Exit(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ExitResult{Rewards: convertPayments(paid), Withdrawal: convertWithdrawal(res)})
}

func (a *Accounts) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	paid, err := a.pool.GetReward(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPayments(paid))
}

func (a *Accounts) handleEnroll(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	var spec investment.Spec
	if err := utils.ParseJSON(req.Body, &spec); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Method == http.MethodPut {
		err = a.pool.ChangeEnrollment(addr, spec)
	} else {
		err = a.pool.Enroll(addr, spec)
	}
	if err != nil {
		return err
	}
	return a.writeEnrollment(w, addr)
}

func (a *Accounts) handleDeactivate(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	if err := a.pool.Deactivate(addr); err != nil {
		return err
	}
	return a.writeEnrollment(w, addr)
}

func (a *Accounts) handleGetEnrollment(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(mux.Vars(req), "address")
	if err != nil {
		return err
	}
	return a.writeEnrollment(w, addr)
}

func (a *Accounts) writeEnrollment(w http.ResponseWriter, addr core.Address) error {
	e, enrolled, err := a.pool.Enrollment(addr)
	if err != nil {
		return err
	}
	if !enrolled {
		return utils.WriteJSON(w, nil)
	}
	return utils.WriteJSON(w, convertEnrollment(e))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/earned/{asset}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/earned/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetEarned))
	sub.Path("/{address}/potential/{asset}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/potential/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetPotential))
	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/stake").
		HandlerFunc(utils.WrapHandlerFunc(a.handleStake))
	sub.Path("/{address}/withdraw").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(a.handleWithdraw))
	sub.Path("/{address}/exit").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/exit").
		HandlerFunc(utils.WrapHandlerFunc(a.handleExit))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/claim").
		HandlerFunc(utils.WrapHandlerFunc(a.handleClaim))
	sub.Path("/{address}/enrollment").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/enrollment").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetEnrollment))
	sub.Path("/{address}/enrollment").
		Methods(http.MethodPost, http.MethodPut).
		Name("POST /accounts/{address}/enrollment").
		HandlerFunc(utils.WrapHandlerFunc(a.handleEnroll))
	sub.Path("/{address}/enrollment").
		Methods(http.MethodDelete).
		Name("DELETE /accounts/{address}/enrollment").
		HandlerFunc(utils.WrapHandlerFunc(a.handleDeactivate))
}
