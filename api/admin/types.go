// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import "github.com/vechain/rewardpool/core"

// CallerRequest is the body of calls that need nothing but the caller.
type CallerRequest struct {
	Caller core.Address `json:"caller"`
}

// NotifyRequest starts a reward period. With Fund set the amount is first
// transferred from the caller into the pool.
type NotifyRequest struct {
	Caller core.Address `json:"caller"`
	Asset  core.Address `json:"asset"`
	Amount string       `json:"amount"`
	Fund   bool         `json:"fund"`
}

type DurationRequest struct {
	Caller   core.Address `json:"caller"`
	Asset    core.Address `json:"asset"`
	Duration uint64       `json:"duration"`
}

type MintRequest struct {
	Caller core.Address `json:"caller"`
	Asset  core.Address `json:"asset"`
	Holder core.Address `json:"holder"`
	Amount string       `json:"amount"`
}

type AddressRequest struct {
	Caller  core.Address `json:"caller"`
	Address core.Address `json:"address"`
}

type ExemptRequest struct {
	Caller  core.Address `json:"caller"`
	Account core.Address `json:"account"`
	Exempt  bool         `json:"exempt"`
}
