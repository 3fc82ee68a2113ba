// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert so callers can branch on its cause.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidAmount
	KindInsufficientBalance
	KindNothingToWithdraw
	KindDurationLocked
	KindRewardTooHigh
	KindInvalidPercentageSum
	KindInvalidProgram
	KindNoStake
	KindTooEarly
	KindUnauthorized
	KindUnknownAsset
	KindAlreadyEnrolled
	KindNotEnrolled
	KindPaused
	KindTransferShortfall
	KindAssetAlreadyRegistered
	KindInvalidAddress
	KindNotPaused
	KindUnsupported
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindInvalidAmount:        "InvalidAmount",
	KindInsufficientBalance:  "InsufficientBalance",
	KindNothingToWithdraw:    "NothingToWithdraw",
	KindDurationLocked:       "DurationLocked",
	KindRewardTooHigh:        "RewardTooHigh",
	KindInvalidPercentageSum: "InvalidPercentageSum",
	KindInvalidProgram:       "InvalidProgram",
	KindNoStake:              "NoStake",
	KindTooEarly:             "TooEarly",
	KindUnauthorized:         "Unauthorized",
	KindUnknownAsset:         "UnknownAsset",
	KindAlreadyEnrolled:      "AlreadyEnrolled",
	KindNotEnrolled:          "NotEnrolled",
	KindPaused:               "Paused",
	KindTransferShortfall:    "TransferShortfall",

	KindAssetAlreadyRegistered: "AssetAlreadyRegistered",
	KindInvalidAddress:         "InvalidAddress",
	KindNotPaused:              "NotPaused",
	KindUnsupported:            "Unsupported",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels, one per kind. Match them with errors.Is.
var (
	ErrInvalidAmount        = &ErrRevert{kind: KindInvalidAmount, message: "invalid amount"}
	ErrInsufficientBalance  = &ErrRevert{kind: KindInsufficientBalance, message: "insufficient balance"}
	ErrNothingToWithdraw    = &ErrRevert{kind: KindNothingToWithdraw, message: "nothing to withdraw"}
	ErrDurationLocked       = &ErrRevert{kind: KindDurationLocked, message: "reward period not finished"}
	ErrRewardTooHigh        = &ErrRevert{kind: KindRewardTooHigh, message: "reward too high"}
	ErrInvalidPercentageSum = &ErrRevert{kind: KindInvalidPercentageSum, message: "percentages exceed 100%"}
	ErrInvalidProgram       = &ErrRevert{kind: KindInvalidProgram, message: "invalid program"}
	ErrNoStake              = &ErrRevert{kind: KindNoStake, message: "no stake"}
	ErrTooEarly             = &ErrRevert{kind: KindTooEarly, message: "too early"}
	ErrUnauthorized         = &ErrRevert{kind: KindUnauthorized, message: "unauthorized"}
	ErrUnknownAsset         = &ErrRevert{kind: KindUnknownAsset, message: "unknown reward asset"}
	ErrAlreadyEnrolled      = &ErrRevert{kind: KindAlreadyEnrolled, message: "already enrolled"}
	ErrNotEnrolled          = &ErrRevert{kind: KindNotEnrolled, message: "not enrolled"}
	ErrPaused               = &ErrRevert{kind: KindPaused, message: "pool is paused"}
	ErrTransferShortfall    = &ErrRevert{kind: KindTransferShortfall, message: "transfer shortfall"}

	ErrAssetAlreadyRegistered = &ErrRevert{kind: KindAssetAlreadyRegistered, message: "reward asset already registered"}
	ErrInvalidAddress         = &ErrRevert{kind: KindInvalidAddress, message: "invalid address"}
	ErrNotPaused              = &ErrRevert{kind: KindNotPaused, message: "pool is not paused"}
	ErrUnsupported            = &ErrRevert{kind: KindUnsupported, message: "operation not supported"}
)

// ErrRevert is a domain failure. The operation that returned it left no state behind.
type ErrRevert struct {
	kind    Kind
	message string
}

// Newf returns a revert of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{kind: kind, message: fmt.Sprintf(format, args...)}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Is reports a match when both reverts share a known kind.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	if !ok {
		return false
	}
	if e.kind == KindUnknown || t.kind == KindUnknown {
		return e == t
	}
	return e.kind == t.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or KindUnknown.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return KindUnknown
}
