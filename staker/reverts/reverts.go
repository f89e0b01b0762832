// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why a transition was rejected.
type Kind uint8

const (
	InvalidTokenAccount Kind = iota + 1
	InvalidTokenMint
	InvalidMetadata
	InvalidStakeData
	InvalidTime
	InvalidPeriod
	AlreadyUnstaked
	TokenTransferFailed
	PoolExists
	NotFound
	InvalidCollection
	Overflow
)

var kindNames = map[Kind]string{
	InvalidTokenAccount: "InvalidTokenAccount",
	InvalidTokenMint:    "InvalidTokenMint",
	InvalidMetadata:     "InvalidMetadata",
	InvalidStakeData:    "InvalidStakeData",
	InvalidTime:         "InvalidTime",
	InvalidPeriod:       "InvalidPeriod",
	AlreadyUnstaked:     "AlreadyUnstaked",
	TokenTransferFailed: "TokenTransferFailed",
	PoolExists:          "PoolExists",
	NotFound:            "NotFound",
	InvalidCollection:   "InvalidCollection",
	Overflow:            "Overflow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type ErrRevert struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap attaches the underlying failure, e.g. the ledger error behind TokenTransferFailed.
func Wrap(kind Kind, cause error, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
		cause:   cause,
	}
}

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return e.kind.String() + ": " + e.message + ": " + e.cause.Error()
	}
	return e.kind.String() + ": " + e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
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

// KindOf returns the kind of the first revert in the error chain.
func KindOf(err error) (Kind, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind, true
	}
	return 0, false
}

// Is reports whether err is a revert of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
