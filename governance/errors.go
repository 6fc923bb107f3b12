// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package governance

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Access control errors
var (
	ErrUnauthorized    = errors.New("account is missing role")
	ErrBadConfirmation = errors.New("roles can only be renounced for self")
)

// Pause errors. Pausing an already paused contract reports ErrContractPaused,
// unpausing a running one reports ErrNotPaused, which unwraps to ErrContractPaused.
var (
	ErrContractPaused       = errors.New("contract is paused")
	ErrNotPaused      error = &pauseStateError{msg: "contract is not paused"}
)

// Ledger errors
var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidSender         = errors.New("invalid sender")
	ErrInvalidReceiver       = errors.New("invalid receiver")
	ErrZeroAmount            = errors.New("amount must be non-zero")
	ErrSupplyOverflow        = errors.New("total supply overflow")
	ErrFeeTooHigh            = errors.New("swap fee exceeds 10000 basis points")
	ErrInvalidInterval       = errors.New("salary interval must not be negative")
	ErrTooSoon               = errors.New("not enough time has elapsed since last payment")
	ErrUnknownContract       = errors.New("no contract deployed at address")
)

// Election errors
var (
	ErrNoVotingToken     = errors.New("you don't even have a voting token")
	ErrWithdrawn         = errors.New("you have withdrawn from service")
	ErrInsufficientVotes = errors.New("you need at least one vote")
	ErrAlreadyChancellor = errors.New("you are already chancellor")
	ErrOutvoted          = errors.New("you need more votes than the current chancellor")
	ErrNotChancellor     = errors.New("only the chancellor can reclaim this seal")
)

// Voter registry errors
var (
	ErrNoToken            = errors.New("you don't have a token")
	ErrAlreadyHasToken    = errors.New("account already has a token")
	ErrNotRegistered      = errors.New("not registered")
	ErrInvalidCandidate   = errors.New("invalid candidate")
	ErrAlreadyInactive    = errors.New("already inactive")
	ErrCredentialInactive = errors.New("voting token is inactive")
	ErrNotSelf            = errors.New("can only register your own token")
	ErrLedgerNotTargeted  = errors.New("voter registry has no ledger target")
	ErrSoulbound          = errors.New("voting tokens are not transferable")
)

// Seal errors
var (
	ErrSealAlreadyExists = errors.New("a chancellor seal already exists")
	ErrSealDoesNotExist  = errors.New("the seal doesn't currently exist")
	ErrNotCustodian      = errors.New("caller is not the seal custodian")
)

// UnauthorizedError reports a failed role check. It matches ErrUnauthorized
// under errors.Is.
type UnauthorizedError struct {
	Account common.Address
	Role    Role
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("account %s is missing role %s", e.Account.Hex(), e.Role)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// pauseStateError is a pause gate state error in the ErrContractPaused family.
type pauseStateError struct {
	msg string
}

func (e *pauseStateError) Error() string { return e.msg }

func (e *pauseStateError) Unwrap() error { return ErrContractPaused }
