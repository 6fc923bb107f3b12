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

package scenario

import (
	"errors"

	"github.com/daobi-dao/daobi/governance"
)

var (
	ErrUnknownCall     = errors.New("unknown call")
	ErrUnknownAccount  = errors.New("unknown account")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ExpectOK is the expectation of a step that must succeed.
const ExpectOK = "ok"

// errorKinds names every distinguishable failure. Order matters: the first
// match wins in KindOf.
var errorKinds = []struct {
	name string
	err  error
}{
	{"unauthorized", governance.ErrUnauthorized},
	{"bad_confirmation", governance.ErrBadConfirmation},
	{"not_paused", governance.ErrNotPaused},
	{"contract_paused", governance.ErrContractPaused},
	{"insufficient_balance", governance.ErrInsufficientBalance},
	{"insufficient_allowance", governance.ErrInsufficientAllowance},
	{"invalid_sender", governance.ErrInvalidSender},
	{"invalid_receiver", governance.ErrInvalidReceiver},
	{"zero_amount", governance.ErrZeroAmount},
	{"supply_overflow", governance.ErrSupplyOverflow},
	{"fee_too_high", governance.ErrFeeTooHigh},
	{"invalid_interval", governance.ErrInvalidInterval},
	{"too_soon", governance.ErrTooSoon},
	{"unknown_contract", governance.ErrUnknownContract},
	{"no_voting_token", governance.ErrNoVotingToken},
	{"withdrawn", governance.ErrWithdrawn},
	{"insufficient_votes", governance.ErrInsufficientVotes},
	{"already_chancellor", governance.ErrAlreadyChancellor},
	{"outvoted", governance.ErrOutvoted},
	{"not_chancellor", governance.ErrNotChancellor},
	{"no_token", governance.ErrNoToken},
	{"already_has_token", governance.ErrAlreadyHasToken},
	{"not_registered", governance.ErrNotRegistered},
	{"invalid_candidate", governance.ErrInvalidCandidate},
	{"already_inactive", governance.ErrAlreadyInactive},
	{"credential_inactive", governance.ErrCredentialInactive},
	{"not_self", governance.ErrNotSelf},
	{"ledger_not_targeted", governance.ErrLedgerNotTargeted},
	{"soulbound", governance.ErrSoulbound},
	{"seal_already_exists", governance.ErrSealAlreadyExists},
	{"seal_does_not_exist", governance.ErrSealDoesNotExist},
	{"not_custodian", governance.ErrNotCustodian},
	{"unknown_account", ErrUnknownAccount},
	{"missing_argument", ErrMissingArgument},
	{"invalid_argument", ErrInvalidArgument},
}

// KindOf returns the error kind of err, "ok" for nil and "unknown" for
// errors outside the taxonomy.
func KindOf(err error) string {
	if err == nil {
		return ExpectOK
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}

func lookupKind(name string) (error, bool) {
	for _, k := range errorKinds {
		if k.name == name {
			return k.err, true
		}
	}
	return nil, false
}
