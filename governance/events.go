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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// EventKind tags a notification emitted by a contract.
type EventKind uint8

const (
	EventTransfer EventKind = iota + 1
	EventApproval
	EventRoleGranted
	EventRoleRevoked
	EventPaused
	EventUnpaused
	EventSalaryClaimed
	EventSalaryAdjusted
	EventDAORetargeted
	EventSwapFeeChanged
	EventContractRetargeted
	EventNewChancellor
	EventVoterMinted
	EventVoterRegistered
	EventVoted
	EventReclused
	EventVoterBurned
	EventVoterURIChanged
	EventSealMinted
	EventSealURIRetarget
	EventSealTransferred
)

var eventNames = map[EventKind]string{
	EventTransfer:           "Transfer",
	EventApproval:           "Approval",
	EventRoleGranted:        "RoleGranted",
	EventRoleRevoked:        "RoleRevoked",
	EventPaused:             "Paused",
	EventUnpaused:           "Unpaused",
	EventSalaryClaimed:      "SalaryClaimed",
	EventSalaryAdjusted:     "SalaryAdjusted",
	EventDAORetargeted:      "DAORetargeted",
	EventSwapFeeChanged:     "SwapFeeChanged",
	EventContractRetargeted: "ContractRetargeted",
	EventNewChancellor:      "NewChancellor",
	EventVoterMinted:        "VoterMinted",
	EventVoterRegistered:    "VoterRegistered",
	EventVoted:              "Voted",
	EventReclused:           "Reclused",
	EventVoterBurned:        "VoterBurned",
	EventVoterURIChanged:    "VoterURIChanged",
	EventSealMinted:         "SealMinted",
	EventSealURIRetarget:    "SealURIRetarget",
	EventSealTransferred:    "SealTransferred",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a notification emitted by a successful call. Events of a failed
// call are discarded together with its state changes.
type Event struct {
	Contract common.Address // emitting contract
	Kind     EventKind
	Account  common.Address // subject: sender, owner, voter, new officeholder
	Other    common.Address // counterparty: receiver, spender, candidate, previous holder
	Role     Role           // role events only
	Amount   *uint256.Int   // token amounts, fees, intervals
	Text     string         // URIs and labels
}

func (ev Event) String() string {
	s := fmt.Sprintf("%s contract=%s account=%s", ev.Kind, ev.Contract.Hex(), ev.Account.Hex())
	if ev.Other != (common.Address{}) {
		s += " other=" + ev.Other.Hex()
	}
	if ev.Kind == EventRoleGranted || ev.Kind == EventRoleRevoked {
		s += " role=" + ev.Role.String()
	}
	if ev.Amount != nil {
		s += " amount=" + ev.Amount.Dec()
	}
	if ev.Text != "" {
		s += fmt.Sprintf(" text=%q", ev.Text)
	}
	return s
}
