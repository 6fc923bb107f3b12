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
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Chancellor returns the current officeholder, false while the office is vacant.
func (l *Ledger) Chancellor() (common.Address, bool) {
	var chancellor common.Address
	l.dao.view(func() { chancellor = l.chancellor() })
	return chancellor, chancellor != (common.Address{})
}

// ClaimChancellorSalary mints the Chancellor salary to the caller. The first
// claim is always allowed, later ones only once SalaryInterval has elapsed
// since the previous payment. Restricted to ChancellorRole.
func (l *Ledger) ClaimChancellorSalary(caller common.Address) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		if err := l.checkRole(ChancellorRole, caller); err != nil {
			return err
		}
		now := l.dao.clock.Now()
		if l.store.getBool(salaryPaidKey) {
			last := mclock.AbsTime(l.store.getUint64(lastPaymentKey))
			if now.Sub(last) < l.salaryInterval() {
				return ErrTooSoon
			}
		}
		l.store.setUint64(lastPaymentKey, uint64(now))
		l.store.setBool(salaryPaidKey, true)

		salary := l.store.getUint(salaryKey)
		if err := l.mint(caller, salary); err != nil {
			return err
		}
		l.dao.emit(Event{Contract: l.addr, Kind: EventSalaryClaimed, Account: caller, Amount: new(uint256.Int).Set(salary)})
		log.Info("Chancellor salary paid", "chancellor", caller, "amount", salary)
		return nil
	})
}

// MakeClaim installs the caller as Chancellor. The claimant needs an active
// voting token and at least one vote, must not already hold the office and
// must out-poll a sitting Chancellor that is still active.
func (l *Ledger) MakeClaim(caller common.Address) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		votes, err := l.votingRegistry()
		if err != nil {
			return err
		}
		cred, err := votes.credentialOf(caller)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrNoVotingToken
		}
		if !cred.Active {
			return ErrWithdrawn
		}
		tally := votes.assessVotes(caller)
		if tally < 1 {
			return ErrInsufficientVotes
		}
		current := l.chancellor()
		if current == caller {
			return ErrAlreadyChancellor
		}
		if current != (common.Address{}) {
			sitting, err := votes.credentialOf(current)
			if err != nil {
				return err
			}
			if sitting != nil && sitting.Active && votes.assessVotes(current) >= tally {
				return ErrOutvoted
			}
		}
		return l.assumeChancellorship(caller)
	})
}

// RecoverSeal pulls the Seal back to the Chancellor from whoever holds it.
func (l *Ledger) RecoverSeal(caller common.Address) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		current := l.chancellor()
		if current == (common.Address{}) || current != caller {
			return ErrNotChancellor
		}
		seal, err := l.sealRegistry()
		if err != nil {
			return err
		}
		if !seal.exists() {
			return ErrSealDoesNotExist
		}
		if err := seal.custodyTransfer(l.addr, caller); err != nil {
			return fmt.Errorf("recover seal: %w", err)
		}
		log.Info("Seal recovered", "chancellor", caller)
		return nil
	})
}

// assumeChancellorship moves the office, its role and the Seal to claimant.
func (l *Ledger) assumeChancellorship(claimant common.Address) error {
	previous := l.chancellor()
	if previous != (common.Address{}) {
		l.unsetRole(ChancellorRole, previous, l.addr)
	}
	l.setRole(ChancellorRole, claimant, l.addr)
	l.store.setAddress(chancellorKey, claimant)

	seal, err := l.sealRegistry()
	if err != nil {
		return err
	}
	if seal.exists() {
		if err := seal.custodyTransfer(l.addr, claimant); err != nil {
			return fmt.Errorf("hand over seal: %w", err)
		}
	} else {
		log.Warn("No seal minted, custody unchanged", "chancellor", claimant)
	}
	l.dao.emit(Event{Contract: l.addr, Kind: EventNewChancellor, Account: claimant, Other: previous})
	log.Info("Chancellor installed", "chancellor", claimant, "previous", previous)
	return nil
}

func (l *Ledger) chancellor() common.Address {
	return l.store.getAddress(chancellorKey)
}

func (l *Ledger) votingRegistry() (*VoterRegistry, error) {
	return l.dao.votesAt(l.store.getAddress(votingContractKey))
}

func (l *Ledger) sealRegistry() (*SealRegistry, error) {
	return l.dao.sealAt(l.store.getAddress(sealContractKey))
}
