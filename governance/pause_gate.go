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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// PauseGate is the emergency stop of one contract. While paused every gated
// entry point fails with ErrContractPaused.
type PauseGate struct {
	dao   *DAO
	store *contractStorage
	acl   *AccessControl
}

// newPauseGate creates the gate of a contract and binds it to the contract's
// role table.
func newPauseGate(dao *DAO, store *contractStorage, acl *AccessControl) *PauseGate {
	pg := &PauseGate{dao: dao, store: store, acl: acl}
	acl.gate = pg
	return pg
}

// Paused reports whether the contract is paused
func (pg *PauseGate) Paused() bool {
	var paused bool
	pg.dao.view(func() { paused = pg.paused() })
	return paused
}

// Pause stops the contract. Restricted to PauserRole.
func (pg *PauseGate) Pause(caller common.Address) error {
	return pg.dao.exec(func() error {
		if err := pg.acl.checkRole(PauserRole, caller); err != nil {
			return err
		}
		if pg.paused() {
			return ErrContractPaused
		}
		pg.setPaused(true, caller)
		return nil
	})
}

// Unpause resumes the contract. Restricted to PauserRole.
func (pg *PauseGate) Unpause(caller common.Address) error {
	return pg.dao.exec(func() error {
		if err := pg.acl.checkRole(PauserRole, caller); err != nil {
			return err
		}
		if !pg.paused() {
			return ErrNotPaused
		}
		pg.setPaused(false, caller)
		return nil
	})
}

func (pg *PauseGate) paused() bool {
	return pg.store.getBool(pausedKey)
}

func (pg *PauseGate) whenNotPaused() error {
	if pg.paused() {
		return ErrContractPaused
	}
	return nil
}

func (pg *PauseGate) setPaused(paused bool, caller common.Address) {
	pg.store.setBool(pausedKey, paused)

	kind := EventUnpaused
	if paused {
		kind = EventPaused
	}
	pg.dao.emit(Event{Contract: pg.store.addr, Kind: kind, Account: caller})
	log.Info("Contract pause state changed", "contract", pg.store.addr, "paused", paused, "by", caller)
}
