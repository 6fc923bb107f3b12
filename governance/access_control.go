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

// AccessControl is the role table of one contract. The admin of every role
// is DefaultAdminRole unless changed with setRoleAdmin. Role changes are
// rejected while the contract's PauseGate is engaged.
type AccessControl struct {
	dao   *DAO
	store *contractStorage
	gate  *PauseGate
}

func newAccessControl(dao *DAO, store *contractStorage) *AccessControl {
	return &AccessControl{dao: dao, store: store}
}

// HasRole reports whether account holds role
func (ac *AccessControl) HasRole(role Role, account common.Address) bool {
	var ok bool
	ac.dao.view(func() { ok = ac.hasRole(role, account) })
	return ok
}

// GetRoleAdmin returns the role administering role
func (ac *AccessControl) GetRoleAdmin(role Role) Role {
	var admin Role
	ac.dao.view(func() { admin = ac.roleAdmin(role) })
	return admin
}

// GrantRole gives role to account. The caller must hold the role's admin role.
func (ac *AccessControl) GrantRole(caller common.Address, role Role, account common.Address) error {
	return ac.dao.exec(func() error {
		if err := ac.gate.whenNotPaused(); err != nil {
			return err
		}
		if err := ac.checkRole(ac.roleAdmin(role), caller); err != nil {
			return err
		}
		ac.setRole(role, account, caller)
		return nil
	})
}

// RevokeRole removes role from account. The caller must hold the role's admin role.
func (ac *AccessControl) RevokeRole(caller common.Address, role Role, account common.Address) error {
	return ac.dao.exec(func() error {
		if err := ac.gate.whenNotPaused(); err != nil {
			return err
		}
		if err := ac.checkRole(ac.roleAdmin(role), caller); err != nil {
			return err
		}
		ac.unsetRole(role, account, caller)
		return nil
	})
}

// RenounceRole drops a role held by the caller. confirmation must equal the caller.
func (ac *AccessControl) RenounceRole(caller common.Address, role Role, confirmation common.Address) error {
	return ac.dao.exec(func() error {
		if err := ac.gate.whenNotPaused(); err != nil {
			return err
		}
		if caller != confirmation {
			return ErrBadConfirmation
		}
		ac.unsetRole(role, caller, caller)
		return nil
	})
}

func (ac *AccessControl) hasRole(role Role, account common.Address) bool {
	return ac.store.getBool(ac.store.makeKey(roleMemberPrefix, role[:], account.Bytes()))
}

func (ac *AccessControl) roleAdmin(role Role) Role {
	return Role(ac.store.get(ac.store.makeKey(roleAdminPrefix, role[:])))
}

func (ac *AccessControl) setRoleAdmin(role, admin Role) {
	ac.store.set(ac.store.makeKey(roleAdminPrefix, role[:]), common.Hash(admin))
}

// checkRole is the authorization predicate guarding every restricted call.
func (ac *AccessControl) checkRole(role Role, account common.Address) error {
	if !ac.hasRole(role, account) {
		return &UnauthorizedError{Account: account, Role: role}
	}
	return nil
}

// setRole grants role without authorization, reporting whether it changed.
func (ac *AccessControl) setRole(role Role, account, sender common.Address) bool {
	if ac.hasRole(role, account) {
		return false
	}
	ac.store.setBool(ac.store.makeKey(roleMemberPrefix, role[:], account.Bytes()), true)
	ac.dao.emit(Event{
		Contract: ac.store.addr,
		Kind:     EventRoleGranted,
		Account:  account,
		Other:    sender,
		Role:     role,
	})
	log.Debug("Role granted", "contract", ac.store.addr, "role", role, "account", account, "sender", sender)
	return true
}

// unsetRole revokes role without authorization, reporting whether it changed.
func (ac *AccessControl) unsetRole(role Role, account, sender common.Address) bool {
	if !ac.hasRole(role, account) {
		return false
	}
	ac.store.setBool(ac.store.makeKey(roleMemberPrefix, role[:], account.Bytes()), false)
	ac.dao.emit(Event{
		Contract: ac.store.addr,
		Kind:     EventRoleRevoked,
		Account:  account,
		Other:    sender,
		Role:     role,
	})
	log.Debug("Role revoked", "contract", ac.store.addr, "role", role, "account", account, "sender", sender)
	return true
}
