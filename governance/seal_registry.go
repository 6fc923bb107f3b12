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

// SealRegistry holds the Chancellor's Seal, a single token with the fixed id
// SealID. It can be minted once and afterwards only moves when the custodian
// ledger hands it to a Chancellor.
type SealRegistry struct {
	*AccessControl
	*PauseGate

	dao   *DAO
	store *contractStorage
	addr  common.Address
}

func newSealRegistry(dao *DAO, addr common.Address) *SealRegistry {
	store := newContractStorage(dao.db, addr)
	acl := newAccessControl(dao, store)
	return &SealRegistry{
		AccessControl: acl,
		PauseGate:     newPauseGate(dao, store, acl),
		dao:           dao,
		store:         store,
		addr:          addr,
	}
}

func (sr *SealRegistry) deploy(deployer common.Address, config *Config) {
	sr.setRole(DefaultAdminRole, deployer, deployer)
	sr.store.setString(uriKey, config.SealURI)
	sr.store.setAddress(custodianKey, sr.dao.deployment.Ledger)
}

// Address returns the contract address
func (sr *SealRegistry) Address() common.Address { return sr.addr }

// SetURI sets the Seal metadata URI, applied to the Seal if it exists and
// otherwise at mint. Restricted to SealManagerRole.
func (sr *SealRegistry) SetURI(caller common.Address, uri string) error {
	return sr.dao.exec(func() error {
		if err := sr.whenNotPaused(); err != nil {
			return err
		}
		if err := sr.checkRole(SealManagerRole, caller); err != nil {
			return err
		}
		sr.store.setString(uriKey, uri)
		if sr.exists() {
			sr.store.setString(sealTokenURIKey, uri)
		}
		sr.dao.emit(Event{Contract: sr.addr, Kind: EventSealURIRetarget, Account: caller, Text: uri})
		return nil
	})
}

// URI returns the configured metadata URI
func (sr *SealRegistry) URI() string {
	var uri string
	sr.dao.view(func() { uri = sr.store.getString(uriKey) })
	return uri
}

// Mint creates the Seal for owner. Fails once a Seal exists. Restricted to
// SealManagerRole.
func (sr *SealRegistry) Mint(caller, owner common.Address) error {
	return sr.dao.exec(func() error {
		if err := sr.whenNotPaused(); err != nil {
			return err
		}
		if err := sr.checkRole(SealManagerRole, caller); err != nil {
			return err
		}
		if sr.exists() {
			return ErrSealAlreadyExists
		}
		if owner == (common.Address{}) {
			return ErrInvalidReceiver
		}
		sr.store.setBool(sealExistsKey, true)
		sr.store.setAddress(sealOwnerKey, owner)
		sr.store.setString(sealTokenURIKey, sr.store.getString(uriKey))

		sr.dao.emit(Event{Contract: sr.addr, Kind: EventSealMinted, Account: owner})
		log.Info("Chancellor seal minted", "owner", owner)
		return nil
	})
}

// SetCustodian names the ledger allowed to move the Seal. Restricted to
// DefaultAdminRole.
func (sr *SealRegistry) SetCustodian(caller, custodian common.Address) error {
	return sr.dao.exec(func() error {
		if err := sr.whenNotPaused(); err != nil {
			return err
		}
		if err := sr.checkRole(DefaultAdminRole, caller); err != nil {
			return err
		}
		if _, err := sr.dao.ledgerAt(custodian); err != nil {
			return err
		}
		sr.store.setAddress(custodianKey, custodian)
		return nil
	})
}

// Custodian returns the ledger allowed to move the Seal
func (sr *SealRegistry) Custodian() common.Address {
	var custodian common.Address
	sr.dao.view(func() { custodian = sr.store.getAddress(custodianKey) })
	return custodian
}

// Exists reports whether the Seal has been minted
func (sr *SealRegistry) Exists() bool {
	var ok bool
	sr.dao.view(func() { ok = sr.exists() })
	return ok
}

// TotalSupply returns 1 once the Seal is minted, 0 before
func (sr *SealRegistry) TotalSupply() uint64 {
	if sr.Exists() {
		return 1
	}
	return 0
}

// OwnerOf returns the holder of the Seal
func (sr *SealRegistry) OwnerOf(tokenID uint64) (common.Address, error) {
	var (
		owner  common.Address
		exists bool
	)
	sr.dao.view(func() {
		exists = sr.exists()
		owner = sr.store.getAddress(sealOwnerKey)
	})
	if tokenID != SealID || !exists {
		return common.Address{}, ErrSealDoesNotExist
	}
	return owner, nil
}

// TokenURI returns the metadata URI of the Seal
func (sr *SealRegistry) TokenURI(tokenID uint64) (string, error) {
	var (
		uri    string
		exists bool
	)
	sr.dao.view(func() {
		exists = sr.exists()
		uri = sr.store.getString(sealTokenURIKey)
	})
	if tokenID != SealID || !exists {
		return "", ErrSealDoesNotExist
	}
	return uri, nil
}

func (sr *SealRegistry) exists() bool {
	return sr.store.getBool(sealExistsKey)
}

// custodyTransfer moves the Seal to to on behalf of the custodian ledger.
func (sr *SealRegistry) custodyTransfer(caller, to common.Address) error {
	if err := sr.whenNotPaused(); err != nil {
		return err
	}
	if caller != sr.store.getAddress(custodianKey) {
		return ErrNotCustodian
	}
	if !sr.exists() {
		return ErrSealDoesNotExist
	}
	from := sr.store.getAddress(sealOwnerKey)
	if from == to {
		return nil
	}
	sr.store.setAddress(sealOwnerKey, to)
	sr.dao.emit(Event{Contract: sr.addr, Kind: EventSealTransferred, Account: to, Other: from})
	log.Debug("Seal custody moved", "from", from, "to", to)
	return nil
}
