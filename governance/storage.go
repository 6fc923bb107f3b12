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
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

var (
	// Storage key prefixes
	balancePrefix    = []byte("balance")
	allowancePrefix  = []byte("allowance")
	roleMemberPrefix = []byte("roleMember")
	roleAdminPrefix  = []byte("roleAdmin")
	credentialPrefix = []byte("credential")
	tokenOwnerPrefix = []byte("tokenOwner")
	tallyPrefix      = []byte("tally")
	candidatePrefix  = []byte("candidate")
	listedPrefix     = []byte("listed")
)

var (
	// Scalar slots
	pausedKey         = crypto.Keccak256Hash([]byte("paused"))
	totalSupplyKey    = crypto.Keccak256Hash([]byte("totalSupply"))
	vaultKey          = crypto.Keccak256Hash([]byte("vault"))
	swapFeeKey        = crypto.Keccak256Hash([]byte("swapFee"))
	salaryKey         = crypto.Keccak256Hash([]byte("chancellorSalary"))
	salaryIntervalKey = crypto.Keccak256Hash([]byte("salaryInterval"))
	lastPaymentKey    = crypto.Keccak256Hash([]byte("lastPayment"))
	salaryPaidKey     = crypto.Keccak256Hash([]byte("salaryPaid"))
	chancellorKey     = crypto.Keccak256Hash([]byte("chancellor"))
	votingContractKey = crypto.Keccak256Hash([]byte("votingContract"))
	sealContractKey   = crypto.Keccak256Hash([]byte("sealContract"))
	ledgerTargetKey   = crypto.Keccak256Hash([]byte("ledgerTarget"))
	minTokenReqKey    = crypto.Keccak256Hash([]byte("minimumTokenReq"))
	stakeAmountKey    = crypto.Keccak256Hash([]byte("stakeAmount"))
	nextTokenIDKey    = crypto.Keccak256Hash([]byte("nextTokenId"))
	candidateCountKey = crypto.Keccak256Hash([]byte("candidateCount"))
	uriKey            = crypto.Keccak256Hash([]byte("uri"))
	sealExistsKey     = crypto.Keccak256Hash([]byte("sealExists"))
	sealOwnerKey      = crypto.Keccak256Hash([]byte("sealOwner"))
	sealTokenURIKey   = crypto.Keccak256Hash([]byte("sealTokenURI"))
	custodianKey      = crypto.Keccak256Hash([]byte("custodian"))
)

// contractStorage is the storage of one contract account inside the shared
// StateDB. Values live in 32-byte slots, byte strings span a length slot and
// consecutive data slots starting at keccak256(key).
type contractStorage struct {
	db   *state.StateDB
	addr common.Address
}

func newContractStorage(db *state.StateDB, addr common.Address) *contractStorage {
	return &contractStorage{
		db:   db,
		addr: addr,
	}
}

// makeKey derives a mapping slot from a prefix and the mapping keys
func (cs *contractStorage) makeKey(prefix []byte, parts ...[]byte) common.Hash {
	combined := append([]byte{}, prefix...)
	for _, p := range parts {
		combined = append(combined, p...)
	}
	return crypto.Keccak256Hash(combined)
}

func (cs *contractStorage) get(key common.Hash) common.Hash {
	return cs.db.GetState(cs.addr, key)
}

func (cs *contractStorage) set(key, value common.Hash) {
	cs.db.SetState(cs.addr, key, value)
}

func (cs *contractStorage) getUint(key common.Hash) *uint256.Int {
	value := cs.get(key)
	return new(uint256.Int).SetBytes32(value[:])
}

func (cs *contractStorage) setUint(key common.Hash, value *uint256.Int) {
	cs.set(key, common.Hash(value.Bytes32()))
}

func (cs *contractStorage) getUint64(key common.Hash) uint64 {
	return cs.getUint(key).Uint64()
}

func (cs *contractStorage) setUint64(key common.Hash, value uint64) {
	cs.setUint(key, uint256.NewInt(value))
}

func (cs *contractStorage) getAddress(key common.Hash) common.Address {
	return common.BytesToAddress(cs.get(key).Bytes())
}

func (cs *contractStorage) setAddress(key common.Hash, addr common.Address) {
	cs.set(key, common.BytesToHash(addr.Bytes()))
}

func (cs *contractStorage) getBool(key common.Hash) bool {
	return cs.get(key) != (common.Hash{})
}

func (cs *contractStorage) setBool(key common.Hash, value bool) {
	if value {
		cs.set(key, common.Hash{31: 1})
	} else {
		cs.set(key, common.Hash{})
	}
}

// getBytes loads a byte string, nil if the slot was never written
func (cs *contractStorage) getBytes(key common.Hash) []byte {
	size := cs.getUint64(key)
	if size == 0 {
		return nil
	}
	data := make([]byte, 0, size)
	slot := cs.dataSlot(key)
	for uint64(len(data)) < size {
		chunk := cs.get(common.Hash(slot.Bytes32()))
		remaining := size - uint64(len(data))
		if remaining > common.HashLength {
			remaining = common.HashLength
		}
		data = append(data, chunk[:remaining]...)
		slot.AddUint64(slot, 1)
	}
	return data
}

// setBytes stores a byte string, clearing data slots the previous value used
func (cs *contractStorage) setBytes(key common.Hash, data []byte) {
	oldSlots := slotCount(cs.getUint64(key))
	newSlots := slotCount(uint64(len(data)))

	slot := cs.dataSlot(key)
	for i := uint64(0); i < newSlots || i < oldSlots; i++ {
		var chunk common.Hash
		if i < newSlots {
			copy(chunk[:], data[i*common.HashLength:])
		}
		cs.set(common.Hash(slot.Bytes32()), chunk)
		slot.AddUint64(slot, 1)
	}
	cs.setUint64(key, uint64(len(data)))
}

func (cs *contractStorage) getString(key common.Hash) string {
	return string(cs.getBytes(key))
}

func (cs *contractStorage) setString(key common.Hash, value string) {
	cs.setBytes(key, []byte(value))
}

func (cs *contractStorage) dataSlot(key common.Hash) *uint256.Int {
	base := crypto.Keccak256Hash(key[:])
	return new(uint256.Int).SetBytes32(base[:])
}

func slotCount(size uint64) uint64 {
	return (size + common.HashLength - 1) / common.HashLength
}

// Storage data structures for RLP encoding

type credentialData struct {
	TokenID    uint64
	Active     bool
	Registered bool
	Label      string
	HasVote    bool
	VotedFor   common.Address
	Staked     []byte
	URI        string
}

// saveCredential stores a credential under its owner
func (cs *contractStorage) saveCredential(cred *VoterCredential) error {
	staked := cred.Staked
	if staked == nil {
		staked = new(uint256.Int)
	}
	data := &credentialData{
		TokenID:    cred.TokenID,
		Active:     cred.Active,
		Registered: cred.Registered,
		Label:      cred.Label,
		HasVote:    cred.HasVote,
		VotedFor:   cred.VotedFor,
		Staked:     staked.Bytes(),
		URI:        cred.URI,
	}
	encoded, err := rlp.EncodeToBytes(data)
	if err != nil {
		return err
	}
	cs.setBytes(cs.makeKey(credentialPrefix, cred.Owner.Bytes()), encoded)
	return nil
}

// loadCredential loads the credential held by owner, nil if there is none
func (cs *contractStorage) loadCredential(owner common.Address) (*VoterCredential, error) {
	encoded := cs.getBytes(cs.makeKey(credentialPrefix, owner.Bytes()))
	if len(encoded) == 0 {
		return nil, nil
	}
	var data credentialData
	if err := rlp.DecodeBytes(encoded, &data); err != nil {
		return nil, err
	}
	return &VoterCredential{
		TokenID:    data.TokenID,
		Owner:      owner,
		Active:     data.Active,
		Registered: data.Registered,
		Label:      data.Label,
		HasVote:    data.HasVote,
		VotedFor:   data.VotedFor,
		Staked:     new(uint256.Int).SetBytes(data.Staked),
		URI:        data.URI,
	}, nil
}

func (cs *contractStorage) deleteCredential(owner common.Address) {
	cs.setBytes(cs.makeKey(credentialPrefix, owner.Bytes()), nil)
}
