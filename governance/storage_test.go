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
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func newTestStorage(t *testing.T) *contractStorage {
	t.Helper()
	db, err := NewMemoryState()
	if err != nil {
		t.Fatalf("failed to create state: %v", err)
	}
	return newContractStorage(db, common.HexToAddress("0xc0ffee"))
}

func TestStorage_Bytes(t *testing.T) {
	cs := newTestStorage(t)
	key := crypto.Keccak256Hash([]byte("blob"))

	if got := cs.getBytes(key); got != nil {
		t.Fatalf("unset key should load nil, got %x", got)
	}
	for _, size := range []int{1, 31, 32, 33, 64, 100} {
		data := bytes.Repeat([]byte{byte(size)}, size)
		cs.setBytes(key, data)
		if got := cs.getBytes(key); !bytes.Equal(got, data) {
			t.Errorf("size %d: got %x, want %x", size, got, data)
		}
	}
}

func TestStorage_BytesShrinkClearsSlots(t *testing.T) {
	cs := newTestStorage(t)
	key := crypto.Keccak256Hash([]byte("blob"))

	cs.setBytes(key, bytes.Repeat([]byte{0xff}, 100))
	cs.setBytes(key, []byte("short"))
	if got := cs.getString(key); got != "short" {
		t.Fatalf("got %q", got)
	}

	slot := cs.dataSlot(key)
	for i := 1; i < 4; i++ {
		slot.AddUint64(slot, 1)
		if v := cs.get(common.Hash(slot.Bytes32())); v != (common.Hash{}) {
			t.Errorf("stale data left in slot %d: %x", i, v)
		}
	}

	cs.setBytes(key, nil)
	if got := cs.getBytes(key); got != nil {
		t.Errorf("cleared key should load nil, got %x", got)
	}
}

func TestStorage_Scalars(t *testing.T) {
	cs := newTestStorage(t)
	key := crypto.Keccak256Hash([]byte("scalar"))

	cs.setBool(key, true)
	if !cs.getBool(key) {
		t.Error("bool not stored")
	}
	cs.setBool(key, false)
	if cs.getBool(key) {
		t.Error("bool not cleared")
	}

	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	cs.setAddress(key, addr)
	if got := cs.getAddress(key); got != addr {
		t.Errorf("address %s, want %s", got.Hex(), addr.Hex())
	}

	maxValue := new(uint256.Int).SetAllOne()
	cs.setUint(key, maxValue)
	if got := cs.getUint(key); !got.Eq(maxValue) {
		t.Errorf("uint %s, want %s", got.Hex(), maxValue.Hex())
	}
}

func TestStorage_MakeKey(t *testing.T) {
	cs := newTestStorage(t)
	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")

	if cs.makeKey(balancePrefix, a.Bytes()) == cs.makeKey(balancePrefix, b.Bytes()) {
		t.Error("different accounts share a slot")
	}
	if cs.makeKey(balancePrefix, a.Bytes()) == cs.makeKey(tallyPrefix, a.Bytes()) {
		t.Error("different mappings share a slot")
	}
	if cs.makeKey(allowancePrefix, a.Bytes(), b.Bytes()) == cs.makeKey(allowancePrefix, b.Bytes(), a.Bytes()) {
		t.Error("allowance key must depend on argument order")
	}
}

func TestStorage_Credential(t *testing.T) {
	cs := newTestStorage(t)
	owner := common.HexToAddress("0xabc")

	cred, err := cs.loadCredential(owner)
	if err != nil || cred != nil {
		t.Fatalf("expected no credential, got %+v (%v)", cred, err)
	}

	want := &VoterCredential{
		TokenID:    7,
		Owner:      owner,
		Active:     true,
		Registered: true,
		Label:      "a rather long candidate label that spans more than one slot",
		HasVote:    true,
		VotedFor:   common.HexToAddress("0xdef"),
		Staked:     uint256.NewInt(250),
		URI:        "ipfs://voter",
	}
	if err := cs.saveCredential(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := cs.loadCredential(owner)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.TokenID != want.TokenID || got.Owner != want.Owner || got.Label != want.Label ||
		got.VotedFor != want.VotedFor || !got.Staked.Eq(want.Staked) || got.URI != want.URI ||
		!got.Active || !got.Registered || !got.HasVote {
		t.Errorf("credential mismatch: got %+v, want %+v", got, want)
	}

	cs.deleteCredential(owner)
	if cred, _ := cs.loadCredential(owner); cred != nil {
		t.Errorf("credential survived delete: %+v", cred)
	}
}
