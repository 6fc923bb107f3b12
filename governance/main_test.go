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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/holiman/uint256"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testEnv mirrors a fresh deployment with one account per role.
type testEnv struct {
	dao    *DAO
	clock  *mclock.Simulated
	ledger *Ledger
	votes  *VoterRegistry
	seal   *SealRegistry

	owner, addr1, addr2, addr3          common.Address
	treasurer, pauser, chancellor       common.Address
	pauser2, sealManager                common.Address
	pauser3, minter, burner, nftManager common.Address
	voteAdmin, minReqAdmin              common.Address
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		clock:       new(mclock.Simulated),
		owner:       common.HexToAddress("0x1000"),
		addr1:       common.HexToAddress("0x1001"),
		addr2:       common.HexToAddress("0x1002"),
		addr3:       common.HexToAddress("0x1003"),
		treasurer:   common.HexToAddress("0x2001"),
		pauser:      common.HexToAddress("0x2002"),
		chancellor:  common.HexToAddress("0x2003"),
		pauser2:     common.HexToAddress("0x3001"),
		sealManager: common.HexToAddress("0x3002"),
		pauser3:     common.HexToAddress("0x4001"),
		minter:      common.HexToAddress("0x4002"),
		burner:      common.HexToAddress("0x4003"),
		nftManager:  common.HexToAddress("0x4004"),
		voteAdmin:   common.HexToAddress("0x4005"),
		minReqAdmin: common.HexToAddress("0x4006"),
	}
	dao, err := NewMemory(env.owner, DefaultConfig(), env.clock)
	if err != nil {
		t.Fatalf("failed to deploy: %v", err)
	}
	env.dao = dao
	env.ledger = dao.Ledger()
	env.votes = dao.Votes()
	env.seal = dao.Seal()

	grants := []struct {
		acl     *AccessControl
		role    Role
		account common.Address
	}{
		{env.ledger.AccessControl, TreasurerRole, env.treasurer},
		{env.ledger.AccessControl, PauserRole, env.pauser},
		{env.ledger.AccessControl, ChancellorRole, env.chancellor},
		{env.seal.AccessControl, PauserRole, env.pauser2},
		{env.seal.AccessControl, SealManagerRole, env.sealManager},
		{env.votes.AccessControl, PauserRole, env.pauser3},
		{env.votes.AccessControl, MinterRole, env.minter},
		{env.votes.AccessControl, BurnerRole, env.burner},
		{env.votes.AccessControl, NFTManagerRole, env.nftManager},
		{env.votes.AccessControl, VoteAdminRole, env.voteAdmin},
		{env.votes.AccessControl, MinReqRole, env.minReqAdmin},
	}
	for _, g := range grants {
		if err := g.acl.GrantRole(env.owner, g.role, g.account); err != nil {
			t.Fatalf("failed to grant %s: %v", g.role, err)
		}
	}
	return env
}

// target binds the voter registry to the ledger
func (env *testEnv) target(t *testing.T) {
	t.Helper()
	if err := env.votes.TargetDaobi(env.voteAdmin, env.ledger.Address()); err != nil {
		t.Fatalf("failed to target ledger: %v", err)
	}
}

// fund sends amount ledger units from the owner and approves the registry
func (env *testEnv) fund(t *testing.T, account common.Address, amount uint64) {
	t.Helper()
	if err := env.ledger.Transfer(env.owner, account, uint256.NewInt(amount)); err != nil {
		t.Fatalf("failed to fund %s: %v", account.Hex(), err)
	}
	if err := env.ledger.Approve(account, env.votes.Address(), uint256.NewInt(amount)); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}
}

// enroll funds, mints and self-registers account as a candidate
func (env *testEnv) enroll(t *testing.T, account common.Address, label string) {
	t.Helper()
	env.fund(t, account, 1000)
	if err := env.votes.Mint(env.minter, account); err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if err := env.votes.Register(account, account, label); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
}

func (env *testEnv) vote(t *testing.T, voter, candidate common.Address) {
	t.Helper()
	if err := env.votes.Vote(voter, candidate); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
}

func drainEvents(ch chan Event) []Event {
	var events []Event
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}
