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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAccessControl_DeployerIsAdmin(t *testing.T) {
	env := newTestEnv(t)

	for name, acl := range map[string]*AccessControl{
		"ledger": env.ledger.AccessControl,
		"votes":  env.votes.AccessControl,
		"seal":   env.seal.AccessControl,
	} {
		if !acl.HasRole(DefaultAdminRole, env.owner) {
			t.Errorf("%s: deployer should hold the default admin role", name)
		}
		if acl.HasRole(DefaultAdminRole, env.addr1) {
			t.Errorf("%s: addr1 should not be admin", name)
		}
		if admin := acl.GetRoleAdmin(TreasurerRole); admin != DefaultAdminRole {
			t.Errorf("%s: unexpected role admin %s", name, admin)
		}
	}
}

func TestAccessControl_RolesAreScopedPerContract(t *testing.T) {
	env := newTestEnv(t)

	if !env.ledger.HasRole(PauserRole, env.pauser) {
		t.Error("pauser should hold the ledger pauser role")
	}
	if env.votes.HasRole(PauserRole, env.pauser) {
		t.Error("ledger pauser must not pause the voter registry")
	}
	if env.seal.HasRole(PauserRole, env.pauser) {
		t.Error("ledger pauser must not pause the seal registry")
	}
	if !env.seal.HasRole(SealManagerRole, env.sealManager) {
		t.Error("seal manager role missing")
	}
	if !env.votes.HasRole(MinReqRole, env.minReqAdmin) {
		t.Error("minimum requirement role missing")
	}
}

func TestAccessControl_GrantRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	err := env.ledger.GrantRole(env.addr1, TreasurerRole, env.addr1)
	require.ErrorIs(t, err, ErrUnauthorized)

	var unauthorized *UnauthorizedError
	require.True(t, errors.As(err, &unauthorized))
	require.Equal(t, env.addr1, unauthorized.Account)
	require.Equal(t, DefaultAdminRole, unauthorized.Role)
	require.False(t, env.ledger.HasRole(TreasurerRole, env.addr1))

	// Role holders cannot hand out their own role
	err = env.ledger.GrantRole(env.treasurer, TreasurerRole, env.addr1)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccessControl_GrantIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	ch := make(chan Event, 8)
	sub := env.dao.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	require.NoError(t, env.ledger.GrantRole(env.owner, PauserRole, env.pauser))
	require.Empty(t, drainEvents(ch), "regranting a held role should not emit")

	require.NoError(t, env.ledger.GrantRole(env.owner, PauserRole, env.addr1))
	events := drainEvents(ch)
	require.Len(t, events, 1)
	require.Equal(t, EventRoleGranted, events[0].Kind)
	require.Equal(t, env.addr1, events[0].Account)
	require.Equal(t, env.owner, events[0].Other)
	require.Equal(t, PauserRole, events[0].Role)
}

func TestAccessControl_Revoke(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(t, env.ledger.RevokeRole(env.addr1, PauserRole, env.pauser), ErrUnauthorized)
	require.True(t, env.ledger.HasRole(PauserRole, env.pauser))

	require.NoError(t, env.ledger.RevokeRole(env.owner, PauserRole, env.pauser))
	require.False(t, env.ledger.HasRole(PauserRole, env.pauser))
	require.ErrorIs(t, env.ledger.Pause(env.pauser), ErrUnauthorized)
}

func TestAccessControl_Renounce(t *testing.T) {
	env := newTestEnv(t)

	err := env.votes.RenounceRole(env.minter, MinterRole, env.addr1)
	require.ErrorIs(t, err, ErrBadConfirmation)
	require.True(t, env.votes.HasRole(MinterRole, env.minter))

	require.NoError(t, env.votes.RenounceRole(env.minter, MinterRole, env.minter))
	require.False(t, env.votes.HasRole(MinterRole, env.minter))
	require.ErrorIs(t, env.votes.Mint(env.minter, env.addr1), ErrUnauthorized)
}

func TestAccessControl_FailedCheckLeavesState(t *testing.T) {
	env := newTestEnv(t)

	root := env.dao.StateRoot()
	if err := env.seal.GrantRole(env.addr2, SealManagerRole, env.addr2); err == nil {
		t.Fatal("expected grant to fail")
	}
	if got := env.dao.StateRoot(); got != root {
		t.Errorf("state root changed after a rejected call: %x != %x", got, root)
	}
}

func TestRoleNames(t *testing.T) {
	tests := []struct {
		role Role
		name string
	}{
		{DefaultAdminRole, "DEFAULT_ADMIN_ROLE"},
		{TreasurerRole, "TREASURER_ROLE"},
		{PauserRole, "PAUSER_ROLE"},
		{ChancellorRole, "CHANCELLOR_ROLE"},
		{SealManagerRole, "SEAL_MANAGER"},
		{MinterRole, "MINTER_ROLE"},
		{BurnerRole, "BURNER_ROLE"},
		{NFTManagerRole, "NFT_MANAGER"},
		{VoteAdminRole, "VOTE_ADMIN_ROLE"},
		{MinReqRole, "MINREQ_ROLE"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.name {
			t.Errorf("role %x: got name %q, want %q", tt.role.Hash(), got, tt.name)
		}
		role, ok := RoleByName(tt.name)
		if !ok || role != tt.role {
			t.Errorf("RoleByName(%q) = %x, %v", tt.name, role.Hash(), ok)
		}
	}
	if DefaultAdminRole.Hash() != (common.Hash{}) {
		t.Error("default admin role must be the zero hash")
	}
	if _, ok := RoleByName("NOT_A_ROLE"); ok {
		t.Error("unknown role name should not resolve")
	}
	if len(Roles()) != len(tests) {
		t.Errorf("expected %d roles, got %d", len(tests), len(Roles()))
	}
}
