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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Role identifies a capability in an AccessControl table. Identifiers are the
// keccak256 hash of the role name, the default admin role is the zero hash.
type Role common.Hash

var roleNames = make(map[Role]string)

func newRole(name string) Role {
	r := Role(crypto.Keccak256Hash([]byte(name)))
	roleNames[r] = name
	return r
}

var (
	DefaultAdminRole = Role{}

	TreasurerRole   = newRole("TREASURER_ROLE")
	PauserRole      = newRole("PAUSER_ROLE")
	ChancellorRole  = newRole("CHANCELLOR_ROLE")
	SealManagerRole = newRole("SEAL_MANAGER")
	MinterRole      = newRole("MINTER_ROLE")
	BurnerRole      = newRole("BURNER_ROLE")
	NFTManagerRole  = newRole("NFT_MANAGER")
	VoteAdminRole   = newRole("VOTE_ADMIN_ROLE")
	MinReqRole      = newRole("MINREQ_ROLE")
)

// Roles returns every known role, default admin first.
func Roles() []Role {
	return []Role{
		DefaultAdminRole,
		TreasurerRole,
		PauserRole,
		ChancellorRole,
		SealManagerRole,
		MinterRole,
		BurnerRole,
		NFTManagerRole,
		VoteAdminRole,
		MinReqRole,
	}
}

// RoleByName resolves a role from its name, e.g. "TREASURER_ROLE".
func RoleByName(name string) (Role, bool) {
	for _, r := range Roles() {
		if r.String() == name {
			return r, true
		}
	}
	return Role{}, false
}

// Hash returns the role identifier.
func (r Role) Hash() common.Hash {
	return common.Hash(r)
}

func (r Role) String() string {
	if r == DefaultAdminRole {
		return "DEFAULT_ADMIN_ROLE"
	}
	if name, ok := roleNames[r]; ok {
		return name
	}
	return common.Hash(r).Hex()
}

// SealID is the token identifier of the Chancellor's Seal.
const SealID uint64 = 1

// MaxSwapFee is the swap fee ceiling in basis points.
const MaxSwapFee uint64 = 10000

// VoterCredential is the non-transferable voting token held by a participant.
type VoterCredential struct {
	TokenID    uint64         // token identifier, assigned at mint
	Owner      common.Address // holder
	Active     bool           // false once the holder has reclused
	Registered bool           // holder registered itself as a candidate
	Label      string         // candidate display label
	HasVote    bool           // a vote is currently cast
	VotedFor   common.Address // target of the cast vote
	Staked     *uint256.Int   // ledger tokens held in escrow for this credential
	URI        string         // token metadata
}

// Config holds the deployment parameters of a DAO.
type Config struct {
	Name     string // ledger token name
	Symbol   string // ledger token symbol
	Decimals uint8  // ledger token decimals

	InitialSupply *uint256.Int // minted to the deployer at deployment

	Vault            common.Address // swap fee destination, deployer if zero
	SwapFee          uint64         // basis points
	ChancellorSalary *uint256.Int   // paid per claim
	SalaryInterval   time.Duration  // minimum time between salary claims

	MinimumTokenReq *uint256.Int // ledger balance required to vote
	StakeAmount     *uint256.Int // escrowed from the holder at credential mint
	VoterURI        string       // credential metadata

	SealURI string // seal metadata
}

var oneToken = uint256.NewInt(1e18)

func tokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), oneToken)
}

// DefaultConfig returns the default deployment configuration
func DefaultConfig() *Config {
	return &Config{
		Name:             "DAObi",
		Symbol:           "DB",
		Decimals:         18,
		InitialSupply:    tokens(1_000_000),
		SwapFee:          3000,
		ChancellorSalary: tokens(1000),
		SalaryInterval:   24 * time.Hour,
		MinimumTokenReq:  new(uint256.Int),
		StakeAmount:      new(uint256.Int),
		VoterURI:         "https://daobi.io/vote/credential.json",
		SealURI:          "https://daobi.io/seal/seal.json",
	}
}

// Copy returns a deep copy of the configuration.
func (c *Config) Copy() *Config {
	cpy := *c
	cpy.InitialSupply = cloneAmount(c.InitialSupply)
	cpy.ChancellorSalary = cloneAmount(c.ChancellorSalary)
	cpy.MinimumTokenReq = cloneAmount(c.MinimumTokenReq)
	cpy.StakeAmount = cloneAmount(c.StakeAmount)
	return &cpy
}

func cloneAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}
