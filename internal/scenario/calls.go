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

package scenario

import (
	"fmt"
	"strconv"
	"time"

	"github.com/daobi-dao/daobi/governance"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// call executes one contract method for caller. Read calls return their
// value formatted as text, mutating calls return an empty string.
type call func(r *Runner, caller common.Address, args arguments) (string, error)

var calls = map[string]call{
	// Ledger
	"ledger.transfer": func(r *Runner, caller common.Address, a arguments) (string, error) {
		to, err := r.address(a, "to")
		if err != nil {
			return "", err
		}
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().Transfer(caller, to, amount)
	},
	"ledger.approve": func(r *Runner, caller common.Address, a arguments) (string, error) {
		spender, err := r.address(a, "spender")
		if err != nil {
			return "", err
		}
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().Approve(caller, spender, amount)
	},
	"ledger.transferFrom": func(r *Runner, caller common.Address, a arguments) (string, error) {
		from, err := r.address(a, "from")
		if err != nil {
			return "", err
		}
		to, err := r.address(a, "to")
		if err != nil {
			return "", err
		}
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().TransferFrom(caller, from, to, amount)
	},
	"ledger.mint": func(r *Runner, caller common.Address, a arguments) (string, error) {
		to, err := r.address(a, "to")
		if err != nil {
			return "", err
		}
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().Mint(caller, to, amount)
	},
	"ledger.burn": func(r *Runner, caller common.Address, a arguments) (string, error) {
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().Burn(caller, amount)
	},
	"ledger.balanceOf": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.addressOr(a, "account", caller)
		if err != nil {
			return "", err
		}
		return r.dao.Ledger().BalanceOf(account).Dec(), nil
	},
	"ledger.allowance": func(r *Runner, caller common.Address, a arguments) (string, error) {
		owner, err := r.addressOr(a, "owner", caller)
		if err != nil {
			return "", err
		}
		spender, err := r.address(a, "spender")
		if err != nil {
			return "", err
		}
		return r.dao.Ledger().Allowance(owner, spender).Dec(), nil
	},
	"ledger.totalSupply": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return r.dao.Ledger().TotalSupply().Dec(), nil
	},
	"ledger.vault": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return r.name(r.dao.Ledger().Vault()), nil
	},
	"ledger.chancellor": func(r *Runner, caller common.Address, a arguments) (string, error) {
		chancellor, ok := r.dao.Ledger().Chancellor()
		if !ok {
			return "none", nil
		}
		return r.name(chancellor), nil
	},
	"ledger.claimChancellorSalary": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Ledger().ClaimChancellorSalary(caller)
	},
	"ledger.makeClaim": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Ledger().MakeClaim(caller)
	},
	"ledger.recoverSeal": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Ledger().RecoverSeal(caller)
	},
	"ledger.adjustSalaryInterval": func(r *Runner, caller common.Address, a arguments) (string, error) {
		interval, err := a.duration("interval")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().AdjustSalaryInterval(caller, interval)
	},
	"ledger.adjustSalaryAmount": func(r *Runner, caller common.Address, a arguments) (string, error) {
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().AdjustSalaryAmount(caller, amount)
	},
	"ledger.retargetDAO": func(r *Runner, caller common.Address, a arguments) (string, error) {
		vault, err := r.address(a, "vault")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().RetargetDAO(caller, vault)
	},
	"ledger.setSwapFee": func(r *Runner, caller common.Address, a arguments) (string, error) {
		fee, err := a.uint("fee")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().SetSwapFee(caller, fee)
	},
	"ledger.retargetVoting": func(r *Runner, caller common.Address, a arguments) (string, error) {
		registry, err := r.address(a, "registry")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().RetargetVoting(caller, registry)
	},
	"ledger.retargetSeal": func(r *Runner, caller common.Address, a arguments) (string, error) {
		registry, err := r.address(a, "registry")
		if err != nil {
			return "", err
		}
		return "", r.dao.Ledger().RetargetSeal(caller, registry)
	},

	// VoterRegistry
	"votes.targetDaobi": func(r *Runner, caller common.Address, a arguments) (string, error) {
		ledger, err := r.addressOr(a, "ledger", r.dao.Ledger().Address())
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().TargetDaobi(caller, ledger)
	},
	"votes.mint": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.address(a, "account")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().Mint(caller, account)
	},
	"votes.register": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.addressOr(a, "account", caller)
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().Register(caller, account, a["label"])
	},
	"votes.vote": func(r *Runner, caller common.Address, a arguments) (string, error) {
		candidate, err := r.address(a, "candidate")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().Vote(caller, candidate)
	},
	"votes.recluse": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Votes().Recluse(caller)
	},
	"votes.voluntaryBurn": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Votes().VoluntaryBurn(caller)
	},
	"votes.burn": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.address(a, "account")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().Burn(caller, account)
	},
	"votes.setMinimumTokenReq": func(r *Runner, caller common.Address, a arguments) (string, error) {
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().SetMinimumTokenReq(caller, amount)
	},
	"votes.setStakeAmount": func(r *Runner, caller common.Address, a arguments) (string, error) {
		amount, err := a.amount("amount")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().SetStakeAmount(caller, amount)
	},
	"votes.setURI": func(r *Runner, caller common.Address, a arguments) (string, error) {
		uri, err := a.get("uri")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().SetURI(caller, uri)
	},
	"votes.refreshTokenURI": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return "", r.dao.Votes().RefreshTokenURI(caller)
	},
	"votes.transfer": func(r *Runner, caller common.Address, a arguments) (string, error) {
		to, err := r.address(a, "to")
		if err != nil {
			return "", err
		}
		id, err := a.uint("id")
		if err != nil {
			return "", err
		}
		return "", r.dao.Votes().TransferCredential(caller, to, id)
	},
	"votes.assessVotes": func(r *Runner, caller common.Address, a arguments) (string, error) {
		candidate, err := r.addressOr(a, "candidate", caller)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(r.dao.Votes().AssessVotes(candidate), 10), nil
	},
	"votes.balanceOf": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.addressOr(a, "account", caller)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(r.dao.Votes().BalanceOf(account), 10), nil
	},
	"votes.totalSupply": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return strconv.FormatUint(r.dao.Votes().TotalSupply(), 10), nil
	},
	"votes.active": func(r *Runner, caller common.Address, a arguments) (string, error) {
		account, err := r.addressOr(a, "account", caller)
		if err != nil {
			return "", err
		}
		cred, err := r.dao.Votes().CredentialOf(account)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(cred.Active), nil
	},

	// SealRegistry
	"seal.setURI": func(r *Runner, caller common.Address, a arguments) (string, error) {
		uri, err := a.get("uri")
		if err != nil {
			return "", err
		}
		return "", r.dao.Seal().SetURI(caller, uri)
	},
	"seal.mint": func(r *Runner, caller common.Address, a arguments) (string, error) {
		owner, err := r.address(a, "owner")
		if err != nil {
			return "", err
		}
		return "", r.dao.Seal().Mint(caller, owner)
	},
	"seal.setCustodian": func(r *Runner, caller common.Address, a arguments) (string, error) {
		custodian, err := r.addressOr(a, "custodian", r.dao.Ledger().Address())
		if err != nil {
			return "", err
		}
		return "", r.dao.Seal().SetCustodian(caller, custodian)
	},
	"seal.ownerOf": func(r *Runner, caller common.Address, a arguments) (string, error) {
		owner, err := r.dao.Seal().OwnerOf(governance.SealID)
		if err != nil {
			return "", err
		}
		return r.name(owner), nil
	},
	"seal.tokenURI": func(r *Runner, caller common.Address, a arguments) (string, error) {
		return r.dao.Seal().TokenURI(governance.SealID)
	},
}

// contracts exposes the role table and pause gate shared by every contract.
var contracts = map[string]struct {
	acl   func(*governance.DAO) *governance.AccessControl
	pause func(*governance.DAO) *governance.PauseGate
}{
	"ledger": {
		acl:   func(d *governance.DAO) *governance.AccessControl { return d.Ledger().AccessControl },
		pause: func(d *governance.DAO) *governance.PauseGate { return d.Ledger().PauseGate },
	},
	"votes": {
		acl:   func(d *governance.DAO) *governance.AccessControl { return d.Votes().AccessControl },
		pause: func(d *governance.DAO) *governance.PauseGate { return d.Votes().PauseGate },
	},
	"seal": {
		acl:   func(d *governance.DAO) *governance.AccessControl { return d.Seal().AccessControl },
		pause: func(d *governance.DAO) *governance.PauseGate { return d.Seal().PauseGate },
	},
}

func init() {
	for name, c := range contracts {
		acl, pause := c.acl, c.pause

		calls[name+".grantRole"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			role, account, err := r.roleAndAccount(a, caller)
			if err != nil {
				return "", err
			}
			return "", acl(r.dao).GrantRole(caller, role, account)
		}
		calls[name+".revokeRole"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			role, account, err := r.roleAndAccount(a, caller)
			if err != nil {
				return "", err
			}
			return "", acl(r.dao).RevokeRole(caller, role, account)
		}
		calls[name+".renounceRole"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			role, account, err := r.roleAndAccount(a, caller)
			if err != nil {
				return "", err
			}
			return "", acl(r.dao).RenounceRole(caller, role, account)
		}
		calls[name+".hasRole"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			role, account, err := r.roleAndAccount(a, caller)
			if err != nil {
				return "", err
			}
			return strconv.FormatBool(acl(r.dao).HasRole(role, account)), nil
		}
		calls[name+".pause"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			return "", pause(r.dao).Pause(caller)
		}
		calls[name+".unpause"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			return "", pause(r.dao).Unpause(caller)
		}
		calls[name+".paused"] = func(r *Runner, caller common.Address, a arguments) (string, error) {
			return strconv.FormatBool(pause(r.dao).Paused()), nil
		}
	}
}

// Calls returns the names of every supported call
func Calls() []string {
	names := make([]string, 0, len(calls))
	for name := range calls {
		names = append(names, name)
	}
	return names
}

// arguments are the raw step arguments
type arguments map[string]string

func (a arguments) get(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	return v, nil
}

func (a arguments) amount(key string) (*uint256.Int, error) {
	v, err := a.get(key)
	if err != nil {
		return nil, err
	}
	amount, err := uint256.FromDecimal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, key, v)
	}
	return amount, nil
}

func (a arguments) uint(key string) (uint64, error) {
	v, err := a.get(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, key, v)
	}
	return n, nil
}

func (a arguments) duration(key string) (time.Duration, error) {
	v, err := a.get(key)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, key, v)
	}
	return d, nil
}

func (a arguments) role(key string) (governance.Role, error) {
	v, err := a.get(key)
	if err != nil {
		return governance.Role{}, err
	}
	role, ok := governance.RoleByName(v)
	if !ok {
		return governance.Role{}, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, key, v)
	}
	return role, nil
}
