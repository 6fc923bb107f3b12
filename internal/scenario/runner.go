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
	"strings"
	"time"

	"github.com/daobi-dao/daobi/governance"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/log"
)

// DeployerAlias names the deploying account unless a script overrides it.
const DeployerAlias = "deployer"

// Result is the outcome of one step.
type Result struct {
	Index  int
	Step   Step
	Output string // value returned by read calls
	Err    error
	Passed bool
	Reason string // why the step failed its expectation
}

// Runner executes scripts against a DAO driven by a simulated clock.
type Runner struct {
	dao      *governance.DAO
	clock    *mclock.Simulated
	accounts map[string]common.Address
	names    map[common.Address]string
}

// NewRunner resolves the script accounts and prepares a runner. The aliases
// "ledger", "votes" and "seal" name the deployed contracts, "zero" the zero
// address and "deployer" the deploying account.
func NewRunner(dao *governance.DAO, clock *mclock.Simulated, accounts map[string]string) (*Runner, error) {
	deployment := dao.Deployment()
	r := &Runner{
		dao:   dao,
		clock: clock,
		accounts: map[string]common.Address{
			DeployerAlias: deployment.Deployer,
			"ledger":      deployment.Ledger,
			"votes":       deployment.VoterRegistry,
			"seal":        deployment.SealRegistry,
			"zero":        {},
		},
		names: make(map[common.Address]string),
	}
	for alias, hex := range accounts {
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("%w: account %s=%q", ErrInvalidArgument, alias, hex)
		}
		r.accounts[alias] = common.HexToAddress(hex)
	}
	for alias, addr := range r.accounts {
		// prefer script aliases over the builtin ones on collisions
		if _, builtin := accounts[alias]; builtin || r.names[addr] == "" {
			r.names[addr] = alias
		}
	}
	return r, nil
}

// Account resolves an alias or hex address
func (r *Runner) Account(name string) (common.Address, error) {
	if addr, ok := r.accounts[name]; ok {
		return addr, nil
	}
	if common.IsHexAddress(name) {
		return common.HexToAddress(name), nil
	}
	return common.Address{}, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
}

// Run executes every step of script in order. Failed expectations do not
// stop the run.
func (r *Runner) Run(script *Script) []Result {
	results := make([]Result, 0, len(script.Steps))
	for i, step := range script.Steps {
		results = append(results, r.Step(i, step))
	}
	return results
}

// Step advances the clock if requested, then performs the call and checks
// the outcome against the step expectations.
func (r *Runner) Step(index int, step Step) Result {
	res := Result{Index: index, Step: step}

	if step.Advance != "" {
		d, err := time.ParseDuration(step.Advance)
		if err != nil {
			res.Err = fmt.Errorf("%w: advance=%q", ErrInvalidArgument, step.Advance)
			res.Reason = res.Err.Error()
			return res
		}
		r.clock.Run(d)
		log.Debug("Clock advanced", "step", index, "by", d)
	}
	if step.Call == "" {
		res.Passed = true
		return res
	}

	fn, ok := calls[step.Call]
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrUnknownCall, step.Call)
		res.Reason = res.Err.Error()
		return res
	}
	callerName := step.Caller
	if callerName == "" {
		callerName = DeployerAlias
	}
	caller, err := r.Account(callerName)
	if err == nil {
		res.Output, err = fn(r, caller, arguments(step.Args))
	}
	res.Err = err

	expect := step.Expect
	if expect == "" {
		expect = ExpectOK
	}
	kind := KindOf(err)
	switch {
	case kind != expect:
		res.Reason = fmt.Sprintf("expected %s, got %s", expect, kind)
		if err != nil {
			res.Reason += fmt.Sprintf(" (%v)", err)
		}
	case step.Want != "" && !strings.EqualFold(res.Output, step.Want):
		res.Reason = fmt.Sprintf("expected value %s, got %s", step.Want, res.Output)
	default:
		res.Passed = true
	}
	log.Debug("Scenario step", "index", index, "call", step.Call, "caller", callerName, "result", kind, "passed", res.Passed)
	return res
}

// name returns the alias of addr, or its hex form
func (r *Runner) name(addr common.Address) string {
	if name, ok := r.names[addr]; ok {
		return name
	}
	return addr.Hex()
}

func (r *Runner) address(a arguments, key string) (common.Address, error) {
	v, err := a.get(key)
	if err != nil {
		return common.Address{}, err
	}
	return r.Account(v)
}

func (r *Runner) addressOr(a arguments, key string, def common.Address) (common.Address, error) {
	if a[key] == "" {
		return def, nil
	}
	return r.address(a, key)
}

func (r *Runner) roleAndAccount(a arguments, caller common.Address) (governance.Role, common.Address, error) {
	role, err := a.role("role")
	if err != nil {
		return governance.Role{}, common.Address{}, err
	}
	account, err := r.addressOr(a, "account", caller)
	if err != nil {
		return governance.Role{}, common.Address{}, err
	}
	return role, account, nil
}
