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
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Ledger is the DAObi token: a fungible balance table plus the treasury
// parameters funding the Chancellor. It also hosts the election entry points
// that move the Chancellor office and the Seal (see chancellor.go).
type Ledger struct {
	*AccessControl
	*PauseGate

	dao   *DAO
	store *contractStorage
	addr  common.Address

	name     string
	symbol   string
	decimals uint8
}

func newLedger(dao *DAO, addr common.Address, config *Config) *Ledger {
	store := newContractStorage(dao.db, addr)
	acl := newAccessControl(dao, store)
	return &Ledger{
		AccessControl: acl,
		PauseGate:     newPauseGate(dao, store, acl),
		dao:           dao,
		store:         store,
		addr:          addr,
		name:          config.Name,
		symbol:        config.Symbol,
		decimals:      config.Decimals,
	}
}

func (l *Ledger) deploy(deployer common.Address, config *Config) error {
	l.setRole(DefaultAdminRole, deployer, deployer)

	vault := config.Vault
	if vault == (common.Address{}) {
		vault = deployer
	}
	l.store.setAddress(vaultKey, vault)
	l.store.setUint64(swapFeeKey, config.SwapFee)
	l.store.setUint(salaryKey, config.ChancellorSalary)
	l.store.setUint64(salaryIntervalKey, uint64(config.SalaryInterval))
	l.store.setAddress(votingContractKey, l.dao.deployment.VoterRegistry)
	l.store.setAddress(sealContractKey, l.dao.deployment.SealRegistry)

	if !config.InitialSupply.IsZero() {
		return l.mint(deployer, config.InitialSupply)
	}
	return nil
}

// Address returns the contract address
func (l *Ledger) Address() common.Address { return l.addr }

// Name returns the token name
func (l *Ledger) Name() string { return l.name }

// Symbol returns the token symbol
func (l *Ledger) Symbol() string { return l.symbol }

// Decimals returns the token decimals
func (l *Ledger) Decimals() uint8 { return l.decimals }

// TotalSupply returns the amount of tokens in existence
func (l *Ledger) TotalSupply() *uint256.Int {
	var supply *uint256.Int
	l.dao.view(func() { supply = l.store.getUint(totalSupplyKey) })
	return supply
}

// BalanceOf returns the balance of account
func (l *Ledger) BalanceOf(account common.Address) *uint256.Int {
	var balance *uint256.Int
	l.dao.view(func() { balance = l.balanceOf(account) })
	return balance
}

// Allowance returns what spender may still move on behalf of owner
func (l *Ledger) Allowance(owner, spender common.Address) *uint256.Int {
	var allowance *uint256.Int
	l.dao.view(func() { allowance = l.allowance(owner, spender) })
	return allowance
}

// Transfer moves amount from the caller to to.
func (l *Ledger) Transfer(caller, to common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		return l.transfer(caller, to, amount)
	})
}

// Approve sets the allowance of spender over the caller's tokens.
func (l *Ledger) Approve(caller, spender common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		return l.approve(caller, spender, amount)
	})
}

// TransferFrom moves amount from from to to, consuming the caller's allowance.
func (l *Ledger) TransferFrom(caller, from, to common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		return l.transferFrom(caller, from, to, amount)
	})
}

// Mint creates amount new tokens for to. The swap fee share is credited to
// the vault. Restricted to TreasurerRole.
func (l *Ledger) Mint(caller, to common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if amount.IsZero() {
			return ErrZeroAmount
		}
		if to == (common.Address{}) {
			return ErrInvalidReceiver
		}
		fee := new(uint256.Int).Mul(amount, uint256.NewInt(l.store.getUint64(swapFeeKey)))
		fee.Div(fee, uint256.NewInt(MaxSwapFee))
		if !fee.IsZero() {
			if err := l.mint(l.store.getAddress(vaultKey), fee); err != nil {
				return err
			}
		}
		return l.mint(to, new(uint256.Int).Sub(amount, fee))
	})
}

// Burn destroys amount of the caller's tokens.
func (l *Ledger) Burn(caller common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		return l.burn(caller, amount)
	})
}

// Vault returns the swap fee destination
func (l *Ledger) Vault() common.Address {
	var vault common.Address
	l.dao.view(func() { vault = l.store.getAddress(vaultKey) })
	return vault
}

// SwapFee returns the swap fee in basis points
func (l *Ledger) SwapFee() uint64 {
	var fee uint64
	l.dao.view(func() { fee = l.store.getUint64(swapFeeKey) })
	return fee
}

// ChancellorSalary returns the amount paid per salary claim
func (l *Ledger) ChancellorSalary() *uint256.Int {
	var salary *uint256.Int
	l.dao.view(func() { salary = l.store.getUint(salaryKey) })
	return salary
}

// SalaryInterval returns the minimum time between salary claims
func (l *Ledger) SalaryInterval() time.Duration {
	var interval time.Duration
	l.dao.view(func() { interval = l.salaryInterval() })
	return interval
}

// LastSalaryPayment returns the time of the last salary claim, false if the
// salary was never claimed.
func (l *Ledger) LastSalaryPayment() (mclock.AbsTime, bool) {
	var (
		last mclock.AbsTime
		paid bool
	)
	l.dao.view(func() {
		paid = l.store.getBool(salaryPaidKey)
		last = mclock.AbsTime(l.store.getUint64(lastPaymentKey))
	})
	return last, paid
}

// VotingContract returns the voter registry consulted by MakeClaim
func (l *Ledger) VotingContract() common.Address {
	var addr common.Address
	l.dao.view(func() { addr = l.store.getAddress(votingContractKey) })
	return addr
}

// SealContract returns the seal registry moved by MakeClaim and RecoverSeal
func (l *Ledger) SealContract() common.Address {
	var addr common.Address
	l.dao.view(func() { addr = l.store.getAddress(sealContractKey) })
	return addr
}

// AdjustSalaryInterval overwrites the salary interval. Restricted to
// TreasurerRole, allowed while paused.
func (l *Ledger) AdjustSalaryInterval(caller common.Address, interval time.Duration) error {
	return l.dao.exec(func() error {
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if interval < 0 {
			return ErrInvalidInterval
		}
		l.store.setUint64(salaryIntervalKey, uint64(interval))
		l.dao.emit(Event{Contract: l.addr, Kind: EventSalaryAdjusted, Account: caller, Amount: uint256.NewInt(uint64(interval)), Text: "interval"})
		log.Info("Salary interval adjusted", "interval", interval)
		return nil
	})
}

// AdjustSalaryAmount overwrites the Chancellor salary. Restricted to
// TreasurerRole, allowed while paused.
func (l *Ledger) AdjustSalaryAmount(caller common.Address, amount *uint256.Int) error {
	return l.dao.exec(func() error {
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		l.store.setUint(salaryKey, amount)
		l.dao.emit(Event{Contract: l.addr, Kind: EventSalaryAdjusted, Account: caller, Amount: new(uint256.Int).Set(amount), Text: "amount"})
		log.Info("Salary amount adjusted", "amount", amount)
		return nil
	})
}

// RetargetDAO points the swap fee proceeds at a new vault and pauses the
// ledger until a pauser resumes it. Restricted to TreasurerRole.
func (l *Ledger) RetargetDAO(caller, vault common.Address) error {
	return l.dao.exec(func() error {
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if vault == (common.Address{}) {
			return ErrInvalidReceiver
		}
		l.store.setAddress(vaultKey, vault)
		l.dao.emit(Event{Contract: l.addr, Kind: EventDAORetargeted, Account: caller, Other: vault})
		if !l.paused() {
			l.setPaused(true, caller)
		}
		log.Warn("DAO vault retargeted, ledger paused", "vault", vault, "by", caller)
		return nil
	})
}

// SetSwapFee sets the swap fee in basis points. Restricted to TreasurerRole.
func (l *Ledger) SetSwapFee(caller common.Address, fee uint64) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if fee > MaxSwapFee {
			return ErrFeeTooHigh
		}
		l.store.setUint64(swapFeeKey, fee)
		l.dao.emit(Event{Contract: l.addr, Kind: EventSwapFeeChanged, Account: caller, Amount: uint256.NewInt(fee)})
		return nil
	})
}

// RetargetVoting binds the voter registry consulted by MakeClaim. Restricted
// to TreasurerRole.
func (l *Ledger) RetargetVoting(caller, registry common.Address) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if _, err := l.dao.votesAt(registry); err != nil {
			return err
		}
		l.store.setAddress(votingContractKey, registry)
		l.dao.emit(Event{Contract: l.addr, Kind: EventContractRetargeted, Account: caller, Other: registry, Text: "voting"})
		return nil
	})
}

// RetargetSeal binds the seal registry moved on election. Restricted to
// TreasurerRole.
func (l *Ledger) RetargetSeal(caller, registry common.Address) error {
	return l.dao.exec(func() error {
		if err := l.whenNotPaused(); err != nil {
			return err
		}
		if err := l.checkRole(TreasurerRole, caller); err != nil {
			return err
		}
		if _, err := l.dao.sealAt(registry); err != nil {
			return err
		}
		l.store.setAddress(sealContractKey, registry)
		l.dao.emit(Event{Contract: l.addr, Kind: EventContractRetargeted, Account: caller, Other: registry, Text: "seal"})
		return nil
	})
}

func (l *Ledger) balanceOf(account common.Address) *uint256.Int {
	return l.store.getUint(l.store.makeKey(balancePrefix, account.Bytes()))
}

func (l *Ledger) setBalance(account common.Address, amount *uint256.Int) {
	l.store.setUint(l.store.makeKey(balancePrefix, account.Bytes()), amount)
}

func (l *Ledger) allowance(owner, spender common.Address) *uint256.Int {
	return l.store.getUint(l.store.makeKey(allowancePrefix, owner.Bytes(), spender.Bytes()))
}

func (l *Ledger) salaryInterval() time.Duration {
	return time.Duration(l.store.getUint64(salaryIntervalKey))
}

func (l *Ledger) transfer(from, to common.Address, amount *uint256.Int) error {
	if from == (common.Address{}) {
		return ErrInvalidSender
	}
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	return l.update(from, to, amount)
}

func (l *Ledger) approve(owner, spender common.Address, amount *uint256.Int) error {
	if err := l.whenNotPaused(); err != nil {
		return err
	}
	if owner == (common.Address{}) {
		return ErrInvalidSender
	}
	if spender == (common.Address{}) {
		return ErrInvalidReceiver
	}
	l.store.setUint(l.store.makeKey(allowancePrefix, owner.Bytes(), spender.Bytes()), amount)
	l.dao.emit(Event{Contract: l.addr, Kind: EventApproval, Account: owner, Other: spender, Amount: new(uint256.Int).Set(amount)})
	return nil
}

func (l *Ledger) transferFrom(spender, from, to common.Address, amount *uint256.Int) error {
	allowance := l.allowance(from, spender)
	if allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}
	key := l.store.makeKey(allowancePrefix, from.Bytes(), spender.Bytes())
	l.store.setUint(key, new(uint256.Int).Sub(allowance, amount))
	return l.transfer(from, to, amount)
}

func (l *Ledger) mint(to common.Address, amount *uint256.Int) error {
	return l.update(common.Address{}, to, amount)
}

func (l *Ledger) burn(from common.Address, amount *uint256.Int) error {
	if from == (common.Address{}) {
		return ErrInsufficientBalance
	}
	return l.update(from, common.Address{}, amount)
}

// update moves amount between accounts; the zero address on either side
// mints or burns. Every balance change of the ledger goes through here.
func (l *Ledger) update(from, to common.Address, amount *uint256.Int) error {
	if err := l.whenNotPaused(); err != nil {
		return err
	}
	supply := l.store.getUint(totalSupplyKey)
	if from == (common.Address{}) {
		newSupply, overflow := new(uint256.Int).AddOverflow(supply, amount)
		if overflow {
			return ErrSupplyOverflow
		}
		l.store.setUint(totalSupplyKey, newSupply)
	} else {
		balance := l.balanceOf(from)
		if balance.Lt(amount) {
			return ErrInsufficientBalance
		}
		l.setBalance(from, new(uint256.Int).Sub(balance, amount))
	}
	if to == (common.Address{}) {
		l.store.setUint(totalSupplyKey, new(uint256.Int).Sub(supply, amount))
	} else {
		l.setBalance(to, new(uint256.Int).Add(l.balanceOf(to), amount))
	}
	l.dao.emit(Event{Contract: l.addr, Kind: EventTransfer, Account: from, Other: to, Amount: new(uint256.Int).Set(amount)})
	return nil
}
