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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// VoterRegistry issues one non-transferable voting token per account and
// keeps the election tally. Balances used for the minimum token requirement
// and the mint stake come from the ledger bound with TargetDaobi.
type VoterRegistry struct {
	*AccessControl
	*PauseGate

	dao   *DAO
	store *contractStorage
	addr  common.Address
}

func newVoterRegistry(dao *DAO, addr common.Address) *VoterRegistry {
	store := newContractStorage(dao.db, addr)
	acl := newAccessControl(dao, store)
	return &VoterRegistry{
		AccessControl: acl,
		PauseGate:     newPauseGate(dao, store, acl),
		dao:           dao,
		store:         store,
		addr:          addr,
	}
}

func (vr *VoterRegistry) deploy(deployer common.Address, config *Config) {
	vr.setRole(DefaultAdminRole, deployer, deployer)
	vr.store.setUint(minTokenReqKey, config.MinimumTokenReq)
	vr.store.setUint(stakeAmountKey, config.StakeAmount)
	vr.store.setString(uriKey, config.VoterURI)
	vr.store.setUint64(nextTokenIDKey, 1)
}

// Address returns the contract address
func (vr *VoterRegistry) Address() common.Address { return vr.addr }

// TargetDaobi binds the ledger used for balance checks and stakes.
// Restricted to VoteAdminRole.
func (vr *VoterRegistry) TargetDaobi(caller, ledger common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(VoteAdminRole, caller); err != nil {
			return err
		}
		if _, err := vr.dao.ledgerAt(ledger); err != nil {
			return err
		}
		vr.store.setAddress(ledgerTargetKey, ledger)
		vr.dao.emit(Event{Contract: vr.addr, Kind: EventContractRetargeted, Account: caller, Other: ledger, Text: "ledger"})
		return nil
	})
}

// Target returns the bound ledger, the zero address if none
func (vr *VoterRegistry) Target() common.Address {
	var target common.Address
	vr.dao.view(func() { target = vr.store.getAddress(ledgerTargetKey) })
	return target
}

// Mint issues a voting token to account, escrowing the stake amount from the
// account's ledger balance through its allowance. Restricted to MinterRole.
func (vr *VoterRegistry) Mint(caller, account common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(MinterRole, caller); err != nil {
			return err
		}
		if account == (common.Address{}) {
			return ErrInvalidReceiver
		}
		existing, err := vr.store.loadCredential(account)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyHasToken
		}
		stake := vr.store.getUint(stakeAmountKey)
		if !stake.IsZero() {
			ledger, err := vr.ledger()
			if err != nil {
				return err
			}
			if err := ledger.transferFrom(vr.addr, account, vr.addr, stake); err != nil {
				return fmt.Errorf("escrow stake: %w", err)
			}
		}
		id := vr.store.getUint64(nextTokenIDKey)
		vr.store.setUint64(nextTokenIDKey, id+1)
		cred := &VoterCredential{
			TokenID: id,
			Owner:   account,
			Active:  true,
			Staked:  stake,
			URI:     vr.store.getString(uriKey),
		}
		if err := vr.store.saveCredential(cred); err != nil {
			return err
		}
		vr.store.setAddress(vr.tokenOwnerKey(id), account)
		vr.store.setUint64(totalSupplyKey, vr.store.getUint64(totalSupplyKey)+1)

		vr.dao.emit(Event{Contract: vr.addr, Kind: EventVoterMinted, Account: account, Other: caller, Amount: uint256.NewInt(id)})
		log.Debug("Voting token minted", "account", account, "id", id, "stake", stake)
		return nil
	})
}

// Register records account as a candidate under label. Only the holder of
// an active voting token can register itself.
func (vr *VoterRegistry) Register(caller, account common.Address, label string) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if caller != account {
			return ErrNotSelf
		}
		cred, err := vr.store.loadCredential(account)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrNoToken
		}
		if !cred.Active {
			return ErrCredentialInactive
		}
		cred.Registered = true
		cred.Label = label
		if err := vr.store.saveCredential(cred); err != nil {
			return err
		}
		listed := vr.store.makeKey(listedPrefix, account.Bytes())
		if !vr.store.getBool(listed) {
			count := vr.store.getUint64(candidateCountKey)
			vr.store.setAddress(vr.candidateKey(count), account)
			vr.store.setUint64(candidateCountKey, count+1)
			vr.store.setBool(listed, true)
		}
		vr.dao.emit(Event{Contract: vr.addr, Kind: EventVoterRegistered, Account: account, Text: label})
		return nil
	})
}

// Vote casts the caller's vote for candidate, replacing any earlier vote.
func (vr *VoterRegistry) Vote(caller, candidate common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		cred, err := vr.store.loadCredential(caller)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrNoToken
		}
		if !cred.Active {
			return ErrCredentialInactive
		}
		if !cred.Registered {
			return ErrNotRegistered
		}
		target, err := vr.store.loadCredential(candidate)
		if err != nil {
			return err
		}
		if target == nil || !target.Registered || !target.Active {
			return ErrInvalidCandidate
		}
		ledger, err := vr.ledger()
		if err != nil {
			return err
		}
		if ledger.balanceOf(caller).Lt(vr.store.getUint(minTokenReqKey)) {
			return ErrInsufficientBalance
		}
		if cred.HasVote {
			vr.decrementTally(cred.VotedFor)
		}
		vr.incrementTally(candidate)
		cred.HasVote = true
		cred.VotedFor = candidate
		if err := vr.store.saveCredential(cred); err != nil {
			return err
		}
		vr.dao.emit(Event{Contract: vr.addr, Kind: EventVoted, Account: caller, Other: candidate})
		return nil
	})
}

// Recluse deactivates the caller's voting token: its vote leaves the tally
// and the escrowed stake is returned. The token itself is kept.
func (vr *VoterRegistry) Recluse(caller common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		cred, err := vr.store.loadCredential(caller)
		if err != nil {
			return err
		}
		if cred == nil || !cred.Active {
			return ErrAlreadyInactive
		}
		if cred.HasVote {
			vr.decrementTally(cred.VotedFor)
			cred.HasVote = false
			cred.VotedFor = common.Address{}
		}
		if err := vr.refundStake(cred); err != nil {
			return err
		}
		cred.Active = false
		if err := vr.store.saveCredential(cred); err != nil {
			return err
		}
		vr.dao.emit(Event{Contract: vr.addr, Kind: EventReclused, Account: caller})
		log.Debug("Voter reclused", "account", caller)
		return nil
	})
}

// VoluntaryBurn destroys the caller's own voting token.
func (vr *VoterRegistry) VoluntaryBurn(caller common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		return vr.burn(caller, caller)
	})
}

// Burn destroys the voting token of account. Restricted to BurnerRole.
func (vr *VoterRegistry) Burn(caller, account common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(BurnerRole, caller); err != nil {
			return err
		}
		return vr.burn(caller, account)
	})
}

// SetMinimumTokenReq sets the ledger balance needed to vote. Restricted to
// MinReqRole.
func (vr *VoterRegistry) SetMinimumTokenReq(caller common.Address, amount *uint256.Int) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(MinReqRole, caller); err != nil {
			return err
		}
		vr.store.setUint(minTokenReqKey, amount)
		return nil
	})
}

// SetStakeAmount sets the stake escrowed at mint. Restricted to VoteAdminRole.
func (vr *VoterRegistry) SetStakeAmount(caller common.Address, amount *uint256.Int) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(VoteAdminRole, caller); err != nil {
			return err
		}
		vr.store.setUint(stakeAmountKey, amount)
		return nil
	})
}

// SetURI sets the metadata URI handed to new and refreshed tokens.
// Restricted to NFTManagerRole.
func (vr *VoterRegistry) SetURI(caller common.Address, uri string) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		if err := vr.checkRole(NFTManagerRole, caller); err != nil {
			return err
		}
		vr.store.setString(uriKey, uri)
		vr.dao.emit(Event{Contract: vr.addr, Kind: EventVoterURIChanged, Account: caller, Text: uri})
		return nil
	})
}

// RefreshTokenURI copies the current metadata URI onto the caller's token.
func (vr *VoterRegistry) RefreshTokenURI(caller common.Address) error {
	return vr.dao.exec(func() error {
		if err := vr.whenNotPaused(); err != nil {
			return err
		}
		cred, err := vr.store.loadCredential(caller)
		if err != nil {
			return err
		}
		if cred == nil {
			return ErrNoToken
		}
		cred.URI = vr.store.getString(uriKey)
		return vr.store.saveCredential(cred)
	})
}

// TransferCredential always fails: voting tokens are bound to their holder.
func (vr *VoterRegistry) TransferCredential(caller, to common.Address, tokenID uint64) error {
	return ErrSoulbound
}

// AssessVotes returns the number of votes currently cast for candidate.
func (vr *VoterRegistry) AssessVotes(candidate common.Address) uint64 {
	var tally uint64
	vr.dao.view(func() { tally = vr.assessVotes(candidate) })
	return tally
}

// MinimumTokenReq returns the ledger balance needed to vote
func (vr *VoterRegistry) MinimumTokenReq() *uint256.Int {
	var amount *uint256.Int
	vr.dao.view(func() { amount = vr.store.getUint(minTokenReqKey) })
	return amount
}

// StakeAmount returns the stake escrowed at mint
func (vr *VoterRegistry) StakeAmount() *uint256.Int {
	var amount *uint256.Int
	vr.dao.view(func() { amount = vr.store.getUint(stakeAmountKey) })
	return amount
}

// URI returns the metadata URI for tokens
func (vr *VoterRegistry) URI() string {
	var uri string
	vr.dao.view(func() { uri = vr.store.getString(uriKey) })
	return uri
}

// BalanceOf returns the number of voting tokens held by account, 0 or 1
func (vr *VoterRegistry) BalanceOf(account common.Address) uint64 {
	var n uint64
	vr.dao.view(func() {
		if cred, err := vr.store.loadCredential(account); err == nil && cred != nil {
			n = 1
		}
	})
	return n
}

// TotalSupply returns the number of voting tokens in existence
func (vr *VoterRegistry) TotalSupply() uint64 {
	var n uint64
	vr.dao.view(func() { n = vr.store.getUint64(totalSupplyKey) })
	return n
}

// OwnerOf returns the holder of a voting token
func (vr *VoterRegistry) OwnerOf(tokenID uint64) (common.Address, error) {
	var owner common.Address
	vr.dao.view(func() { owner = vr.store.getAddress(vr.tokenOwnerKey(tokenID)) })
	if owner == (common.Address{}) {
		return common.Address{}, ErrNoToken
	}
	return owner, nil
}

// CredentialOf returns the voting token of account
func (vr *VoterRegistry) CredentialOf(account common.Address) (*VoterCredential, error) {
	var (
		cred *VoterCredential
		err  error
	)
	vr.dao.view(func() { cred, err = vr.store.loadCredential(account) })
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrNoToken
	}
	return cred, nil
}

// Candidates returns every registered candidate holding an active token, in
// registration order.
func (vr *VoterRegistry) Candidates() []common.Address {
	var candidates []common.Address
	vr.dao.view(func() {
		count := vr.store.getUint64(candidateCountKey)
		for i := uint64(0); i < count; i++ {
			addr := vr.store.getAddress(vr.candidateKey(i))
			cred, err := vr.store.loadCredential(addr)
			if err != nil || cred == nil || !cred.Registered || !cred.Active {
				continue
			}
			candidates = append(candidates, addr)
		}
	})
	return candidates
}

func (vr *VoterRegistry) credentialOf(account common.Address) (*VoterCredential, error) {
	return vr.store.loadCredential(account)
}

func (vr *VoterRegistry) assessVotes(candidate common.Address) uint64 {
	return vr.store.getUint64(vr.tallyKey(candidate))
}

func (vr *VoterRegistry) incrementTally(candidate common.Address) {
	vr.store.setUint64(vr.tallyKey(candidate), vr.assessVotes(candidate)+1)
}

func (vr *VoterRegistry) decrementTally(candidate common.Address) {
	if tally := vr.assessVotes(candidate); tally > 0 {
		vr.store.setUint64(vr.tallyKey(candidate), tally-1)
	}
}

func (vr *VoterRegistry) burn(caller, account common.Address) error {
	cred, err := vr.store.loadCredential(account)
	if err != nil {
		return err
	}
	if cred == nil {
		return ErrNoToken
	}
	if cred.HasVote {
		vr.decrementTally(cred.VotedFor)
	}
	if err := vr.refundStake(cred); err != nil {
		return err
	}
	vr.store.deleteCredential(account)
	vr.store.setAddress(vr.tokenOwnerKey(cred.TokenID), common.Address{})
	vr.store.setUint64(totalSupplyKey, vr.store.getUint64(totalSupplyKey)-1)

	vr.dao.emit(Event{Contract: vr.addr, Kind: EventVoterBurned, Account: account, Other: caller, Amount: uint256.NewInt(cred.TokenID)})
	log.Debug("Voting token burned", "account", account, "id", cred.TokenID, "by", caller)
	return nil
}

// refundStake returns the escrowed stake of cred to its holder
func (vr *VoterRegistry) refundStake(cred *VoterCredential) error {
	if cred.Staked == nil || cred.Staked.IsZero() {
		return nil
	}
	ledger, err := vr.ledger()
	if err != nil {
		return err
	}
	if err := ledger.transfer(vr.addr, cred.Owner, cred.Staked); err != nil {
		return fmt.Errorf("refund stake: %w", err)
	}
	cred.Staked = new(uint256.Int)
	return nil
}

func (vr *VoterRegistry) ledger() (*Ledger, error) {
	target := vr.store.getAddress(ledgerTargetKey)
	if target == (common.Address{}) {
		return nil, ErrLedgerNotTargeted
	}
	return vr.dao.ledgerAt(target)
}

func (vr *VoterRegistry) tallyKey(candidate common.Address) common.Hash {
	return vr.store.makeKey(tallyPrefix, candidate.Bytes())
}

func (vr *VoterRegistry) tokenOwnerKey(id uint64) common.Hash {
	return vr.store.makeKey(tokenOwnerPrefix, uint256.NewInt(id).PaddedBytes(8))
}

func (vr *VoterRegistry) candidateKey(index uint64) common.Hash {
	return vr.store.makeKey(candidatePrefix, uint256.NewInt(index).PaddedBytes(8))
}
