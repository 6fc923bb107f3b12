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
	"sync"

	"github.com/daobi-dao/daobi/genesis"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/triedb"
)

// DAO deploys the ledger, the voter registry and the seal registry into one
// shared StateDB and executes every call against it as a single atomic unit.
//
// Calls are serialized by one lock. Each mutating call runs between a state
// snapshot and either a revert (on error) or a finalise (on success), so a
// failure anywhere in a cross-contract call leaves no trace. Events raised
// during a call are published only after it succeeded.
type DAO struct {
	mu    sync.Mutex
	pubMu sync.Mutex // keeps event delivery in call order

	db         *state.StateDB
	clock      Clock
	deployment *genesis.Deployment

	ledger *Ledger
	votes  *VoterRegistry
	seal   *SealRegistry

	pending []Event
	feed    event.Feed
}

// NewMemoryState creates an empty in-memory StateDB.
func NewMemoryState() (*state.StateDB, error) {
	db := rawdb.NewMemoryDatabase()
	trieDB := triedb.NewDatabase(db, nil)
	return state.New(types.EmptyRootHash, state.NewDatabase(trieDB, nil))
}

// New deploys the three contracts on behalf of deployer into db. The
// deployer holds the default admin role of every contract and receives the
// initial token supply. A nil config deploys DefaultConfig, a nil clock uses
// the system clock.
func New(db *state.StateDB, deployer common.Address, config *Config, clock Clock) (*DAO, error) {
	if deployer == (common.Address{}) {
		return nil, errors.New("deployer address must be set")
	}
	if config == nil {
		config = DefaultConfig()
	}
	config = config.Copy()
	if config.SwapFee > MaxSwapFee {
		return nil, ErrFeeTooHigh
	}
	if config.SalaryInterval < 0 {
		return nil, ErrInvalidInterval
	}
	if clock == nil {
		clock = mclock.System{}
	}

	d := &DAO{
		db:         db,
		clock:      clock,
		deployment: genesis.PredictDeployment(deployer),
	}
	d.ledger = newLedger(d, d.deployment.Ledger, config)
	d.votes = newVoterRegistry(d, d.deployment.VoterRegistry)
	d.seal = newSealRegistry(d, d.deployment.SealRegistry)

	err := d.exec(func() error {
		if err := d.ledger.deploy(deployer, config); err != nil {
			return err
		}
		d.votes.deploy(deployer, config)
		d.seal.deploy(deployer, config)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("DAO deployed", "deployer", deployer,
		"ledger", d.deployment.Ledger,
		"votes", d.deployment.VoterRegistry,
		"seal", d.deployment.SealRegistry)
	return d, nil
}

// NewMemory deploys a DAO into a fresh in-memory state.
func NewMemory(deployer common.Address, config *Config, clock Clock) (*DAO, error) {
	db, err := NewMemoryState()
	if err != nil {
		return nil, err
	}
	return New(db, deployer, config, clock)
}

// Ledger returns the DAObi token contract
func (d *DAO) Ledger() *Ledger { return d.ledger }

// Votes returns the voter registry contract
func (d *DAO) Votes() *VoterRegistry { return d.votes }

// Seal returns the Chancellor's Seal contract
func (d *DAO) Seal() *SealRegistry { return d.seal }

// Deployment returns the deployer and contract addresses
func (d *DAO) Deployment() genesis.Deployment { return *d.deployment }

// SubscribeEvents delivers the events of every successful call to ch. Delivery
// blocks the publishing call until ch accepts, so ch should be buffered.
func (d *DAO) SubscribeEvents(ch chan<- Event) event.Subscription {
	return d.feed.Subscribe(ch)
}

// StateRoot returns the root hash of the governance state.
func (d *DAO) StateRoot() common.Hash {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.db.IntermediateRoot(false)
}

// exec runs fn as one atomic call and publishes its events.
func (d *DAO) exec(fn func() error) error {
	events, err := d.commit(fn)
	if err != nil {
		return err
	}
	defer d.pubMu.Unlock()

	for _, ev := range events {
		d.feed.Send(ev)
	}
	return nil
}

// commit runs fn under the call lock. Any error or panic in fn reverts every
// write it made. On success commit returns holding pubMu, so events are
// delivered in commit order.
func (d *DAO) commit(fn func() error) ([]Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := d.db.Snapshot()
	committed := false
	defer func() {
		if !committed {
			d.db.RevertToSnapshot(snapshot)
			d.pending = nil
		}
	}()
	if err := fn(); err != nil {
		return nil, err
	}
	d.db.Finalise(false)
	events := d.pending
	d.pending = nil
	committed = true

	d.pubMu.Lock()
	return events, nil
}

// view runs a read-only fn under the call lock.
func (d *DAO) view(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn()
}

// emit records an event of the running call
func (d *DAO) emit(ev Event) {
	d.pending = append(d.pending, ev)
}

func (d *DAO) ledgerAt(addr common.Address) (*Ledger, error) {
	if addr == (common.Address{}) || addr != d.ledger.addr {
		return nil, ErrUnknownContract
	}
	return d.ledger, nil
}

func (d *DAO) votesAt(addr common.Address) (*VoterRegistry, error) {
	if addr == (common.Address{}) || addr != d.votes.addr {
		return nil, ErrUnknownContract
	}
	return d.votes, nil
}

func (d *DAO) sealAt(addr common.Address) (*SealRegistry, error) {
	if addr == (common.Address{}) || addr != d.seal.addr {
		return nil, ErrUnknownContract
	}
	return d.seal, nil
}
