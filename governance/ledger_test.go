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
	"math/rand"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestLedger_Deployment(t *testing.T) {
	env := newTestEnv(t)
	config := DefaultConfig()

	require.Equal(t, "DAObi", env.ledger.Name())
	require.Equal(t, "DB", env.ledger.Symbol())
	require.Equal(t, uint8(18), env.ledger.Decimals())
	require.True(t, env.ledger.TotalSupply().Eq(config.InitialSupply))
	require.True(t, env.ledger.BalanceOf(env.owner).Eq(config.InitialSupply))
	require.Equal(t, env.owner, env.ledger.Vault())
	require.Equal(t, config.SwapFee, env.ledger.SwapFee())
	require.True(t, env.ledger.ChancellorSalary().Eq(config.ChancellorSalary))
	require.Equal(t, config.SalaryInterval, env.ledger.SalaryInterval())
	require.Equal(t, env.votes.Address(), env.ledger.VotingContract())
	require.Equal(t, env.seal.Address(), env.ledger.SealContract())

	_, paid := env.ledger.LastSalaryPayment()
	require.False(t, paid)
}

func TestLedger_Transfer(t *testing.T) {
	env := newTestEnv(t)
	supply := env.ledger.TotalSupply()

	require.NoError(t, env.ledger.Transfer(env.owner, env.addr1, uint256.NewInt(500)))
	require.Equal(t, uint64(500), env.ledger.BalanceOf(env.addr1).Uint64())

	err := env.ledger.Transfer(env.addr1, env.addr2, uint256.NewInt(501))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, uint64(500), env.ledger.BalanceOf(env.addr1).Uint64())
	require.True(t, env.ledger.BalanceOf(env.addr2).IsZero())

	err = env.ledger.Transfer(env.addr1, common.Address{}, uint256.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidReceiver)

	require.NoError(t, env.ledger.Transfer(env.addr1, env.addr2, uint256.NewInt(500)))
	require.True(t, env.ledger.BalanceOf(env.addr1).IsZero())
	require.True(t, env.ledger.TotalSupply().Eq(supply))
}

func TestLedger_TransferFrom(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.ledger.Approve(env.owner, env.addr1, uint256.NewInt(100)))
	require.Equal(t, uint64(100), env.ledger.Allowance(env.owner, env.addr1).Uint64())

	err := env.ledger.TransferFrom(env.addr1, env.owner, env.addr2, uint256.NewInt(101))
	require.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, env.ledger.TransferFrom(env.addr1, env.owner, env.addr2, uint256.NewInt(60)))
	require.Equal(t, uint64(60), env.ledger.BalanceOf(env.addr2).Uint64())
	require.Equal(t, uint64(40), env.ledger.Allowance(env.owner, env.addr1).Uint64())

	// a failed move must not consume the allowance
	require.NoError(t, env.ledger.Approve(env.addr2, env.addr1, uint256.NewInt(1000)))
	err = env.ledger.TransferFrom(env.addr1, env.addr2, env.addr3, uint256.NewInt(61))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, uint64(1000), env.ledger.Allowance(env.addr2, env.addr1).Uint64())
}

func TestLedger_ZeroSenderCannotMint(t *testing.T) {
	env := newTestEnv(t)
	supply := env.ledger.TotalSupply()
	amount := uint256.NewInt(1_000_000)

	err := env.ledger.Transfer(common.Address{}, env.addr1, amount)
	require.ErrorIs(t, err, ErrInvalidSender)

	err = env.ledger.Approve(common.Address{}, env.addr1, amount)
	require.ErrorIs(t, err, ErrInvalidSender)
	err = env.ledger.TransferFrom(env.addr1, common.Address{}, env.addr2, amount)
	require.ErrorIs(t, err, ErrInsufficientAllowance)

	require.True(t, env.ledger.BalanceOf(env.addr1).IsZero())
	require.True(t, env.ledger.BalanceOf(env.addr2).IsZero())
	require.Equal(t, supply, env.ledger.TotalSupply())
}

func TestLedger_MintSplitsSwapFee(t *testing.T) {
	env := newTestEnv(t)
	supply := env.ledger.TotalSupply()
	vaultBefore := env.ledger.BalanceOf(env.owner)

	require.ErrorIs(t, env.ledger.Mint(env.addr1, env.addr1, uint256.NewInt(1000)), ErrUnauthorized)
	require.ErrorIs(t, env.ledger.Mint(env.treasurer, env.addr1, new(uint256.Int)), ErrZeroAmount)

	require.NoError(t, env.ledger.Mint(env.treasurer, env.addr1, uint256.NewInt(1000)))
	require.Equal(t, uint64(700), env.ledger.BalanceOf(env.addr1).Uint64())

	vaultGain := new(uint256.Int).Sub(env.ledger.BalanceOf(env.owner), vaultBefore)
	require.Equal(t, uint64(300), vaultGain.Uint64())

	supplyGain := new(uint256.Int).Sub(env.ledger.TotalSupply(), supply)
	require.Equal(t, uint64(1000), supplyGain.Uint64())
}

func TestLedger_Burn(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ledger.Transfer(env.owner, env.addr1, uint256.NewInt(10)))
	supply := env.ledger.TotalSupply()

	require.ErrorIs(t, env.ledger.Burn(env.addr1, uint256.NewInt(11)), ErrInsufficientBalance)
	require.NoError(t, env.ledger.Burn(env.addr1, uint256.NewInt(4)))
	require.Equal(t, uint64(6), env.ledger.BalanceOf(env.addr1).Uint64())

	burned := new(uint256.Int).Sub(supply, env.ledger.TotalSupply())
	require.Equal(t, uint64(4), burned.Uint64())
}

func TestLedger_AdjustSalary(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(t, env.ledger.AdjustSalaryInterval(env.addr1, time.Hour), ErrUnauthorized)
	require.ErrorIs(t, env.ledger.AdjustSalaryInterval(env.treasurer, -time.Second), ErrInvalidInterval)
	require.NoError(t, env.ledger.AdjustSalaryInterval(env.treasurer, 2*time.Hour))
	require.Equal(t, 2*time.Hour, env.ledger.SalaryInterval())

	require.ErrorIs(t, env.ledger.AdjustSalaryAmount(env.chancellor, uint256.NewInt(1)), ErrUnauthorized)
	require.NoError(t, env.ledger.AdjustSalaryAmount(env.treasurer, uint256.NewInt(42)))
	require.Equal(t, uint64(42), env.ledger.ChancellorSalary().Uint64())
}

func TestLedger_RetargetDAO(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(t, env.ledger.RetargetDAO(env.addr1, env.addr1), ErrUnauthorized)
	require.False(t, env.ledger.Paused())

	require.ErrorIs(t, env.ledger.RetargetDAO(env.treasurer, common.Address{}), ErrInvalidReceiver)

	require.NoError(t, env.ledger.RetargetDAO(env.treasurer, env.addr1))
	require.Equal(t, env.addr1, env.ledger.Vault())
	require.True(t, env.ledger.Paused())

	// retargeting a paused ledger keeps it paused
	require.NoError(t, env.ledger.RetargetDAO(env.treasurer, env.addr2))
	require.Equal(t, env.addr2, env.ledger.Vault())
	require.True(t, env.ledger.Paused())

	// fees flow to the new vault once resumed
	require.NoError(t, env.ledger.Unpause(env.pauser))
	require.NoError(t, env.ledger.Mint(env.treasurer, env.addr3, uint256.NewInt(100)))
	require.Equal(t, uint64(30), env.ledger.BalanceOf(env.addr2).Uint64())
}

func TestLedger_SetSwapFee(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(t, env.ledger.SetSwapFee(env.addr1, 100), ErrUnauthorized)
	require.ErrorIs(t, env.ledger.SetSwapFee(env.treasurer, MaxSwapFee+1), ErrFeeTooHigh)
	require.NoError(t, env.ledger.SetSwapFee(env.treasurer, 5000))
	require.Equal(t, uint64(5000), env.ledger.SwapFee())

	require.NoError(t, env.ledger.SetSwapFee(env.treasurer, 0))
	require.NoError(t, env.ledger.Mint(env.treasurer, env.addr1, uint256.NewInt(10)))
	require.Equal(t, uint64(10), env.ledger.BalanceOf(env.addr1).Uint64())
}

func TestLedger_RetargetContracts(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(t, env.ledger.RetargetVoting(env.treasurer, env.addr1), ErrUnknownContract)
	require.ErrorIs(t, env.ledger.RetargetSeal(env.treasurer, env.votes.Address()), ErrUnknownContract)
	require.ErrorIs(t, env.ledger.RetargetVoting(env.addr1, env.votes.Address()), ErrUnauthorized)

	require.NoError(t, env.ledger.RetargetVoting(env.treasurer, env.votes.Address()))
	require.NoError(t, env.ledger.RetargetSeal(env.treasurer, env.seal.Address()))
	require.Equal(t, env.votes.Address(), env.ledger.VotingContract())
	require.Equal(t, env.seal.Address(), env.ledger.SealContract())
}

// TestLedger_Conservation checks that random transfers never create or
// destroy tokens.
func TestLedger_Conservation(t *testing.T) {
	env := newTestEnv(t)
	accounts := []common.Address{env.owner, env.addr1, env.addr2, env.addr3, env.treasurer}
	supply := env.ledger.TotalSupply()

	for _, acc := range accounts[1:] {
		require.NoError(t, env.ledger.Transfer(env.owner, acc, uint256.NewInt(1000)))
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		from := accounts[rng.Intn(len(accounts))]
		to := accounts[rng.Intn(len(accounts))]
		amount := uint256.NewInt(uint64(rng.Intn(1500)))

		before := env.ledger.BalanceOf(from)
		err := env.ledger.Transfer(from, to, amount)
		if before.Lt(amount) {
			if !errors.Is(err, ErrInsufficientBalance) {
				t.Fatalf("step %d: expected insufficient balance, got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("step %d: transfer failed: %v", i, err)
		}
	}

	sum := new(uint256.Int)
	for _, acc := range accounts {
		sum.Add(sum, env.ledger.BalanceOf(acc))
	}
	if !sum.Eq(supply) || !env.ledger.TotalSupply().Eq(supply) {
		t.Errorf("supply not conserved: balances %s, supply %s, want %s", sum, env.ledger.TotalSupply(), supply)
	}
}
