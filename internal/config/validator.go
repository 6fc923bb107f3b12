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

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/daobi-dao/daobi/governance"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrMissingDeployer = errors.New("deployer address must be set")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// Validate checks addresses, amounts and ranges of a configuration file.
func Validate(f *File) error {
	if f.Deployer == "" {
		return ErrMissingDeployer
	}
	if !common.IsHexAddress(f.Deployer) {
		return fmt.Errorf("deployer %q: %w", f.Deployer, ErrInvalidAddress)
	}
	if common.HexToAddress(f.Deployer) == (common.Address{}) {
		return ErrMissingDeployer
	}
	if f.Treasury.Vault != "" && !common.IsHexAddress(f.Treasury.Vault) {
		return fmt.Errorf("treasury.vault %q: %w", f.Treasury.Vault, ErrInvalidAddress)
	}
	if f.Token.Name == "" || f.Token.Symbol == "" {
		return errors.New("token name and symbol must be set")
	}
	if f.Treasury.SwapFee > governance.MaxSwapFee {
		return fmt.Errorf("treasury.swap_fee %d above %d: %w", f.Treasury.SwapFee, governance.MaxSwapFee, governance.ErrFeeTooHigh)
	}
	interval, err := time.ParseDuration(f.Treasury.SalaryInterval)
	if err != nil {
		return fmt.Errorf("treasury.salary_interval: %w", err)
	}
	if interval < 0 {
		return fmt.Errorf("treasury.salary_interval %s: %w", interval, governance.ErrInvalidInterval)
	}
	return nil
}

// applyEnv overrides file values with DAOBI_* environment variables.
func applyEnv(f *File) error {
	f.Deployer = getEnvOrDefault("DAOBI_DEPLOYER", f.Deployer)
	f.Treasury.Vault = getEnvOrDefault("DAOBI_VAULT", f.Treasury.Vault)
	f.Treasury.Salary = getEnvOrDefault("DAOBI_SALARY", f.Treasury.Salary)
	f.Treasury.SalaryInterval = getEnvOrDefault("DAOBI_SALARY_INTERVAL", f.Treasury.SalaryInterval)
	f.Voting.MinimumTokenReq = getEnvOrDefault("DAOBI_MIN_TOKEN_REQ", f.Voting.MinimumTokenReq)
	f.Voting.StakeAmount = getEnvOrDefault("DAOBI_STAKE_AMOUNT", f.Voting.StakeAmount)

	if fee := os.Getenv("DAOBI_SWAP_FEE"); fee != "" {
		v, err := strconv.ParseUint(fee, 10, 64)
		if err != nil {
			return fmt.Errorf("DAOBI_SWAP_FEE %q: %w", fee, ErrInvalidAmount)
		}
		f.Treasury.SwapFee = v
	}
	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseAmount(field, value string) (*uint256.Int, error) {
	if value == "" {
		return new(uint256.Int), nil
	}
	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", field, value, ErrInvalidAmount)
	}
	return amount, nil
}
