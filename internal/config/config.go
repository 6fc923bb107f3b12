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

// Package config loads the deployment parameters of a DAO from a TOML file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/daobi-dao/daobi/governance"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"
)

// DefaultDeployer deploys the contracts when no deployer is configured.
var DefaultDeployer = common.HexToAddress("0x000000000000000000000000000000000000dA0b")

// File is the on-disk configuration. Amounts are decimal strings in the
// smallest token unit, durations use time.ParseDuration syntax.
type File struct {
	Deployer string          `toml:"deployer"`
	Token    TokenSection    `toml:"token"`
	Treasury TreasurySection `toml:"treasury"`
	Voting   VotingSection   `toml:"voting"`
	Seal     SealSection     `toml:"seal"`
}

type TokenSection struct {
	Name          string `toml:"name"`
	Symbol        string `toml:"symbol"`
	Decimals      uint8  `toml:"decimals"`
	InitialSupply string `toml:"initial_supply"`
}

type TreasurySection struct {
	Vault          string `toml:"vault,omitempty"`
	SwapFee        uint64 `toml:"swap_fee"`
	Salary         string `toml:"salary"`
	SalaryInterval string `toml:"salary_interval"`
}

type VotingSection struct {
	MinimumTokenReq string `toml:"minimum_token_req"`
	StakeAmount     string `toml:"stake_amount"`
	URI             string `toml:"uri"`
}

type SealSection struct {
	URI string `toml:"uri"`
}

// Settings is a validated configuration ready for deployment.
type Settings struct {
	Deployer   common.Address
	Governance *governance.Config
}

// Default returns the configuration file equivalent of governance.DefaultConfig.
func Default() *File {
	def := governance.DefaultConfig()
	return &File{
		Deployer: DefaultDeployer.Hex(),
		Token: TokenSection{
			Name:          def.Name,
			Symbol:        def.Symbol,
			Decimals:      def.Decimals,
			InitialSupply: def.InitialSupply.Dec(),
		},
		Treasury: TreasurySection{
			SwapFee:        def.SwapFee,
			Salary:         def.ChancellorSalary.Dec(),
			SalaryInterval: def.SalaryInterval.String(),
		},
		Voting: VotingSection{
			MinimumTokenReq: def.MinimumTokenReq.Dec(),
			StakeAmount:     def.StakeAmount.Dec(),
			URI:             def.VoterURI,
		},
		Seal: SealSection{URI: def.SealURI},
	}
}

// Decode parses TOML data over the defaults, applies environment overrides
// and validates the result. Unknown keys are rejected.
func Decode(data []byte) (*File, error) {
	file := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(file); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}
	if err := applyEnv(file); err != nil {
		return nil, err
	}
	if err := Validate(file); err != nil {
		return nil, err
	}
	return file, nil
}

// ReadFile reads and decodes a configuration file. An empty path yields the
// defaults with environment overrides.
func ReadFile(path string) (*File, error) {
	if path == "" {
		return Decode(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Decode(data)
}

// Parse decodes TOML data into deployment settings.
func Parse(data []byte) (*Settings, error) {
	file, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return file.Settings()
}

// Load reads a configuration file into deployment settings.
func Load(path string) (*Settings, error) {
	file, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return file.Settings()
}

// Encode writes f as TOML.
func (f *File) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(f)
}

// Settings validates f and converts it into deployment settings.
func (f *File) Settings() (*Settings, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	config := &governance.Config{
		Name:     f.Token.Name,
		Symbol:   f.Token.Symbol,
		Decimals: f.Token.Decimals,
		SwapFee:  f.Treasury.SwapFee,
		VoterURI: f.Voting.URI,
		SealURI:  f.Seal.URI,
	}
	var err error
	if config.InitialSupply, err = parseAmount("token.initial_supply", f.Token.InitialSupply); err != nil {
		return nil, err
	}
	if config.ChancellorSalary, err = parseAmount("treasury.salary", f.Treasury.Salary); err != nil {
		return nil, err
	}
	if config.MinimumTokenReq, err = parseAmount("voting.minimum_token_req", f.Voting.MinimumTokenReq); err != nil {
		return nil, err
	}
	if config.StakeAmount, err = parseAmount("voting.stake_amount", f.Voting.StakeAmount); err != nil {
		return nil, err
	}
	if config.SalaryInterval, err = time.ParseDuration(f.Treasury.SalaryInterval); err != nil {
		return nil, fmt.Errorf("treasury.salary_interval: %w", err)
	}
	if f.Treasury.Vault != "" {
		config.Vault = common.HexToAddress(f.Treasury.Vault)
	}
	return &Settings{
		Deployer:   common.HexToAddress(f.Deployer),
		Governance: config,
	}, nil
}
