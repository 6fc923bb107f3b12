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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daobi-dao/daobi/governance"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	def := governance.DefaultConfig()
	require.Equal(t, DefaultDeployer, settings.Deployer)
	require.Equal(t, def.Name, settings.Governance.Name)
	require.True(t, settings.Governance.InitialSupply.Eq(def.InitialSupply))
	require.True(t, settings.Governance.ChancellorSalary.Eq(def.ChancellorSalary))
	require.Equal(t, def.SalaryInterval, settings.Governance.SalaryInterval)
	require.Equal(t, def.SwapFee, settings.Governance.SwapFee)
	require.Equal(t, common.Address{}, settings.Governance.Vault)
}

func TestParse(t *testing.T) {
	data := []byte(`
deployer = "0x00000000000000000000000000000000000000aa"

[token]
name = "Test"
symbol = "TST"
initial_supply = "5000"

[treasury]
vault = "0x00000000000000000000000000000000000000bb"
swap_fee = 250
salary = "10"
salary_interval = "1h30m"

[voting]
minimum_token_req = "3"
stake_amount = "2"
`)
	settings, err := Parse(data)
	require.NoError(t, err)

	config := settings.Governance
	require.Equal(t, common.HexToAddress("0xaa"), settings.Deployer)
	require.Equal(t, "Test", config.Name)
	require.Equal(t, "TST", config.Symbol)
	require.Equal(t, uint8(18), config.Decimals)
	require.Equal(t, uint64(5000), config.InitialSupply.Uint64())
	require.Equal(t, common.HexToAddress("0xbb"), config.Vault)
	require.Equal(t, uint64(250), config.SwapFee)
	require.Equal(t, uint64(10), config.ChancellorSalary.Uint64())
	require.Equal(t, 90*time.Minute, config.SalaryInterval)
	require.Equal(t, uint64(3), config.MinimumTokenReq.Uint64())
	require.Equal(t, uint64(2), config.StakeAmount.Uint64())
	require.Equal(t, governance.DefaultConfig().SealURI, config.SealURI)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"unknown key", "bogus = 1", nil},
		{"bad deployer", `deployer = "0x12"`, ErrInvalidAddress},
		{"zero deployer", `deployer = "0x0000000000000000000000000000000000000000"`, ErrMissingDeployer},
		{"bad vault", "[treasury]\nvault = \"nope\"", ErrInvalidAddress},
		{"fee too high", "[treasury]\nswap_fee = 10001", governance.ErrFeeTooHigh},
		{"negative interval", "[treasury]\nsalary_interval = \"-1s\"", governance.ErrInvalidInterval},
		{"bad interval", "[treasury]\nsalary_interval = \"soon\"", nil},
		{"bad amount", "[treasury]\nsalary = \"1e3\"", ErrInvalidAmount},
		{"negative amount", "[voting]\nstake_amount = \"-5\"", ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("got %v, want %v", err, tt.err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DAOBI_DEPLOYER", "0x00000000000000000000000000000000000000cc")
	t.Setenv("DAOBI_SWAP_FEE", "42")
	t.Setenv("DAOBI_SALARY_INTERVAL", "10m")
	t.Setenv("DAOBI_STAKE_AMOUNT", "7")

	settings, err := Parse([]byte(`deployer = "0x00000000000000000000000000000000000000aa"`))
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xcc"), settings.Deployer)
	require.Equal(t, uint64(42), settings.Governance.SwapFee)
	require.Equal(t, 10*time.Minute, settings.Governance.SalaryInterval)
	require.Equal(t, uint64(7), settings.Governance.StakeAmount.Uint64())
}

func TestEnvOverrideInvalidSwapFee(t *testing.T) {
	t.Setenv("DAOBI_SWAP_FEE", "ten")

	_, err := Parse([]byte(`deployer = "0x00000000000000000000000000000000000000aa"`))
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))

	path := filepath.Join(t.TempDir(), "daobi.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultDeployer, settings.Deployer)
	require.Equal(t, governance.DefaultConfig().VoterURI, settings.Governance.VoterURI)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
