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

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/daobi-dao/daobi/genesis"
	"github.com/daobi-dao/daobi/governance"
	"github.com/daobi-dao/daobi/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var (
	rolesCommand = &cli.Command{
		Name:   "roles",
		Usage:  "Print every role name and its identifier",
		Action: printRoles,
	}
	deployerFlag = &cli.StringFlag{
		Name:  "deployer",
		Usage: "Deploying account (defaults to the configured deployer)",
	}
	addressesCommand = &cli.Command{
		Name:   "addresses",
		Usage:  "Print the contract addresses a deployer produces",
		Flags:  []cli.Flag{configFlag, deployerFlag},
		Action: printAddresses,
	}
	dumpConfigCommand = &cli.Command{
		Name:   "dumpconfig",
		Usage:  "Print the effective configuration as TOML",
		Flags:  []cli.Flag{configFlag},
		Action: dumpConfig,
	}
)

func printRoles(ctx *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, role := range governance.Roles() {
		fmt.Fprintf(w, "%s\t%s\n", role, role.Hash().Hex())
	}
	return w.Flush()
}

func printAddresses(ctx *cli.Context) error {
	var deployer common.Address
	if hex := ctx.String(deployerFlag.Name); hex != "" {
		if !common.IsHexAddress(hex) {
			return fmt.Errorf("invalid deployer address %q", hex)
		}
		deployer = common.HexToAddress(hex)
	} else {
		settings, err := config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		deployer = settings.Deployer
	}
	d := genesis.PredictDeployment(deployer)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "deployer\t%s\n", d.Deployer.Hex())
	fmt.Fprintf(w, "ledger\t%s\tnonce %d\n", d.Ledger.Hex(), genesis.LedgerNonce)
	fmt.Fprintf(w, "votes\t%s\tnonce %d\n", d.VoterRegistry.Hex(), genesis.VoterRegistryNonce)
	fmt.Fprintf(w, "seal\t%s\tnonce %d\n", d.SealRegistry.Hex(), genesis.SealRegistryNonce)
	return w.Flush()
}

func dumpConfig(ctx *cli.Context) error {
	file, err := config.ReadFile(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	return file.Encode(os.Stdout)
}
