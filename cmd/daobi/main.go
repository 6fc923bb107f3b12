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

// daobi is the command line front end of the DAObi governance contracts. It
// deploys the contracts into an in-memory state and drives them with
// scenario scripts.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

var app = &cli.App{
	Name:  "daobi",
	Usage: "DAObi governance contracts",
	Commands: []*cli.Command{
		runCommand,
		rolesCommand,
		addressesCommand,
		dumpConfigCommand,
	},
	Flags:  loggingFlags,
	Before: setupLogging,
	After: func(ctx *cli.Context) error {
		closeLogging()
		return nil
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
