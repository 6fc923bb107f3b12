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
	"io"
	"runtime"

	"github.com/daobi-dao/daobi/governance"
	"github.com/daobi-dao/daobi/internal/config"
	"github.com/daobi-dao/daobi/internal/scenario"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	eventsFlag = &cli.BoolFlag{
		Name:  "events",
		Usage: "Print the events emitted by every step",
	}
	parallelFlag = &cli.IntFlag{
		Name:  "parallel",
		Usage: "Number of scenarios executed concurrently",
		Value: runtime.GOMAXPROCS(0),
	}
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Execute scenario scripts against freshly deployed contracts",
	ArgsUsage: "<scenario.yaml> [scenario.yaml...]",
	Flags:     []cli.Flag{configFlag, eventsFlag, parallelFlag},
	Action:    runScenarios,
}

// maxStepEvents bounds the events a single step may emit before the event
// feed would block.
const maxStepEvents = 1024

// stepReport is the outcome of one step and the events it emitted.
type stepReport struct {
	result scenario.Result
	events []governance.Event
}

// report is the outcome of one scenario.
type report struct {
	path   string
	steps  []stepReport
	root   common.Hash
	failed int
}

func runScenarios(ctx *cli.Context) error {
	paths := ctx.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no scenario given")
	}
	settings, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}

	reports := make([]*report, len(paths))
	var g errgroup.Group
	g.SetLimit(max(ctx.Int(parallelFlag.Name), 1))
	for i, path := range paths {
		g.Go(func() error {
			rep, err := executeScenario(settings, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := colorable.NewColorableStdout()
	failed := 0
	for _, rep := range reports {
		printReport(out, rep, ctx.Bool(eventsFlag.Name))
		failed += rep.failed
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d step(s) failed", failed), 1)
	}
	return nil
}

// executeScenario deploys a fresh DAO and runs the script at path against it.
func executeScenario(settings *config.Settings, path string) (*report, error) {
	script, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	clock := new(mclock.Simulated)
	dao, err := governance.NewMemory(settings.Deployer, settings.Governance, clock)
	if err != nil {
		return nil, err
	}
	runner, err := scenario.NewRunner(dao, clock, script.Accounts)
	if err != nil {
		return nil, err
	}

	events := make(chan governance.Event, maxStepEvents)
	sub := dao.SubscribeEvents(events)
	defer sub.Unsubscribe()

	rep := &report{path: path}
	for i, step := range script.Steps {
		sr := stepReport{result: runner.Step(i, step)}
	drain:
		for {
			select {
			case ev := <-events:
				sr.events = append(sr.events, ev)
			default:
				break drain
			}
		}
		if !sr.result.Passed {
			rep.failed++
		}
		rep.steps = append(rep.steps, sr)
	}
	rep.root = dao.StateRoot()
	log.Info("Scenario finished", "path", path, "steps", len(rep.steps), "failed", rep.failed, "root", rep.root)
	return rep, nil
}

func printReport(w io.Writer, rep *report, withEvents bool) {
	var (
		pass  = color.New(color.FgGreen, color.Bold).SprintFunc()
		fail  = color.New(color.FgRed, color.Bold).SprintFunc()
		faint = color.New(color.Faint).SprintFunc()
	)
	fmt.Fprintf(w, "%s\n", rep.path)
	for _, sr := range rep.steps {
		res := sr.result
		status := pass("PASS")
		if !res.Passed {
			status = fail("FAIL")
		}
		line := fmt.Sprintf("  %s %3d %s", status, res.Index, res.Step)
		if res.Output != "" {
			line += " = " + res.Output
		} else if res.Err != nil {
			line += " -> " + scenario.KindOf(res.Err)
		}
		fmt.Fprintln(w, line)
		if !res.Passed {
			fmt.Fprintf(w, "        %s\n", res.Reason)
		}
		if withEvents {
			for _, ev := range sr.events {
				fmt.Fprintf(w, "        %s\n", faint(ev.String()))
			}
		}
	}
	fmt.Fprintf(w, "  %d steps, %d failed, state root %s\n", len(rep.steps), rep.failed, rep.root.Hex())
}
