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

// Package scenario executes scripted call sequences against a DAO.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Script is a YAML scenario: named accounts and the calls made by them.
type Script struct {
	Accounts map[string]string `yaml:"accounts"`
	Steps    []Step            `yaml:"steps"`
}

// Step is one call, optionally preceded by a clock advance. Expect is "ok"
// (the default) or an error kind such as "unauthorized". Want compares the
// value returned by read calls.
type Step struct {
	Name    string            `yaml:"name,omitempty"`
	Caller  string            `yaml:"caller,omitempty"`
	Call    string            `yaml:"call,omitempty"`
	Args    map[string]string `yaml:"args,omitempty"`
	Advance string            `yaml:"advance,omitempty"`
	Expect  string            `yaml:"expect,omitempty"`
	Want    string            `yaml:"want,omitempty"`
}

// String returns a short description of the step
func (s Step) String() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Call == "" {
		return "advance " + s.Advance
	}
	return fmt.Sprintf("%s by %s", s.Call, s.Caller)
}

// Parse decodes and checks a YAML script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	var script Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Load reads and parses a YAML script.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	for i, step := range s.Steps {
		if step.Call == "" && step.Advance == "" {
			return fmt.Errorf("step %d: neither call nor advance set", i)
		}
		if step.Call != "" {
			if _, ok := calls[step.Call]; !ok {
				return fmt.Errorf("step %d: %w: %s", i, ErrUnknownCall, step.Call)
			}
		}
		if step.Advance != "" {
			d, err := time.ParseDuration(step.Advance)
			if err != nil {
				return fmt.Errorf("step %d: advance: %w", i, err)
			}
			if d < 0 {
				return fmt.Errorf("step %d: negative advance %s", i, d)
			}
		}
		if step.Expect != "" && step.Expect != ExpectOK {
			if _, ok := lookupKind(step.Expect); !ok {
				return fmt.Errorf("step %d: unknown error kind %q", i, step.Expect)
			}
		}
	}
	return nil
}
