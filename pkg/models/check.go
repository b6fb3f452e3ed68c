/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package models holds the data types shared between the node side declarer,
// the declaration store and the aggregator.
package models

import (
	"fmt"
	"strings"
	"time"
)

// ExecMode selects how the checking engine reaches a check.
type ExecMode string

const (
	// ModeDirect checks are run by the remote checking engine over the network.
	ModeDirect ExecMode = "direct"
	// ModeAgent checks run locally through the node's execution daemon.
	ModeAgent ExecMode = "agent"
)

const (
	DefaultPluginDir     = "/usr/lib64/nagios/plugins"
	DefaultTimeout       = Duration(10 * time.Second)
	DefaultCheckInterval = Duration(5 * time.Minute)
)

// UnmarshalText accepts the mode names case-insensitively; "nrpe" is kept as an alias of agent.
func (m *ExecMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", string(ModeDirect):
		*m = ModeDirect
	case string(ModeAgent), "nrpe":
		*m = ModeAgent
	default:
		return fmt.Errorf("%w: %q", errInvalidExecMode, string(b))
	}

	return nil
}

// CheckIntent is what an operator asks for: "monitor this".
type CheckIntent struct {
	Service       string   `json:"service"`
	Command       string   `json:"command,omitempty"`   // literal command line or relative script name
	Arguments     []string `json:"arguments,omitempty"` // substituted for $ARGn$ by the engine
	ScriptSource  string   `json:"script_source,omitempty"`
	ScriptSHA256  string   `json:"script_sha256,omitempty"` // pins the content of ScriptSource
	PluginDir     string   `json:"plugin_dir,omitempty"`
	Delegate      string   `json:"delegate,omitempty"`
	Mode          ExecMode `json:"mode,omitempty"`
	RunAs         string   `json:"run_as,omitempty"`
	Host          string   `json:"host,omitempty"`
	Address       string   `json:"address,omitempty"`
	Timeout       Duration `json:"timeout,omitempty"`
	CheckInterval Duration `json:"check_interval,omitempty"`
	NotesURL      string   `json:"notes_url,omitempty"` // template, %s is replaced by the service name
}

// WithDefaults returns a copy of the intent with empty fields filled in from
// the node facts and the built-in defaults. The receiver is not modified.
func (c CheckIntent) WithDefaults(facts *Facts) CheckIntent {
	out := c
	out.Arguments = append([]string(nil), c.Arguments...)

	if out.Mode == "" {
		out.Mode = ModeDirect
	}

	if out.PluginDir == "" {
		out.PluginDir = DefaultPluginDir
	}

	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}

	if out.CheckInterval <= 0 {
		out.CheckInterval = DefaultCheckInterval
	}

	if facts != nil {
		if out.Host == "" {
			out.Host = facts.Hostname
		}

		if out.Address == "" {
			out.Address = facts.Address
		}
	}

	return out
}
