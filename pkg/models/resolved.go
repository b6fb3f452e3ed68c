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

package models

import "os"

// DelegateCheckProxy is the server side delegate for agent checks: the engine
// calls the node's daemon through its check proxy instead of running the plugin.
const DelegateCheckProxy = "nrpe"

// Execution is one of *DirectCheck or *AgentCheck.
type Execution interface {
	Mode() ExecMode
	CommandLine() string
	isExecution()
}

// DirectCheck is run by the remote checking engine itself.
type DirectCheck struct {
	Line         string   `json:"command_line"`
	Arguments    []string `json:"arguments,omitempty"`
	ScriptSource string   `json:"script_source,omitempty"`
	Delegate     string   `json:"delegate,omitempty"`
}

func (*DirectCheck) Mode() ExecMode { return ModeDirect }

func (d *DirectCheck) CommandLine() string { return d.Line }

func (*DirectCheck) isExecution() {}

// Registration is the check definition handed to the local execution daemon.
type Registration struct {
	CommandID   string `json:"command_id"`
	CommandLine string `json:"command_line"`
}

// FileInstall describes a plugin script to put on the node. It must be applied
// after the execution daemon has been set up.
type FileInstall struct {
	Path   string      `json:"path"`
	Owner  string      `json:"owner"`
	Group  string      `json:"group"`
	Mode   os.FileMode `json:"mode"`
	Source string      `json:"source"`
	SHA256 string      `json:"sha256,omitempty"`
}

// ElevationGrant lets ActingUser run Command as TargetUser.
type ElevationGrant struct {
	CommandID   string `json:"command_id"`
	ActingUser  string `json:"acting_user"`
	TargetUser  string `json:"target_user"`
	Command     string `json:"command"`
	Interactive bool   `json:"interactive"`
}

// AgentCheck runs on the node; the engine only talks to the daemon's proxy.
type AgentCheck struct {
	ProxyLine    string          `json:"command_line"`
	Registration Registration    `json:"registration"`
	Install      *FileInstall    `json:"install,omitempty"`
	Elevation    *ElevationGrant `json:"elevation,omitempty"`
	ScriptSource string          `json:"script_source,omitempty"`
}

func (*AgentCheck) Mode() ExecMode { return ModeAgent }

func (a *AgentCheck) CommandLine() string { return a.ProxyLine }

func (*AgentCheck) isExecution() {}

// ResolvedCheck is the outcome of resolving one CheckIntent.
type ResolvedCheck struct {
	CommandID string
	Execution Execution
	Icon      string
	NotesURL  *string
	Hostgroup string
	Parents   []string
}

func (r *ResolvedCheck) Mode() ExecMode {
	return r.Execution.Mode()
}

// CommandLine is the string the checking engine will run.
func (r *ResolvedCheck) CommandLine() string {
	return r.Execution.CommandLine()
}

// Arguments only carries values in direct mode.
func (r *ResolvedCheck) Arguments() []string {
	if d, ok := r.Execution.(*DirectCheck); ok {
		return d.Arguments
	}

	return nil
}

func (r *ResolvedCheck) ScriptSource() string {
	switch e := r.Execution.(type) {
	case *DirectCheck:
		return e.ScriptSource
	case *AgentCheck:
		return e.ScriptSource
	}

	return ""
}

func (r *ResolvedCheck) Delegate() string {
	switch e := r.Execution.(type) {
	case *DirectCheck:
		return e.Delegate
	case *AgentCheck:
		return DelegateCheckProxy
	}

	return ""
}
