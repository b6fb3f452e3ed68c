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

// DeclarationKey identifies a declaration in the store. Two declarations with
// the same key overwrite each other.
type DeclarationKey struct {
	Host    string `json:"host"`
	Service string `json:"service"`
}

func (k DeclarationKey) String() string {
	return k.Host + "/" + k.Service
}

// CheckDeclaration is the published record for one check. It is never
// modified after it has been built.
type CheckDeclaration struct {
	Host          string   `json:"host"`
	Service       string   `json:"service"`
	Address       string   `json:"address"`
	CheckInterval Duration `json:"check_interval"`
	Timeout       Duration `json:"timeout"`
	CommandID     string   `json:"command_id"`
	CommandLine   string   `json:"command_line"`
	Arguments     []string `json:"arguments,omitempty"`
	Mode          ExecMode `json:"mode"`
	ScriptSource  string   `json:"script_source,omitempty"`
	Delegate      string   `json:"delegate,omitempty"`
	Icon          string   `json:"icon"`
	NotesURL      *string  `json:"notes_url,omitempty"`
	Hostgroup     string   `json:"hostgroup,omitempty"`
	Parents       []string `json:"parents,omitempty"`
}

func (d *CheckDeclaration) Key() DeclarationKey {
	return DeclarationKey{Host: d.Host, Service: d.Service}
}

// NewCheckDeclaration flattens a resolved check together with the fields of
// the (defaulted) intent it came from.
func NewCheckDeclaration(intent *CheckIntent, resolved *ResolvedCheck) *CheckDeclaration {
	decl := &CheckDeclaration{
		Host:          intent.Host,
		Service:       intent.Service,
		Address:       intent.Address,
		CheckInterval: intent.CheckInterval,
		Timeout:       intent.Timeout,
		CommandID:     resolved.CommandID,
		CommandLine:   resolved.CommandLine(),
		Mode:          resolved.Mode(),
		ScriptSource:  resolved.ScriptSource(),
		Delegate:      resolved.Delegate(),
		Icon:          resolved.Icon,
		Hostgroup:     resolved.Hostgroup,
	}

	if args := resolved.Arguments(); len(args) > 0 {
		decl.Arguments = append([]string(nil), args...)
	}

	if resolved.NotesURL != nil {
		url := *resolved.NotesURL
		decl.NotesURL = &url
	}

	if len(resolved.Parents) > 0 {
		decl.Parents = append([]string(nil), resolved.Parents...)
	}

	return decl
}
