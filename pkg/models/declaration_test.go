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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckDeclarationCopies(t *testing.T) {
	t.Parallel()

	notes := "https://wiki/raid"
	intent := &CheckIntent{
		Service:       "raid",
		Host:          "web1",
		Address:       "10.0.0.5",
		Timeout:       DefaultTimeout,
		CheckInterval: DefaultCheckInterval,
	}
	resolved := &ResolvedCheck{
		CommandID: "check_raid",
		Execution: &AgentCheck{
			ProxyLine:    "$USER1$/check_nrpe -H 10.0.0.5 -t 10 -c check_raid",
			Registration: Registration{CommandID: "check_raid", CommandLine: "/usr/lib64/nagios/plugins/check_raid"},
		},
		Icon:      "base/redhat.png",
		NotesURL:  &notes,
		Hostgroup: "dc1",
		Parents:   []string{"sw1"},
	}

	decl := NewCheckDeclaration(intent, resolved)

	assert.Equal(t, DeclarationKey{Host: "web1", Service: "raid"}, decl.Key())
	assert.Equal(t, "web1/raid", decl.Key().String())
	assert.Equal(t, ModeAgent, decl.Mode)
	assert.Equal(t, DelegateCheckProxy, decl.Delegate)
	assert.Equal(t, "$USER1$/check_nrpe -H 10.0.0.5 -t 10 -c check_raid", decl.CommandLine)
	assert.Nil(t, decl.Arguments)

	resolved.Parents[0] = "changed"
	*resolved.NotesURL = "changed"

	assert.Equal(t, []string{"sw1"}, decl.Parents)
	assert.Equal(t, "https://wiki/raid", *decl.NotesURL)
}

func TestCheckDeclarationJSON(t *testing.T) {
	t.Parallel()

	decl := &CheckDeclaration{
		Host:          "web1",
		Service:       "disk/root",
		Address:       "10.0.0.5",
		CheckInterval: DefaultCheckInterval,
		Timeout:       DefaultTimeout,
		CommandID:     "check_disk_root",
		CommandLine:   "$USER1$/check_disk -w 10% -c 5%",
		Mode:          ModeDirect,
		Icon:          "base/linux40.png",
	}

	data, err := json.Marshal(decl)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"host": "web1",
		"service": "disk/root",
		"address": "10.0.0.5",
		"check_interval": "5m0s",
		"timeout": "10s",
		"command_id": "check_disk_root",
		"command_line": "$USER1$/check_disk -w 10% -c 5%",
		"mode": "direct",
		"icon": "base/linux40.png"
	}`, string(data))

	var back CheckDeclaration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *decl, back)
}

func TestResolvedCheckAccessors(t *testing.T) {
	t.Parallel()

	direct := &ResolvedCheck{Execution: &DirectCheck{
		Line:         "$USER1$/check_http -H $ARG1$",
		Arguments:    []string{"example.com"},
		ScriptSource: "/src/check_http",
		Delegate:     "ssh",
	}}

	assert.Equal(t, ModeDirect, direct.Mode())
	assert.Equal(t, []string{"example.com"}, direct.Arguments())
	assert.Equal(t, "/src/check_http", direct.ScriptSource())
	assert.Equal(t, "ssh", direct.Delegate())

	agent := &ResolvedCheck{Execution: &AgentCheck{ScriptSource: "/src/check_raid"}}

	assert.Nil(t, agent.Arguments())
	assert.Equal(t, "/src/check_raid", agent.ScriptSource())
	assert.Equal(t, DelegateCheckProxy, agent.Delegate())
}
