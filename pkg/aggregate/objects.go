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

// Package aggregate collects every published check declaration and renders
// them as Nagios object definitions.
package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/checkdecl/pkg/declare"
	"github.com/carverauto/checkdecl/pkg/models"
)

// RenderOptions are the object templates the rendered definitions inherit from.
type RenderOptions struct {
	HostTemplate    string
	ServiceTemplate string
}

type Host struct {
	Name      string
	Address   string
	Hostgroup string
	Parents   []string
	Icon      string
}

type Command struct {
	Name string
	Line string
}

// CustomVar is a Nagios custom object variable; Name carries no leading underscore.
type CustomVar struct {
	Name  string
	Value string
}

type Service struct {
	Host          string
	Description   string
	CheckCommand  string
	CheckInterval int
	NotesURL      string
	Icon          string
	ScriptSource  string
	Custom        []CustomVar
}

// Objects is everything one aggregator pass renders.
type Objects struct {
	RunID    string
	Options  RenderOptions
	Hosts    []Host
	Commands []Command
	Services []Service
}

// BuildObjects turns declarations into Nagios objects. The result only
// depends on the set of declarations, not on their order.
func BuildObjects(runID string, decls []*models.CheckDeclaration, opts RenderOptions) *Objects {
	sorted := append([]*models.CheckDeclaration(nil), decls...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Host != sorted[j].Host {
			return sorted[i].Host < sorted[j].Host
		}

		return sorted[i].Service < sorted[j].Service
	})

	objs := &Objects{RunID: runID, Options: opts}
	names := commandNames(sorted)
	seenHost := make(map[string]struct{})
	seenCommand := make(map[string]struct{})

	for _, d := range sorted {
		if _, ok := seenHost[d.Host]; !ok {
			seenHost[d.Host] = struct{}{}

			objs.Hosts = append(objs.Hosts, Host{
				Name:      d.Host,
				Address:   d.Address,
				Hostgroup: d.Hostgroup,
				Parents:   d.Parents,
				Icon:      d.Icon,
			})
		}

		name := names[commandRef{id: d.CommandID, line: d.CommandLine}]

		if _, ok := seenCommand[name]; !ok {
			seenCommand[name] = struct{}{}

			objs.Commands = append(objs.Commands, Command{Name: name, Line: d.CommandLine})
		}

		objs.Services = append(objs.Services, buildService(d, name))
	}

	sort.Slice(objs.Commands, func(i, j int) bool { return objs.Commands[i].Name < objs.Commands[j].Name })

	return objs
}

type commandRef struct {
	id, line string
}

// commandNames keeps the command identifier as the object name when every
// declaration using it agrees on the line. Otherwise each distinct line is
// named after the first host declaring it. Generated names never reuse a
// declared identifier or another generated name; a numeric suffix is added
// until they are unique.
func commandNames(sorted []*models.CheckDeclaration) map[commandRef]string {
	lines := make(map[string][]commandRef)
	firstHost := make(map[commandRef]string)

	for _, d := range sorted {
		ref := commandRef{id: d.CommandID, line: d.CommandLine}
		if _, ok := firstHost[ref]; ok {
			continue
		}

		firstHost[ref] = d.Host
		lines[d.CommandID] = append(lines[d.CommandID], ref)
	}

	ids := make([]string, 0, len(lines))
	taken := make(map[string]struct{}, len(lines))

	for id := range lines {
		ids = append(ids, id)
		taken[id] = struct{}{}
	}

	sort.Strings(ids)

	names := make(map[commandRef]string, len(firstHost))

	for _, id := range ids {
		refs := lines[id]
		if len(refs) == 1 {
			names[refs[0]] = id
			continue
		}

		for _, ref := range refs {
			name := uniqueName(id+"_"+declare.Sanitize(firstHost[ref]), taken)
			taken[name] = struct{}{}
			names[ref] = name
		}
	}

	return names
}

func uniqueName(base string, taken map[string]struct{}) string {
	name := base

	for n := 2; ; n++ {
		if _, ok := taken[name]; !ok {
			return name
		}

		name = base + "_" + strconv.Itoa(n)
	}
}

var argEscaper = strings.NewReplacer("!", `\!`)

func buildService(d *models.CheckDeclaration, command string) Service {
	check := command
	for _, arg := range d.Arguments {
		check += "!" + argEscaper.Replace(arg)
	}

	svc := Service{
		Host:          d.Host,
		Description:   d.Service,
		CheckCommand:  check,
		CheckInterval: d.CheckInterval.Minutes(),
		Icon:          d.Icon,
		ScriptSource:  d.ScriptSource,
		Custom: []CustomVar{
			{Name: "CHECKDECL_MODE", Value: string(d.Mode)},
			{Name: "CHECKDECL_TIMEOUT", Value: strconv.Itoa(d.Timeout.Seconds())},
		},
	}

	if d.NotesURL != nil {
		svc.NotesURL = *d.NotesURL
	}

	if d.Delegate != "" {
		svc.Custom = append(svc.Custom, CustomVar{Name: "CHECKDECL_DELEGATE", Value: d.Delegate})
	}

	return svc
}
