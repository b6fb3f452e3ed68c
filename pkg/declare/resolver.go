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

package declare

import (
	"fmt"

	"github.com/carverauto/checkdecl/pkg/hiera"
	"github.com/carverauto/checkdecl/pkg/models"
)

// Resolver turns check intents into resolved checks for one node. It performs
// no I/O: shared lookup data is loaded before the Resolver is built.
type Resolver struct {
	facts  *models.Facts
	source hiera.Source
	opts   Options
}

// NewResolver returns a Resolver for the node described by facts. source may be nil.
func NewResolver(facts *models.Facts, source hiera.Source, opts Options) *Resolver {
	if facts == nil {
		facts = &models.Facts{OSFamily: models.OSFamilyOther}
	}

	return &Resolver{
		facts:  facts,
		source: source,
		opts:   opts.withDefaults(),
	}
}

// Facts returns the node facts the Resolver was built with.
func (r *Resolver) Facts() *models.Facts {
	return r.facts
}

// Defaults fills the empty fields of intent from the node facts.
func (r *Resolver) Defaults(intent *models.CheckIntent) models.CheckIntent {
	return intent.WithDefaults(r.facts)
}

// DefaultsAll applies Defaults to every intent and rejects intents that end
// up with the same host and service, since they would overwrite each other in
// the store.
func (r *Resolver) DefaultsAll(intents []models.CheckIntent) ([]models.CheckIntent, error) {
	out := make([]models.CheckIntent, 0, len(intents))
	seen := make(map[models.DeclarationKey]int, len(intents))

	for i := range intents {
		in := r.Defaults(&intents[i])
		key := models.DeclarationKey{Host: in.Host, Service: in.Service}

		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: checks[%d] and checks[%d] both declare %s",
				ErrDuplicateDeclaration, prev, i, key)
		}

		seen[key] = i
		out = append(out, in)
	}

	return out, nil
}

// Resolve resolves a single intent. The same intent always resolves to an
// identical result.
func (r *Resolver) Resolve(intent *models.CheckIntent) (*models.ResolvedCheck, error) {
	in := r.Defaults(intent)

	if in.Service == "" {
		return nil, errServiceRequired
	}

	commandID := CommandID(in.Service)

	exec, err := r.route(&in, commandID, commandFor(&in, commandID))
	if err != nil {
		return nil, fmt.Errorf("check %q: %w", in.Service, err)
	}

	return &models.ResolvedCheck{
		CommandID: commandID,
		Execution: exec,
		Icon:      IconFor(r.facts.OSFamily),
		NotesURL:  ResolveNotesURL(in.NotesURL, in.Service, r.source),
		Hostgroup: ResolveHostgroup(r.source, r.facts),
		Parents:   ResolveParents(r.source),
	}, nil
}

// commandFor falls back to the installed script's name, then to the plugin
// named after the command identifier.
func commandFor(intent *models.CheckIntent, commandID string) string {
	if intent.Command != "" {
		return intent.Command
	}

	if intent.ScriptSource != "" {
		return scriptName(intent.ScriptSource)
	}

	return commandID
}
