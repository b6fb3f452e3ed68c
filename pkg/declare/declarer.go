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
	"context"
	"fmt"

	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

// NodeAgent bundles the local collaborators agent checks need. All three are
// required as soon as an agent check is declared.
type NodeAgent struct {
	Registrar DaemonRegistrar
	Deployer  ScriptDeployer
	Policy    PrivilegePolicy
}

func (n NodeAgent) complete() bool {
	return n.Registrar != nil && n.Deployer != nil && n.Policy != nil
}

// Declarer runs the whole pipeline for a node: resolve, apply the local side
// effects of agent checks, publish.
type Declarer struct {
	resolver *Resolver
	agent    NodeAgent
	store    DeclarationStore
	logger   logger.Logger
}

// NewDeclarer wires a Declarer. agent may be empty when only direct checks are declared.
func NewDeclarer(resolver *Resolver, agent NodeAgent, store DeclarationStore, log logger.Logger) (*Declarer, error) {
	if store == nil {
		return nil, errStoreRequired
	}

	return &Declarer{
		resolver: resolver,
		agent:    agent,
		store:    store,
		logger:   log,
	}, nil
}

// Declare resolves intent and publishes its declaration. Nothing is retried;
// the first failing step aborts and its error is returned.
func (d *Declarer) Declare(ctx context.Context, intent *models.CheckIntent) (*models.CheckDeclaration, error) {
	in := d.resolver.Defaults(intent)

	resolved, err := d.resolver.Resolve(&in)
	if err != nil {
		return nil, err
	}

	if agent, ok := resolved.Execution.(*models.AgentCheck); ok {
		if err := d.applyAgent(ctx, agent); err != nil {
			return nil, fmt.Errorf("check %q: %w", in.Service, err)
		}
	}

	decl := models.NewCheckDeclaration(&in, resolved)

	if err := d.store.Publish(ctx, decl); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", decl.Key(), err)
	}

	d.logger.Info().
		Str("host", decl.Host).
		Str("service", decl.Service).
		Str("command_id", decl.CommandID).
		Str("mode", string(decl.Mode)).
		Msg("Published check declaration")

	return decl, nil
}

// applyAgent sets up the daemon before installing the script, and registers the
// check last so the daemon never references a missing plugin or grant.
func (d *Declarer) applyAgent(ctx context.Context, check *models.AgentCheck) error {
	if !d.agent.complete() {
		return errNodeAgentMissing
	}

	if err := d.agent.Registrar.Setup(ctx); err != nil {
		return fmt.Errorf("failed to set up execution daemon: %w", err)
	}

	if check.Install != nil {
		if err := d.agent.Deployer.InstallFile(ctx, *check.Install); err != nil {
			return fmt.Errorf("failed to install %s: %w", check.Install.Path, err)
		}

		d.logger.Debug().Str("path", check.Install.Path).Str("source", check.Install.Source).Msg("Installed plugin script")
	}

	if check.Elevation != nil {
		if err := d.agent.Policy.GrantElevation(ctx, *check.Elevation); err != nil {
			return fmt.Errorf("failed to grant elevation to %s: %w", check.Elevation.TargetUser, err)
		}
	}

	if err := d.agent.Registrar.RegisterCheck(ctx, check.Registration); err != nil {
		return fmt.Errorf("failed to register %s: %w", check.Registration.CommandID, err)
	}

	return nil
}
