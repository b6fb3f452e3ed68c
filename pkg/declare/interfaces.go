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

//go:generate mockgen -destination=mock_declare.go -package=declare github.com/carverauto/checkdecl/pkg/declare DaemonRegistrar,ScriptDeployer,PrivilegePolicy,DeclarationStore

// Package declare resolves check intents into check declarations and publishes
// them for the aggregator.
package declare

import (
	"context"

	"github.com/carverauto/checkdecl/pkg/models"
)

// DaemonRegistrar manages the node's local check execution daemon.
type DaemonRegistrar interface {
	// Setup prepares the daemon to accept check definitions. It is idempotent.
	Setup(ctx context.Context) error
	RegisterCheck(ctx context.Context, reg models.Registration) error
}

// ScriptDeployer puts plugin scripts on the node.
type ScriptDeployer interface {
	InstallFile(ctx context.Context, file models.FileInstall) error
}

// PrivilegePolicy grants the daemon account the right to run a command as another user.
type PrivilegePolicy interface {
	GrantElevation(ctx context.Context, grant models.ElevationGrant) error
}

// DeclarationStore is the shared store the aggregator collects from.
type DeclarationStore interface {
	Publish(ctx context.Context, decl *models.CheckDeclaration) error
}
