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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

var errCollaborator = errors.New("collaborator failed")

type declarerMocks struct {
	registrar *MockDaemonRegistrar
	deployer  *MockScriptDeployer
	policy    *MockPrivilegePolicy
	store     *MockDeclarationStore
}

func newTestDeclarer(t *testing.T) (*Declarer, declarerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := declarerMocks{
		registrar: NewMockDaemonRegistrar(ctrl),
		deployer:  NewMockScriptDeployer(ctrl),
		policy:    NewMockPrivilegePolicy(ctrl),
		store:     NewMockDeclarationStore(ctrl),
	}

	d, err := NewDeclarer(
		newTestResolver(nil),
		NodeAgent{Registrar: m.registrar, Deployer: m.deployer, Policy: m.policy},
		m.store,
		logger.NewTestLogger(),
	)
	require.NoError(t, err)

	return d, m
}

func TestDeclareDirect(t *testing.T) {
	t.Parallel()

	d, m := newTestDeclarer(t)
	ctx := context.Background()

	var published *models.CheckDeclaration

	m.store.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, decl *models.CheckDeclaration) error {
			published = decl
			return nil
		})

	decl, err := d.Declare(ctx, &models.CheckIntent{
		Service: "disk/root",
		Command: "check_disk -w 10% -c 5%",
	})
	require.NoError(t, err)

	assert.Same(t, published, decl)
	assert.Equal(t, &models.CheckDeclaration{
		Host:          "web1.example.com",
		Service:       "disk/root",
		Address:       "10.0.0.5",
		CheckInterval: models.DefaultCheckInterval,
		Timeout:       models.DefaultTimeout,
		CommandID:     "check_disk_root",
		CommandLine:   "$USER1$/check_disk -w 10% -c 5%",
		Mode:          models.ModeDirect,
		Icon:          "base/redhat.png",
		Hostgroup:     "dc1",
	}, decl)
	assert.Equal(t, models.DeclarationKey{Host: "web1.example.com", Service: "disk/root"}, decl.Key())
}

func TestDeclareAgentOrdering(t *testing.T) {
	t.Parallel()

	d, m := newTestDeclarer(t)
	ctx := context.Background()

	gomock.InOrder(
		m.registrar.EXPECT().Setup(ctx).Return(nil),
		m.deployer.EXPECT().InstallFile(ctx, models.FileInstall{
			Path:   "/usr/lib64/nagios/plugins/check_raid",
			Owner:  "nagios",
			Group:  "nagios",
			Mode:   0o755,
			Source: "https://files.example.com/check_raid",
		}).Return(nil),
		m.policy.EXPECT().GrantElevation(ctx, models.ElevationGrant{
			CommandID:  "check_raid",
			ActingUser: "nrpe",
			TargetUser: "root",
			Command:    "/usr/lib64/nagios/plugins/check_raid",
		}).Return(nil),
		m.registrar.EXPECT().RegisterCheck(ctx, models.Registration{
			CommandID:   "check_raid",
			CommandLine: "/usr/bin/sudo -u root /usr/lib64/nagios/plugins/check_raid",
		}).Return(nil),
		m.store.EXPECT().Publish(ctx, gomock.Any()).Return(nil),
	)

	decl, err := d.Declare(ctx, &models.CheckIntent{
		Service:      "raid",
		Mode:         models.ModeAgent,
		Command:      "check_raid",
		RunAs:        "root",
		ScriptSource: "https://files.example.com/check_raid",
	})
	require.NoError(t, err)

	assert.Equal(t, "$USER1$/check_nrpe -H 10.0.0.5 -t 10 -c check_raid", decl.CommandLine)
	assert.Equal(t, models.DelegateCheckProxy, decl.Delegate)
	assert.Equal(t, models.ModeAgent, decl.Mode)
}

func TestDeclareValidationFailsBeforeSideEffects(t *testing.T) {
	t.Parallel()

	d, _ := newTestDeclarer(t)

	_, err := d.Declare(context.Background(), &models.CheckIntent{
		Service:   "ipmi",
		Mode:      models.ModeAgent,
		Command:   "check_kvl_ipmi --hostname $ARG1$",
		Arguments: []string{"bmc"},
	})
	require.ErrorIs(t, err, ErrArgumentsNotImplemented)
}

func TestDeclareStopsOnCollaboratorFailure(t *testing.T) {
	t.Parallel()

	d, m := newTestDeclarer(t)
	ctx := context.Background()

	m.registrar.EXPECT().Setup(ctx).Return(nil)
	m.registrar.EXPECT().RegisterCheck(ctx, gomock.Any()).Return(errCollaborator)

	_, err := d.Declare(ctx, &models.CheckIntent{Service: "load", Mode: models.ModeAgent, Command: "check_load"})
	require.ErrorIs(t, err, errCollaborator)
}

func TestDeclarePublishFailure(t *testing.T) {
	t.Parallel()

	d, m := newTestDeclarer(t)
	ctx := context.Background()

	m.store.EXPECT().Publish(ctx, gomock.Any()).Return(errCollaborator)

	_, err := d.Declare(ctx, &models.CheckIntent{Service: "swap"})
	require.ErrorIs(t, err, errCollaborator)
}

func TestDeclareAgentWithoutNodeAgent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	d, err := NewDeclarer(newTestResolver(nil), NodeAgent{}, NewMockDeclarationStore(ctrl), logger.NewTestLogger())
	require.NoError(t, err)

	_, err = d.Declare(context.Background(), &models.CheckIntent{Service: "raid", Mode: models.ModeAgent})
	require.ErrorIs(t, err, errNodeAgentMissing)
}

func TestNewDeclarerRequiresStore(t *testing.T) {
	t.Parallel()

	_, err := NewDeclarer(newTestResolver(nil), NodeAgent{}, nil, logger.NewTestLogger())
	require.ErrorIs(t, err, errStoreRequired)
}
