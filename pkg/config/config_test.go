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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

const nodeJSON = `{
	"zone": "dc1",
	"nats": {"url": "nats://127.0.0.1:4222"},
	"hierarchy": {"dir": "/etc/checkdecl/hiera"},
	"checks": [
		{"service": "disk/root", "command": "check_disk -w 10% -c 5%"},
		{"service": "raid", "mode": "agent", "command": "check_raid", "run_as": "root", "timeout": "30s"}
	]
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "declare.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidateFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	var cfg models.NodeConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), writeConfig(t, nodeJSON), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "dc1", cfg.Zone)
	assert.Equal(t, models.DefaultBucket, cfg.NATS.Bucket)
	assert.Equal(t, models.HierarchySourceFile, cfg.Hierarchy.Source)
	assert.Equal(t, models.DefaultHierarchyLayers, cfg.Hierarchy.Layers)
	assert.Equal(t, models.DefaultDaemonUser, cfg.Agent.DaemonUser)
	require.Len(t, cfg.Checks, 2)
	assert.Equal(t, models.ModeAgent, cfg.Checks[1].Mode)
	assert.Equal(t, models.DefaultPluginDir, cfg.Checks[1].PluginDir)
	assert.Equal(t, 30, cfg.Checks[1].Timeout.Seconds())
}

func TestLoadAndValidateRejectsInvalidConfig(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	var cfg models.NodeConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), writeConfig(t, `{"zone":"dc1"}`), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats.url is required")
}

func TestLoadAndValidateRejectsDuplicateChecks(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	body := `{"nats":{"url":"nats://x"},"hierarchy":{"dir":"/tmp"},
		"checks":[{"service":"ping"},{"service":"ping"}]}`

	var cfg models.NodeConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), writeConfig(t, body), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate service")
}

func TestLoadFromKV(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	store := kv.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "config/declare.json", []byte(nodeJSON)))

	loader := NewConfig(nil)
	loader.SetKVStore(store)

	var cfg models.NodeConfig

	require.NoError(t, loader.LoadAndValidate(context.Background(), "/etc/checkdecl/declare.json", &cfg))
	assert.Len(t, cfg.Checks, 2)
}

func TestLoadFromKVFallsBackToFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	loader := NewConfig(nil)
	loader.SetKVStore(kv.NewMemoryStore())

	var cfg models.NodeConfig

	require.NoError(t, loader.LoadAndValidate(context.Background(), writeConfig(t, nodeJSON), &cfg))
	assert.Equal(t, "dc1", cfg.Zone)
}

func TestLoadFromKVWithoutStore(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	var cfg models.NodeConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "declare.json", &cfg)
	require.ErrorIs(t, err, errKVStoreNotSet)
}

func TestInvalidConfigSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "consul")

	var cfg models.NodeConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "declare.json", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAggregatorConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	var cfg models.AggregatorConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(),
		writeConfig(t, `{"nats": {"url": "nats://127.0.0.1:4222"}, "interval": "1m"}`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultAggregatorOutput, cfg.Output)
	assert.Equal(t, models.DefaultHostTemplate, cfg.HostTemplate)
	assert.Equal(t, models.DefaultServiceTemplate, cfg.ServiceTemplate)
	assert.Equal(t, models.Duration(time.Minute), cfg.Interval)
}

func TestNewKVStoreFromEnvDisabled(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")

	assert.Nil(t, NewKVStoreFromEnv(context.Background(), logger.NewTestLogger()))

	t.Setenv("CONFIG_SOURCE", "kv")
	t.Setenv("NATS_URL", "")

	assert.Nil(t, NewKVStoreFromEnv(context.Background(), logger.NewTestLogger()))
}
