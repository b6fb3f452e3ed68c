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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/config"
	"github.com/carverauto/checkdecl/pkg/declare"
	"github.com/carverauto/checkdecl/pkg/exported"
	"github.com/carverauto/checkdecl/pkg/facts"
	"github.com/carverauto/checkdecl/pkg/hiera"
	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/lifecycle"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
	"github.com/carverauto/checkdecl/pkg/natsutil"
	"github.com/carverauto/checkdecl/pkg/nodeagent"
	"github.com/carverauto/checkdecl/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/checkdecl/declare.json", "Path to declare config file")
	dryRun := flag.Bool("dry-run", false, "Resolve and print declarations without touching the node or the store")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("declare"))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgLoader := config.NewConfig(nil)

	if kvStore := config.NewKVStoreFromEnv(ctx, logger.Wrap(logger.GetLogger())); kvStore != nil {
		defer func() { _ = kvStore.Close() }()

		cfgLoader.SetKVStore(kvStore)
	}

	var cfg models.NodeConfig
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	declareLogger, err := lifecycle.CreateComponentLogger(ctx, "declare", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			log.Printf("Failed to shutdown logger: %v", err)
		}
	}()

	nodeFacts, err := facts.Gather(ctx, facts.Overrides{
		Hostname: cfg.Hostname,
		Address:  cfg.Address,
		Zone:     cfg.Zone,
	}, declareLogger)
	if err != nil {
		return fmt.Errorf("failed to gather node facts: %w", err)
	}

	// the store is needed to publish and for KV hierarchies; a dry run with a
	// file hierarchy never connects
	var store kv.KVStore

	if !*dryRun || cfg.Hierarchy.Source == models.HierarchySourceKV {
		nc, err := natsutil.Connect(&cfg.NATS, declareLogger)
		if err != nil {
			return err
		}
		defer nc.Close()

		store, err = kv.NewNatsStore(ctx, nc, cfg.NATS.Domain, cfg.NATS.Bucket)
		if err != nil {
			return err
		}
	}

	source, err := loadHierarchy(ctx, &cfg.Hierarchy, store, nodeFacts, declareLogger)
	if err != nil {
		return err
	}

	resolver := declare.NewResolver(nodeFacts, source, declare.Options{
		DaemonUser:  cfg.Agent.DaemonUser,
		PluginOwner: cfg.Agent.PluginOwner,
		PluginGroup: cfg.Agent.PluginGroup,
	})

	checks, err := resolver.DefaultsAll(cfg.Checks)
	if err != nil {
		return err
	}

	if *dryRun {
		return printDeclarations(resolver, checks)
	}

	fs := afero.NewOsFs()

	declarer, err := declare.NewDeclarer(resolver, declare.NodeAgent{
		Registrar: nodeagent.NewNRPE(fs, cfg.Agent.IncludeDir, declareLogger),
		Deployer:  nodeagent.NewFileDeployer(fs, declareLogger),
		Policy:    nodeagent.NewSudoers(fs, cfg.Agent.SudoersDir, declareLogger),
	}, exported.NewStore(store, exported.DefaultNamespace, declareLogger), declareLogger)
	if err != nil {
		return err
	}

	for i := range checks {
		if _, err := declarer.Declare(ctx, &checks[i]); err != nil {
			return err
		}
	}

	declareLogger.Info().
		Int("checks", len(checks)).
		Str("host", nodeFacts.Hostname).
		Msg("All checks declared")

	return nil
}

func loadHierarchy(ctx context.Context, cfg *models.HierarchyConfig, store kv.KVStore, nodeFacts *models.Facts,
	log logger.Logger) (hiera.Source, error) {
	var (
		h   *hiera.Hierarchy
		err error
	)

	switch cfg.Source {
	case models.HierarchySourceKV:
		h, err = hiera.LoadKV(ctx, store, cfg.Prefix, cfg.Layers, nodeFacts, log)
	default:
		h, err = hiera.LoadFS(afero.NewOsFs(), cfg.Dir, cfg.Layers, nodeFacts, log)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load hierarchy: %w", err)
	}

	log.Debug().Strs("layers", h.Layers()).Msg("Hierarchy loaded")

	return h, nil
}

func printDeclarations(resolver *declare.Resolver, checks []models.CheckIntent) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for i := range checks {
		in := resolver.Defaults(&checks[i])

		resolved, err := resolver.Resolve(&in)
		if err != nil {
			return err
		}

		if err := enc.Encode(models.NewCheckDeclaration(&in, resolved)); err != nil {
			return err
		}
	}

	return nil
}
