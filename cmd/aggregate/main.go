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
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/aggregate"
	"github.com/carverauto/checkdecl/pkg/config"
	"github.com/carverauto/checkdecl/pkg/exported"
	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/lifecycle"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
	"github.com/carverauto/checkdecl/pkg/natsutil"
	"github.com/carverauto/checkdecl/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/checkdecl/aggregate.json", "Path to aggregate config file")
	once := flag.Bool("once", false, "Run a single pass even if an interval is configured")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("aggregate"))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgLoader := config.NewConfig(nil)

	if kvStore := config.NewKVStoreFromEnv(ctx, logger.Wrap(logger.GetLogger())); kvStore != nil {
		defer func() { _ = kvStore.Close() }()

		cfgLoader.SetKVStore(kvStore)
	}

	var cfg models.AggregatorConfig
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

	aggLogger, err := lifecycle.CreateComponentLogger(ctx, "aggregate", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			log.Printf("Failed to shutdown logger: %v", err)
		}
	}()

	nc, err := natsutil.Connect(&cfg.NATS, aggLogger)
	if err != nil {
		return err
	}
	defer nc.Close()

	store, err := kv.NewNatsStore(ctx, nc, cfg.NATS.Domain, cfg.NATS.Bucket)
	if err != nil {
		return err
	}

	collector := aggregate.NewCollector(
		exported.NewStore(store, exported.DefaultNamespace, aggLogger),
		afero.NewOsFs(),
		&cfg,
		aggLogger,
	)

	if *once || cfg.Interval == 0 {
		_, err := collector.Run(ctx)

		return err
	}

	aggLogger.Info().Str("interval", time.Duration(cfg.Interval).String()).Msg("Starting aggregation loop")

	if err := collector.Loop(ctx, time.Duration(cfg.Interval)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
