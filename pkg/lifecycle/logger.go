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

// Package lifecycle wires process level concerns (logging, telemetry) for the binaries.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/version"
)

// CreateComponentLogger builds a logger for one component. When config is nil the
// environment driven defaults are used. If OTel metrics are enabled in config the
// global meter provider is installed as well.
func CreateComponentLogger(ctx context.Context, component string, config *logger.Config) (logger.Logger, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	zl, err := logger.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.Wrap(zl.With().Str("component", component).Logger())

	if _, err := logger.InitializeMetrics(ctx, &config.OTel, version.Version()); err != nil && !errors.Is(err, logger.ErrOTelMetricsDisabled) {
		log.Warn().Err(err).Msg("Metrics export disabled")
	}

	return log, nil
}

// ShutdownLogger flushes pending telemetry.
func ShutdownLogger() error {
	return logger.Shutdown()
}
