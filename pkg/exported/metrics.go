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

package exported

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName            = "checkdecl.exported"
	metricPublishedTotal = "checkdecl.declarations.published"

	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	//nolint:gochecknoglobals // instruments are shared across the process
	meterOnce sync.Once
	//nolint:gochecknoglobals // instruments are shared across the process
	publishCounter metric.Int64Counter
)

func initMeter() {
	counter, err := otel.Meter(meterName).Int64Counter(
		metricPublishedTotal,
		metric.WithDescription("Check declarations written to the shared store"),
	)
	if err != nil {
		otel.Handle(err)
	}

	publishCounter = counter
}

func recordPublish(ctx context.Context, outcome string) {
	meterOnce.Do(initMeter)

	if publishCounter == nil {
		return
	}

	publishCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
