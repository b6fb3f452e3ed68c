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

	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

// NewKVStoreFromEnv opens the KV store configuration is read from when
// CONFIG_SOURCE=kv. It returns nil when KV loading is not requested or
// NATS_URL is unset; failures are logged and also yield nil, so callers fall
// back to files.
func NewKVStoreFromEnv(ctx context.Context, log logger.Logger) kv.KVStore {
	if os.Getenv("CONFIG_SOURCE") != configSourceKV || os.Getenv("NATS_URL") == "" {
		return nil
	}

	bucket := os.Getenv("NATS_BUCKET")
	if bucket == "" {
		bucket = models.DefaultBucket
	}

	store, err := kv.DialNatsStore(ctx, os.Getenv("NATS_URL"), os.Getenv("NATS_DOMAIN"), bucket)
	if err != nil {
		log.Warn().Err(err).Msg("KV config store unavailable")

		return nil
	}

	return store
}
