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

package natsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

func TestTLSConfigRequiresMTLS(t *testing.T) {
	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrMTLSRequired)

	_, err = TLSConfig(&models.SecurityConfig{Mode: "none"})
	require.ErrorIs(t, err, ErrMTLSRequired)
}

func TestTLSConfigMissingCertificate(t *testing.T) {
	sec := &models.SecurityConfig{
		Mode:    "mtls",
		CertDir: t.TempDir(),
		TLS: models.TLSConfig{
			CertFile: "client.pem",
			KeyFile:  "client-key.pem",
			CAFile:   "root.pem",
		},
	}

	_, err := TLSConfig(sec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load client certificate")

	// the caller's config is left untouched
	assert.Equal(t, "client.pem", sec.TLS.CertFile)
}

func TestOptionsWithoutSecurity(t *testing.T) {
	opts, err := Options(&models.NATSConfig{URL: "nats://127.0.0.1:4222"}, logger.NewTestLogger())
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestOptionsPropagatesTLSErrors(t *testing.T) {
	cfg := &models.NATSConfig{
		URL:      "nats://127.0.0.1:4222",
		Security: &models.SecurityConfig{Mode: "spiffe"},
	}

	_, err := Options(cfg, logger.NewTestLogger())
	require.ErrorIs(t, err, ErrMTLSRequired)
}
