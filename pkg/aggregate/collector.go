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

package aggregate

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/fsutil"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

const outputPerms = 0o644

// DeclarationSource is the aggregator side of the declaration store.
type DeclarationSource interface {
	CollectAll(ctx context.Context) ([]*models.CheckDeclaration, error)
}

// Result describes one pass.
type Result struct {
	RunID        string
	Declarations int
	Changed      bool
}

// Collector periodically renders all declarations into one Nagios configuration file.
type Collector struct {
	source   DeclarationSource
	fs       afero.Fs
	output   string
	opts     RenderOptions
	newRunID func() string
	logger   logger.Logger
}

func NewCollector(source DeclarationSource, fs afero.Fs, cfg *models.AggregatorConfig, log logger.Logger) *Collector {
	return &Collector{
		source: source,
		fs:     fs,
		output: cfg.Output,
		opts: RenderOptions{
			HostTemplate:    cfg.HostTemplate,
			ServiceTemplate: cfg.ServiceTemplate,
		},
		newRunID: uuid.NewString,
		logger:   log,
	}
}

// Collect reads every declaration from the store.
func (c *Collector) Collect(ctx context.Context) ([]*models.CheckDeclaration, error) {
	decls, err := c.source.CollectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect declarations: %w", err)
	}

	return decls, nil
}

// Run performs one pass. The output file is only rewritten when the rendered
// objects differ from what is already there.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	runID := c.newRunID()
	log := c.logger.With().Str("run_id", runID).Logger()

	decls, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	objs := BuildObjects(runID, decls, c.opts)

	body, err := renderBody(objs)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: runID, Declarations: len(decls)}

	if c.unchanged(body) {
		log.Debug().Int("declarations", len(decls)).Msg("Rendered objects unchanged")

		return res, nil
	}

	var out bytes.Buffer

	if err := Render(&out, objs); err != nil {
		return nil, err
	}

	if err := fsutil.WriteFileAtomic(c.fs, c.output, out.Bytes(), outputPerms); err != nil {
		return nil, err
	}

	res.Changed = true

	log.Info().
		Int("declarations", len(decls)).
		Int("hosts", len(objs.Hosts)).
		Str("output", c.output).
		Msg("Wrote checking engine configuration")

	return res, nil
}

func (c *Collector) unchanged(body []byte) bool {
	existing, err := afero.ReadFile(c.fs, c.output)
	if err != nil {
		return false
	}

	_, rest, found := bytes.Cut(existing, []byte("\n"))

	return found && bytes.Equal(rest, body)
}

// Loop runs a pass every interval until ctx is canceled. Failed passes are
// logged and retried on the next tick.
func (c *Collector) Loop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := c.Run(ctx); err != nil {
			c.logger.Error().Err(err).Msg("Aggregation pass failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
