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

package nodeagent

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/fsutil"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

const nrpeFilePerms = 0o644

// NRPE registers checks with the NRPE daemon through its include directory,
// one file per command.
type NRPE struct {
	fs         afero.Fs
	includeDir string
	logger     logger.Logger
}

func NewNRPE(fs afero.Fs, includeDir string, log logger.Logger) *NRPE {
	if includeDir == "" {
		includeDir = models.DefaultNRPEIncludeDir
	}

	return &NRPE{
		fs:         fs,
		includeDir: includeDir,
		logger:     log,
	}
}

// Setup creates the include directory.
func (n *NRPE) Setup(_ context.Context) error {
	if err := n.fs.MkdirAll(n.includeDir, fsutil.DirPerms); err != nil {
		return fmt.Errorf("failed to create %s: %w", n.includeDir, err)
	}

	return nil
}

// RegisterCheck writes command[<id>]=<line> to <include dir>/<id>.cfg.
func (n *NRPE) RegisterCheck(_ context.Context, reg models.Registration) error {
	if err := commandIdentifier(reg.CommandID); err != nil {
		return err
	}

	if err := singleLine(reg.CommandLine); err != nil {
		return err
	}

	path := n.path(reg.CommandID)
	content := fmt.Sprintf("command[%s]=%s\n", reg.CommandID, reg.CommandLine)

	if err := fsutil.WriteFileAtomic(n.fs, path, []byte(content), nrpeFilePerms); err != nil {
		return err
	}

	n.logger.Debug().Str("command_id", reg.CommandID).Str("path", path).Msg("Registered NRPE command")

	return nil
}

func (n *NRPE) path(commandID string) string {
	return filepath.Join(n.includeDir, commandID+".cfg")
}
