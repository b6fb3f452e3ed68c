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
	"strings"

	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/fsutil"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

const sudoersFilePerms = 0o440

// sudoers(5) needs these escaped inside a command specification.
var sudoersEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `:`, `\:`, `=`, `\=`)

// Sudoers grants elevation through drop-in files in a sudoers.d directory.
type Sudoers struct {
	fs     afero.Fs
	dir    string
	logger logger.Logger
}

func NewSudoers(fs afero.Fs, dir string, log logger.Logger) *Sudoers {
	if dir == "" {
		dir = models.DefaultSudoersDir
	}

	return &Sudoers{
		fs:     fs,
		dir:    dir,
		logger: log,
	}
}

// GrantElevation writes one drop-in per command identifier.
func (s *Sudoers) GrantElevation(_ context.Context, grant models.ElevationGrant) error {
	for _, u := range []string{grant.ActingUser, grant.TargetUser} {
		if err := validUser(u); err != nil {
			return err
		}
	}

	if err := singleLine(grant.Command); err != nil {
		return err
	}

	path := s.path(grant.CommandID)

	if err := fsutil.WriteFileAtomic(s.fs, path, []byte(RenderGrant(grant)), sudoersFilePerms); err != nil {
		return err
	}

	s.logger.Debug().
		Str("command_id", grant.CommandID).
		Str("acting_user", grant.ActingUser).
		Str("target_user", grant.TargetUser).
		Msg("Granted elevation")

	return nil
}

// RenderGrant returns the sudoers lines for grant.
func RenderGrant(grant models.ElevationGrant) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Defaults:%s !requiretty\n", grant.ActingUser)

	tag := "NOPASSWD: "
	if grant.Interactive {
		tag = ""
	}

	fmt.Fprintf(&b, "%s ALL=(%s) %s%s\n", grant.ActingUser, grant.TargetUser, tag, sudoersEscaper.Replace(grant.Command))

	return b.String()
}

// sudo skips drop-ins whose name contains a '.', so dots are replaced.
func (s *Sudoers) path(commandID string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(commandID, ".", "_"))
}
