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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found (set its path with -config)")

// FileConfigLoader reads a JSON configuration document from a filesystem.
// The zero value reads from the OS filesystem.
type FileConfigLoader struct {
	fs afero.Fs
}

// NewFileConfigLoader returns a loader reading from fs.
func NewFileConfigLoader(fs afero.Fs) *FileConfigLoader {
	return &FileConfigLoader{fs: fs}
}

// Load implements ConfigLoader. Unknown fields are rejected so that a
// misspelled option fails loudly instead of falling back to its default.
func (f *FileConfigLoader) Load(_ context.Context, path string, dst interface{}) error {
	fs := f.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}
