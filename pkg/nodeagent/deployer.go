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
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/user"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/carverauto/checkdecl/pkg/fsutil"
	"github.com/carverauto/checkdecl/pkg/hashutil"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

const (
	maxScriptSize       = 16 << 20
	defaultFetchTimeout = 30 * time.Second
)

var (
	errUnsupportedSource = errors.New("unsupported script source")
	errFetchFailed       = errors.New("script download failed")
	errScriptTooLarge    = errors.New("script exceeds size limit")
)

// FileDeployer installs plugin scripts from local paths, file:// or http(s):// URLs.
type FileDeployer struct {
	fs     afero.Fs
	source afero.Fs
	client HTTPClient
	lookup IDLookup
	chown  func(name string, uid, gid int) error
	logger logger.Logger
}

// DeployerOption customizes a FileDeployer.
type DeployerOption func(*FileDeployer)

// WithHTTPClient replaces the client used for http(s) sources.
func WithHTTPClient(c HTTPClient) DeployerOption {
	return func(d *FileDeployer) {
		d.client = c
	}
}

// WithSourceFs reads local sources from fs instead of the target filesystem.
func WithSourceFs(fs afero.Fs) DeployerOption {
	return func(d *FileDeployer) {
		d.source = fs
	}
}

// WithIDLookup replaces the passwd/group lookup of owners.
func WithIDLookup(lookup IDLookup) DeployerOption {
	return func(d *FileDeployer) {
		d.lookup = lookup
	}
}

func NewFileDeployer(fs afero.Fs, log logger.Logger, opts ...DeployerOption) *FileDeployer {
	d := &FileDeployer{
		fs:     fs,
		source: fs,
		client: &http.Client{Timeout: defaultFetchTimeout},
		lookup: systemIDs,
		chown:  fs.Chown,
		logger: log,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// InstallFile fetches file.Source and writes it to file.Path with the
// requested mode and ownership.
func (d *FileDeployer) InstallFile(ctx context.Context, file models.FileInstall) error {
	uid, gid, err := d.lookup(file.Owner, file.Group)
	if err != nil {
		return fmt.Errorf("failed to resolve %s:%s: %w", file.Owner, file.Group, err)
	}

	data, err := d.fetch(ctx, file.Source)
	if err != nil {
		return err
	}

	if file.SHA256 != "" {
		if err := hashutil.Verify(file.SHA256, data); err != nil {
			return fmt.Errorf("refusing to install %s: %w", file.Source, err)
		}
	}

	if err := fsutil.WriteFileAtomic(d.fs, file.Path, data, file.Mode); err != nil {
		return err
	}

	if err := d.chown(file.Path, uid, gid); err != nil {
		return fmt.Errorf("failed to chown %s: %w", file.Path, err)
	}

	d.logger.Debug().
		Str("path", file.Path).
		Str("source", file.Source).
		Int("bytes", len(data)).
		Msg("Installed file")

	return nil
}

func (d *FileDeployer) fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errUnsupportedSource, source, err)
	}

	switch u.Scheme {
	case "":
		return d.readLocal(source)
	case "file":
		return d.readLocal(u.Path)
	case "http", "https":
		return d.download(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedSource, source)
	}
}

func (d *FileDeployer) readLocal(path string) ([]byte, error) {
	f, err := d.source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return readLimited(f)
}

func (d *FileDeployer) download(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", source, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errFetchFailed, source, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", errFetchFailed, source, resp.StatusCode)
	}

	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxScriptSize+1))
	if err != nil {
		return nil, err
	}

	if len(data) > maxScriptSize {
		return nil, errScriptTooLarge
	}

	return data, nil
}

func systemIDs(owner, group string) (uid, gid int, err error) {
	u, err := user.Lookup(owner)
	if err != nil {
		return 0, 0, err
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, 0, err
	}

	if uid, err = strconv.Atoi(u.Uid); err != nil {
		return 0, 0, err
	}

	if gid, err = strconv.Atoi(g.Gid); err != nil {
		return 0, 0, err
	}

	return uid, gid, nil
}
