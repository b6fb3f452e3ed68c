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
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/checkdecl/pkg/hashutil"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

var errNoSuchUser = errors.New("no such user")

type chownCall struct {
	name     string
	uid, gid int
}

func newTestDeployer(t *testing.T, fs afero.Fs, opts ...DeployerOption) (*FileDeployer, *[]chownCall) {
	t.Helper()

	opts = append([]DeployerOption{WithIDLookup(func(owner, group string) (int, int, error) {
		if owner != "nagios" || group != "nagios" {
			return 0, 0, errNoSuchUser
		}

		return 901, 902, nil
	})}, opts...)

	d := NewFileDeployer(fs, logger.NewTestLogger(), opts...)

	var calls []chownCall

	d.chown = func(name string, uid, gid int) error {
		calls = append(calls, chownCall{name, uid, gid})
		return nil
	}

	return d, &calls
}

func scriptInstall(source string) models.FileInstall {
	return models.FileInstall{
		Path:   "/usr/lib64/nagios/plugins/check_queue.sh",
		Owner:  "nagios",
		Group:  "nagios",
		Mode:   0o755,
		Source: source,
	}
}

func TestInstallFileFromLocalPath(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/plugins/check_queue.sh", []byte("#!/bin/sh\nexit 0\n"), 0o600))

	d, calls := newTestDeployer(t, fs)

	for _, src := range []string{"/srv/plugins/check_queue.sh", "file:///srv/plugins/check_queue.sh"} {
		require.NoError(t, d.InstallFile(context.Background(), scriptInstall(src)))
	}

	data, err := afero.ReadFile(fs, "/usr/lib64/nagios/plugins/check_queue.sh")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nexit 0\n", string(data))

	info, err := fs.Stat("/usr/lib64/nagios/plugins/check_queue.sh")
	require.NoError(t, err)
	assert.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())

	assert.Equal(t, []chownCall{
		{"/usr/lib64/nagios/plugins/check_queue.sh", 901, 902},
		{"/usr/lib64/nagios/plugins/check_queue.sh", 901, 902},
	}, *calls)
}

func TestInstallFileFromHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check_queue.sh" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte("#!/bin/sh\n"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	d, _ := newTestDeployer(t, fs, WithHTTPClient(srv.Client()))
	ctx := context.Background()

	require.NoError(t, d.InstallFile(ctx, scriptInstall(srv.URL+"/check_queue.sh")))

	data, err := afero.ReadFile(fs, "/usr/lib64/nagios/plugins/check_queue.sh")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	err = d.InstallFile(ctx, scriptInstall(srv.URL+"/missing"))
	require.ErrorIs(t, err, errFetchFailed)
}

func TestInstallFileErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	d, calls := newTestDeployer(t, fs, WithSourceFs(afero.NewMemMapFs()))
	ctx := context.Background()

	err := d.InstallFile(ctx, scriptInstall("ftp://files/check_queue.sh"))
	require.ErrorIs(t, err, errUnsupportedSource)

	err = d.InstallFile(ctx, scriptInstall("/does/not/exist"))
	require.Error(t, err)

	bad := scriptInstall("/does/not/matter")
	bad.Owner = "root"
	err = d.InstallFile(ctx, bad)
	require.ErrorIs(t, err, errNoSuchUser)

	assert.Empty(t, *calls)
}

func TestInstallFileVerifiesChecksum(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	content := []byte("#!/bin/sh\nexit 0\n")
	require.NoError(t, afero.WriteFile(fs, "/srv/check_queue.sh", content, 0o600))

	sum := sha256.Sum256(content)
	d, _ := newTestDeployer(t, fs)
	ctx := context.Background()

	pinned := scriptInstall("/srv/check_queue.sh")
	pinned.SHA256 = hex.EncodeToString(sum[:])
	require.NoError(t, d.InstallFile(ctx, pinned))

	require.NoError(t, afero.WriteFile(fs, "/srv/check_queue.sh", []byte("tampered"), 0o600))

	err := d.InstallFile(ctx, pinned)
	require.ErrorIs(t, err, hashutil.ErrChecksumMismatch)

	data, err := afero.ReadFile(fs, "/usr/lib64/nagios/plugins/check_queue.sh")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}
