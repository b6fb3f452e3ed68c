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

// Package nodeagent applies the node side effects of agent checks: check
// definitions for the NRPE daemon, plugin scripts and sudoers grants. All
// writes go through an afero.Fs.
package nodeagent

import (
	"net/http"
)

// HTTPClient fetches script sources served over http(s).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IDLookup resolves an owner and group name to numeric ids.
type IDLookup func(owner, group string) (uid, gid int, err error)
