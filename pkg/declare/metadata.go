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

package declare

import (
	"strings"

	"github.com/carverauto/checkdecl/pkg/hiera"
	"github.com/carverauto/checkdecl/pkg/models"
)

// Shared lookup keys.
const (
	KeyNotesURL  = "monitoring::notes_url"
	KeyHostgroup = "monitoring::hostgroup"
	KeyParents   = "monitoring::parents"
)

const (
	IconRedHat  = "base/redhat.png"
	IconDebian  = "base/debian.png"
	IconWindows = "base/win40.png"
	IconDefault = "base/linux40.png"
)

// ResolveNotesURL picks the override template, then the shared one, and
// substitutes the service name for %s. It returns nil when neither is set.
func ResolveNotesURL(override, service string, src hiera.Source) *string {
	tmpl := override
	if tmpl == "" {
		tmpl = hiera.LookupString(src, KeyNotesURL, "")
	}

	if tmpl == "" {
		return nil
	}

	url := strings.ReplaceAll(tmpl, "%s", service)

	return &url
}

// ResolveHostgroup falls back to the node's zone.
func ResolveHostgroup(src hiera.Source, facts *models.Facts) string {
	var zone string
	if facts != nil {
		zone = facts.Zone
	}

	return hiera.LookupString(src, KeyHostgroup, zone)
}

// ResolveParents returns nil when no parents are configured.
func ResolveParents(src hiera.Source) []string {
	return hiera.LookupStrings(src, KeyParents, nil)
}

// IconFor maps an OS family to its status icon.
func IconFor(family models.OSFamily) string {
	switch family {
	case models.OSFamilyRedHat:
		return IconRedHat
	case models.OSFamilyDebian:
		return IconDebian
	case models.OSFamilyWindows:
		return IconWindows
	case models.OSFamilyOther:
		return IconDefault
	}

	return IconDefault
}
