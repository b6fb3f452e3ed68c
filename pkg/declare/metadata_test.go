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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/checkdecl/pkg/hiera"
	"github.com/carverauto/checkdecl/pkg/models"
)

func TestResolveNotesURL(t *testing.T) {
	t.Parallel()

	shared := hiera.MapSource{KeyNotesURL: "https://wiki/%s"}

	got := ResolveNotesURL("https://runbooks/%s.md", "raid", shared)
	require.NotNil(t, got)
	assert.Equal(t, "https://runbooks/raid.md", *got)

	got = ResolveNotesURL("", "raid", shared)
	require.NotNil(t, got)
	assert.Equal(t, "https://wiki/raid", *got)

	assert.Nil(t, ResolveNotesURL("", "raid", hiera.MapSource{}))
	assert.Nil(t, ResolveNotesURL("", "raid", nil))
}

func TestResolveHostgroup(t *testing.T) {
	t.Parallel()

	facts := &models.Facts{Zone: "dc1"}

	assert.Equal(t, "web", ResolveHostgroup(hiera.MapSource{KeyHostgroup: "web"}, facts))
	assert.Equal(t, "dc1", ResolveHostgroup(hiera.MapSource{}, facts))
	assert.Empty(t, ResolveHostgroup(nil, nil))
}

func TestResolveParents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"sw1", "sw2"}, ResolveParents(hiera.MapSource{KeyParents: "sw1, sw2"}))
	assert.Equal(t, []string{"gw"}, ResolveParents(hiera.MapSource{KeyParents: []interface{}{"gw"}}))
	assert.Nil(t, ResolveParents(hiera.MapSource{}))
}

func TestIconFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "base/redhat.png", IconFor(models.OSFamilyRedHat))
	assert.Equal(t, "base/debian.png", IconFor(models.OSFamilyDebian))
	assert.Equal(t, "base/win40.png", IconFor(models.OSFamilyWindows))
	assert.Equal(t, "base/linux40.png", IconFor(models.OSFamilyOther))
	assert.Equal(t, "base/linux40.png", IconFor(""))
}
