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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"disk/root", "disk_root"},
		{"http:8080", "http_8080"},
		{"multi\nline", "multi_line"},
		{"a/b:c\nd", "a_b_c_d"},
		{"plain", "plain"},
		{"", ""},
		{"//::", "____"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "Sanitize(%q)", tt.in)
	}
}

func TestCommandIDProperty(t *testing.T) {
	t.Parallel()

	inputs := []string{"disk/root", "raid", "ntp:offset", "x\n/y:z", "ünïcode/näme", "", "/"}

	for _, in := range inputs {
		id := CommandID(in)

		assert.Equal(t, "check_"+Sanitize(in), id)
		assert.NotContains(t, strings.TrimPrefix(id, "check_"), "/")
		assert.NotContains(t, id, ":")
		assert.NotContains(t, id, "\n")
		assert.Equal(t, len([]rune(in)), len([]rune(Sanitize(in))), "length preserved for %q", in)
	}
}
