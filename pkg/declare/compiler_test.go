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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/checkdecl/pkg/models"
)

func TestCompileDirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		literal string
		args    []string
		want    string
		wantErr error
	}{
		{
			name:    "relative literal gets engine plugin dir",
			literal: "check_disk -w 10% -c 5%",
			want:    "$USER1$/check_disk -w 10% -c 5%",
		},
		{
			name:    "absolute path kept verbatim",
			literal: "/opt/plugins/check_foo -x",
			want:    "/opt/plugins/check_foo -x",
		},
		{
			name:    "macro kept verbatim",
			literal: "$USER2$/check_bar",
			want:    "$USER2$/check_bar",
		},
		{
			name:    "placeholders left untouched",
			literal: "check_http -H $ARG1$ -u $ARG2$",
			args:    []string{"example.com", "/health"},
			want:    "$USER1$/check_http -H $ARG1$ -u $ARG2$",
		},
		{
			name:    "missing argument",
			literal: "check_http -H $ARG1$ -u $ARG2$",
			args:    []string{"example.com"},
			wantErr: ErrArgumentCountMismatch,
		},
		{
			name:    "argument without placeholder",
			literal: "check_ping",
			args:    []string{"unused"},
			wantErr: ErrArgumentCountMismatch,
		},
		{
			name:    "repeated placeholder counts once",
			literal: "check_dns -H $ARG1$ -s $ARG1$",
			args:    []string{"ns1"},
			want:    "$USER1$/check_dns -H $ARG1$ -s $ARG1$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CompileDirect(tt.literal, tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileProxy(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"$USER1$/check_nrpe -H 10.0.0.5 -t 10 -c check_raid",
		CompileProxy("10.0.0.5", models.DefaultTimeout, "check_raid"))

	assert.Equal(t,
		"$USER1$/check_nrpe -H db1 -t 2 -c check_x",
		CompileProxy("db1", models.Duration(1500*time.Millisecond), "check_x"))
}
