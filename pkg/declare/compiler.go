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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/carverauto/checkdecl/pkg/models"
)

// userMacro expands to the engine's own plugin directory.
const userMacro = "$USER1$"

var placeholderPattern = regexp.MustCompile(`\$ARG([0-9]+)\$`)

// CompileDirect builds the line the checking engine runs itself. Qualified
// literals (leading '/' or '$') are kept as is, anything else is made relative
// to $USER1$. Placeholders are left for the engine to substitute.
func CompileDirect(literal string, args []string) (string, error) {
	if err := checkPlaceholders(literal, len(args)); err != nil {
		return "", err
	}

	if strings.HasPrefix(literal, "/") || strings.HasPrefix(literal, "$") {
		return literal, nil
	}

	return userMacro + "/" + literal, nil
}

// checkPlaceholders requires the highest $ARGn$ index to equal the number of arguments.
func checkPlaceholders(literal string, count int) error {
	highest := 0

	for _, m := range placeholderPattern.FindAllStringSubmatch(literal, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}

	if highest != count {
		return fmt.Errorf("%w: command references $ARG%d$, %d argument(s) given",
			ErrArgumentCountMismatch, highest, count)
	}

	return nil
}

// CompileProxy builds the check-proxy invocation the engine runs for agent checks.
func CompileProxy(address string, timeout models.Duration, commandID string) string {
	return fmt.Sprintf("%s/check_nrpe -H %s -t %d -c %s", userMacro, address, timeout.Seconds(), commandID)
}
