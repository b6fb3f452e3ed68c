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
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	errUnsafeValue = errors.New("value contains a line break")
	errInvalidUser = errors.New("invalid user name")
	errInvalidID   = errors.New("command identifier must be non-empty without whitespace, '[', ']' or '='")
)

var userPattern = regexp.MustCompile(`^[a-z_][a-z0-9_.-]*[$]?$`)

func singleLine(v string) error {
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: %q", errUnsafeValue, v)
	}

	return nil
}

func validUser(name string) error {
	if !userPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", errInvalidUser, name)
	}

	return nil
}

// commandIdentifier checks that id can stand inside command[...] in an NRPE
// configuration line.
func commandIdentifier(id string) error {
	if id == "" || strings.ContainsAny(id, "[]=") || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", errInvalidID, id)
	}

	return nil
}
