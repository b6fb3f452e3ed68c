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

// Package hiera implements the shared hierarchical lookup used to resolve
// inheritable check metadata: an explicit value wins, then the first layer of
// the hierarchy that sets the key, then a built-in default.
package hiera

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// Source answers lookups against shared configuration. Lookups are pure reads
// of data loaded up front.
type Source interface {
	Lookup(key string) (interface{}, bool)
}

// MapSource is a flat, static Source.
type MapSource map[string]interface{}

func (m MapSource) Lookup(key string) (interface{}, bool) {
	v, ok := m[key]

	return v, ok
}

// LookupString returns the string at key, or def when src is nil, the key is
// unset or the value is empty.
func LookupString(src Source, key, def string) string {
	if src == nil {
		return def
	}

	v, ok := src.Lookup(key)
	if !ok || v == nil {
		return def
	}

	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return def
	}

	return s
}

// LookupStrings returns the list at key. Scalar strings are split on commas.
func LookupStrings(src Source, key string, def []string) []string {
	if src == nil {
		return def
	}

	v, ok := src.Lookup(key)
	if !ok || v == nil {
		return def
	}

	var raw []string

	if s, isString := v.(string); isString {
		raw = strings.Split(s, ",")
	} else {
		var err error

		raw, err = cast.ToStringSliceE(v)
		if err != nil {
			return def
		}
	}

	out := make([]string, 0, len(raw))

	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	if len(out) == 0 {
		return def
	}

	return out
}

var factPattern = regexp.MustCompile(`%\{([a-z_]+)\}`)

// Interpolate replaces %{name} tokens in tmpl with values. The second result is
// false when a token names an unknown or empty value.
func Interpolate(tmpl string, values map[string]string) (string, bool) {
	complete := true

	out := factPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := factPattern.FindStringSubmatch(tok)[1]

		v := values[name]
		if v == "" {
			complete = false
		}

		return v
	})

	return out, complete
}
