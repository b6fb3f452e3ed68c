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

package hiera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

// KeyDelimiter separates namespaces in lookup keys, e.g. monitoring::hostgroup.
const KeyDelimiter = "::"

var layerExtensions = []string{".yaml", ".yml", ".json"}

type layer struct {
	name string
	data *viper.Viper
}

// Hierarchy is an ordered list of data layers; the first layer that sets a key wins.
type Hierarchy struct {
	layers []layer
}

func (h *Hierarchy) Lookup(key string) (interface{}, bool) {
	for _, l := range h.layers {
		if l.data.IsSet(key) {
			return l.data.Get(key), true
		}
	}

	return nil, false
}

// Layers returns the names of the layers that were found, in lookup order.
func (h *Hierarchy) Layers() []string {
	names := make([]string, 0, len(h.layers))
	for _, l := range h.layers {
		names = append(names, l.name)
	}

	return names
}

func newLayerData() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
}

// resolveLayers interpolates the layer templates with the node facts, dropping
// layers that reference a fact the node does not have.
func resolveLayers(templates []string, facts *models.Facts, log logger.Logger) []string {
	values := facts.Values()
	names := make([]string, 0, len(templates))

	for _, tmpl := range templates {
		name, ok := Interpolate(tmpl, values)
		if !ok {
			log.Debug().Str("layer", tmpl).Msg("Skipping layer with unresolved facts")
			continue
		}

		names = append(names, name)
	}

	return names
}

// LoadFS reads the hierarchy from YAML or JSON documents below dir. Missing layers are skipped.
func LoadFS(fs afero.Fs, dir string, templates []string, facts *models.Facts, log logger.Logger) (*Hierarchy, error) {
	h := &Hierarchy{}

	for _, name := range resolveLayers(templates, facts, log) {
		file, err := findLayerFile(fs, filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}

		if file == "" {
			continue
		}

		data := newLayerData()
		data.SetFs(fs)
		data.SetConfigFile(file)

		if err := data.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read hierarchy layer %s: %w", file, err)
		}

		log.Debug().Str("layer", name).Str("file", file).Msg("Loaded hierarchy layer")

		h.layers = append(h.layers, layer{name: name, data: data})
	}

	return h, nil
}

func findLayerFile(fs afero.Fs, base string) (string, error) {
	for _, ext := range layerExtensions {
		_, err := fs.Stat(base + ext)
		if err == nil {
			return base + ext, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", base+ext, err)
		}
	}

	return "", nil
}

// LoadKV reads the hierarchy from YAML documents stored under prefix/<layer>.yaml.
func LoadKV(ctx context.Context, store kv.KVStore, prefix string, templates []string, facts *models.Facts,
	log logger.Logger) (*Hierarchy, error) {
	h := &Hierarchy{}

	for _, name := range resolveLayers(templates, facts, log) {
		key := path.Join(prefix, name) + ".yaml"

		raw, found, err := store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch hierarchy layer %s: %w", key, err)
		}

		if !found {
			continue
		}

		data := newLayerData()
		data.SetConfigType("yaml")

		if err := data.ReadConfig(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to parse hierarchy layer %s: %w", key, err)
		}

		log.Debug().Str("layer", name).Str("key", key).Msg("Loaded hierarchy layer")

		h.layers = append(h.layers, layer{name: name, data: data})
	}

	return h, nil
}
