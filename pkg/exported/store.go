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

// Package exported stores check declarations in the shared KV store, where
// every node publishes its own and the aggregator collects them all.
package exported

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/carverauto/checkdecl/pkg/kv"
	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

// DefaultNamespace is the key prefix declarations are stored under.
const DefaultNamespace = "declarations"

var (
	errInvalidKey     = errors.New("declaration key needs a host and a service")
	errInvalidKeyPath = errors.New("not a declaration key path")
	errNilDeclaration = errors.New("declaration is nil")
)

// keyEncoding keeps arbitrary host and service names inside the NATS KV key alphabet.
var keyEncoding = base64.RawURLEncoding

// Store is the declaration store on top of a kv.KVStore.
type Store struct {
	kv        kv.KVStore
	namespace string
	logger    logger.Logger
}

// NewStore returns a Store writing under namespace (DefaultNamespace when empty).
func NewStore(store kv.KVStore, namespace string, log logger.Logger) *Store {
	ns := strings.Trim(namespace, "/")
	if ns == "" {
		ns = DefaultNamespace
	}

	return &Store{
		kv:        store,
		namespace: ns,
		logger:    log,
	}
}

// KeyPath builds the storage path of a declaration key.
func KeyPath(namespace string, key models.DeclarationKey) (string, error) {
	if key.Host == "" || key.Service == "" {
		return "", fmt.Errorf("%w: %q", errInvalidKey, key.String())
	}

	return fmt.Sprintf("%s/%s/%s",
		namespace,
		keyEncoding.EncodeToString([]byte(key.Host)),
		keyEncoding.EncodeToString([]byte(key.Service))), nil
}

// ParseKeyPath is the inverse of KeyPath.
func ParseKeyPath(namespace, p string) (models.DeclarationKey, error) {
	rest, ok := strings.CutPrefix(p, namespace+"/")
	if !ok {
		return models.DeclarationKey{}, fmt.Errorf("%w: %q", errInvalidKeyPath, p)
	}

	hostPart, servicePart, ok := strings.Cut(rest, "/")
	if !ok {
		return models.DeclarationKey{}, fmt.Errorf("%w: %q", errInvalidKeyPath, p)
	}

	host, err := keyEncoding.DecodeString(hostPart)
	if err != nil {
		return models.DeclarationKey{}, fmt.Errorf("%w: %q: %w", errInvalidKeyPath, p, err)
	}

	service, err := keyEncoding.DecodeString(servicePart)
	if err != nil {
		return models.DeclarationKey{}, fmt.Errorf("%w: %q: %w", errInvalidKeyPath, p, err)
	}

	return models.DeclarationKey{Host: string(host), Service: string(service)}, nil
}

// Publish writes decl under its key, replacing whatever was there.
func (s *Store) Publish(ctx context.Context, decl *models.CheckDeclaration) error {
	if decl == nil {
		return errNilDeclaration
	}

	path, err := KeyPath(s.namespace, decl.Key())
	if err != nil {
		return err
	}

	data, err := json.Marshal(decl)
	if err != nil {
		return fmt.Errorf("failed to marshal declaration %s: %w", decl.Key(), err)
	}

	if err := s.kv.Put(ctx, path, data); err != nil {
		recordPublish(ctx, outcomeError)

		return fmt.Errorf("failed to write declaration %s: %w", decl.Key(), err)
	}

	recordPublish(ctx, outcomeOK)

	s.logger.Debug().Str("key", path).Int("bytes", len(data)).Msg("Stored declaration")

	return nil
}

// Get reads one declaration. The boolean is false when none is stored.
func (s *Store) Get(ctx context.Context, key models.DeclarationKey) (*models.CheckDeclaration, bool, error) {
	path, err := KeyPath(s.namespace, key)
	if err != nil {
		return nil, false, err
	}

	data, found, err := s.kv.Get(ctx, path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read declaration %s: %w", key, err)
	}

	if !found {
		return nil, false, nil
	}

	var decl models.CheckDeclaration
	if err := json.Unmarshal(data, &decl); err != nil {
		return nil, false, fmt.Errorf("failed to decode declaration %s: %w", key, err)
	}

	return &decl, true, nil
}

// Delete removes a declaration; removing a missing one is not an error.
func (s *Store) Delete(ctx context.Context, key models.DeclarationKey) error {
	path, err := KeyPath(s.namespace, key)
	if err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete declaration %s: %w", key, err)
	}

	return nil
}

// CollectAll returns every stored declaration ordered by host and service.
// Entries that cannot be decoded are logged and skipped so one bad writer
// cannot block the aggregator.
func (s *Store) CollectAll(ctx context.Context) ([]*models.CheckDeclaration, error) {
	keys, err := s.kv.Keys(ctx, s.namespace+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list declarations: %w", err)
	}

	decls := make([]*models.CheckDeclaration, 0, len(keys))

	for _, path := range keys {
		key, err := ParseKeyPath(s.namespace, path)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Skipping foreign key")
			continue
		}

		decl, found, err := s.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", path).Msg("Skipping unreadable declaration")
			continue
		}

		if !found {
			// deleted between listing and reading
			continue
		}

		decls = append(decls, decl)
	}

	sort.Slice(decls, func(i, j int) bool {
		if decls[i].Host != decls[j].Host {
			return decls[i].Host < decls[j].Host
		}

		return decls[i].Service < decls[j].Service
	})

	return decls, nil
}
