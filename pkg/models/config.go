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

package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/carverauto/checkdecl/pkg/logger"
)

var (
	errNATSURLRequired       = errors.New("nats.url is required")
	errServiceRequired       = errors.New("service is required")
	errInvalidHierarchy      = errors.New("hierarchy.source must be 'file' or 'kv'")
	errHierarchyDirRequired  = errors.New("hierarchy.dir is required for file hierarchies")
	errDuplicateDeclaredName = errors.New("duplicate service in checks")
	errNegativeInterval      = errors.New("interval must not be negative")
)

const (
	DefaultBucket           = "checkdecl"
	DefaultHierarchyPrefix  = "hiera"
	DefaultNRPEIncludeDir   = "/etc/nrpe.d"
	DefaultSudoersDir       = "/etc/sudoers.d"
	DefaultDaemonUser       = "nrpe"
	DefaultPluginOwner      = "nagios"
	DefaultAggregatorOutput = "/etc/nagios/conf.d/checkdecl.cfg"
	DefaultHostTemplate     = "generic-host"
	DefaultServiceTemplate  = "generic-service"

	HierarchySourceFile = "file"
	HierarchySourceKV   = "kv"
)

// DefaultHierarchyLayers is the lookup order used when none is configured.
var DefaultHierarchyLayers = []string{"nodes/%{hostname}", "zones/%{zone}", "os/%{os_family}", "common"}

// SecurityMode defines the type of security to use.
type SecurityMode string

// TLSConfig holds TLS file locations.
type TLSConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file"`
}

// SecurityConfig holds the transport security settings for the NATS connection.
type SecurityConfig struct {
	Mode       SecurityMode `json:"mode"`
	CertDir    string       `json:"cert_dir"`
	ServerName string       `json:"server_name,omitempty"`
	TLS        TLSConfig    `json:"tls"`
}

// Normalize makes relative TLS file paths relative to CertDir.
func (s *SecurityConfig) Normalize() {
	if s.CertDir == "" {
		return
	}

	for _, p := range []*string{&s.TLS.CertFile, &s.TLS.KeyFile, &s.TLS.CAFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(s.CertDir, *p)
		}
	}
}

// NATSConfig locates the JetStream KV bucket holding declarations.
type NATSConfig struct {
	URL      string          `json:"url"`
	Bucket   string          `json:"bucket,omitempty"`
	Domain   string          `json:"domain,omitempty"`
	Security *SecurityConfig `json:"security,omitempty"`
}

func (n *NATSConfig) validate() error {
	if n.URL == "" {
		return errNATSURLRequired
	}

	if n.Bucket == "" {
		n.Bucket = DefaultBucket
	}

	return nil
}

// HierarchyConfig describes where shared lookup data lives.
type HierarchyConfig struct {
	Source string   `json:"source"`           // file | kv
	Dir    string   `json:"dir,omitempty"`    // for file
	Prefix string   `json:"prefix,omitempty"` // for kv
	Layers []string `json:"layers,omitempty"`
}

func (h *HierarchyConfig) validate() error {
	switch h.Source {
	case "":
		h.Source = HierarchySourceFile
		fallthrough
	case HierarchySourceFile:
		if h.Dir == "" {
			return errHierarchyDirRequired
		}
	case HierarchySourceKV:
		if h.Prefix == "" {
			h.Prefix = DefaultHierarchyPrefix
		}
	default:
		return fmt.Errorf("%w: %q", errInvalidHierarchy, h.Source)
	}

	if len(h.Layers) == 0 {
		h.Layers = append([]string(nil), DefaultHierarchyLayers...)
	}

	return nil
}

// NodeAgentConfig holds the local paths and accounts used for agent checks.
type NodeAgentConfig struct {
	IncludeDir  string `json:"include_dir,omitempty"`
	SudoersDir  string `json:"sudoers_dir,omitempty"`
	DaemonUser  string `json:"daemon_user,omitempty"`
	PluginOwner string `json:"plugin_owner,omitempty"`
	PluginGroup string `json:"plugin_group,omitempty"`
}

func (a *NodeAgentConfig) applyDefaults() {
	if a.IncludeDir == "" {
		a.IncludeDir = DefaultNRPEIncludeDir
	}

	if a.SudoersDir == "" {
		a.SudoersDir = DefaultSudoersDir
	}

	if a.DaemonUser == "" {
		a.DaemonUser = DefaultDaemonUser
	}

	if a.PluginOwner == "" {
		a.PluginOwner = DefaultPluginOwner
	}

	if a.PluginGroup == "" {
		a.PluginGroup = a.PluginOwner
	}
}

// NodeConfig is the configuration of the declare binary.
type NodeConfig struct {
	Hostname  string          `json:"hostname,omitempty"` // overrides the discovered hostname
	Address   string          `json:"address,omitempty"`  // overrides the discovered address
	Zone      string          `json:"zone"`
	PluginDir string          `json:"plugin_dir,omitempty"`
	NATS      NATSConfig      `json:"nats"`
	Hierarchy HierarchyConfig `json:"hierarchy"`
	Agent     NodeAgentConfig `json:"agent"`
	Checks    []CheckIntent   `json:"checks"`
	Logging   *logger.Config  `json:"logging,omitempty"`
}

// Validate implements config.Validator.
func (c *NodeConfig) Validate() error {
	if err := c.NATS.validate(); err != nil {
		return err
	}

	if err := c.Hierarchy.validate(); err != nil {
		return err
	}

	c.Agent.applyDefaults()

	if c.PluginDir == "" {
		c.PluginDir = DefaultPluginDir
	}

	seen := make(map[DeclarationKey]struct{}, len(c.Checks))

	for i := range c.Checks {
		if c.Checks[i].Service == "" {
			return fmt.Errorf("checks[%d]: %w", i, errServiceRequired)
		}

		// both would publish under the same key and only the last one would survive;
		// an empty host is compared as written, the node's hostname is filled in later
		key := DeclarationKey{Host: c.Checks[i].Host, Service: c.Checks[i].Service}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", errDuplicateDeclaredName, key)
		}

		seen[key] = struct{}{}

		if c.Checks[i].PluginDir == "" {
			c.Checks[i].PluginDir = c.PluginDir
		}
	}

	return nil
}

// AggregatorConfig is the configuration of the aggregate binary.
type AggregatorConfig struct {
	NATS            NATSConfig     `json:"nats"`
	Output          string         `json:"output"`
	HostTemplate    string         `json:"host_template,omitempty"`
	ServiceTemplate string         `json:"service_template,omitempty"`
	Interval        Duration       `json:"interval,omitempty"` // 0 runs a single pass
	Logging         *logger.Config `json:"logging,omitempty"`
}

// Validate implements config.Validator.
func (c *AggregatorConfig) Validate() error {
	if err := c.NATS.validate(); err != nil {
		return err
	}

	if c.Output == "" {
		c.Output = DefaultAggregatorOutput
	}

	if c.HostTemplate == "" {
		c.HostTemplate = DefaultHostTemplate
	}

	if c.ServiceTemplate == "" {
		c.ServiceTemplate = DefaultServiceTemplate
	}

	if c.Interval < 0 {
		return errNegativeInterval
	}

	return nil
}
