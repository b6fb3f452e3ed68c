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

// Package facts gathers the identity facts of the local node.
package facts

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/carverauto/checkdecl/pkg/logger"
	"github.com/carverauto/checkdecl/pkg/models"
)

var errNoHostname = errors.New("unable to determine hostname")

type gatherDeps struct {
	hostInfo   func(context.Context) (*host.InfoStat, error)
	interfaces func(context.Context) (psnet.InterfaceStatList, error)
}

type option func(*gatherDeps)

// Overrides pins facts that should not be discovered, e.g. from configuration.
type Overrides struct {
	Hostname string
	Address  string
	Zone     string
}

// Gather discovers the node facts. Values in overrides take precedence.
func Gather(ctx context.Context, overrides Overrides, log logger.Logger) (*models.Facts, error) {
	return gather(ctx, overrides, log)
}

func gather(ctx context.Context, overrides Overrides, log logger.Logger, opts ...option) (*models.Facts, error) {
	deps := gatherDeps{
		hostInfo:   host.InfoWithContext,
		interfaces: psnet.InterfacesWithContext,
	}

	for _, opt := range opts {
		opt(&deps)
	}

	facts := &models.Facts{
		Hostname: overrides.Hostname,
		Address:  overrides.Address,
		Zone:     overrides.Zone,
		OSFamily: models.OSFamilyOther,
	}

	info, err := deps.hostInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Host info unavailable")
	} else {
		if facts.Hostname == "" {
			facts.Hostname = info.Hostname
		}

		facts.OSFamily = OSFamilyOf(info.OS, info.PlatformFamily)
	}

	if facts.Hostname == "" {
		return nil, errNoHostname
	}

	if facts.Address == "" {
		ifaces, err := deps.interfaces(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list network interfaces: %w", err)
		}

		facts.Address = primaryAddress(ifaces)
	}

	log.Debug().
		Str("hostname", facts.Hostname).
		Str("address", facts.Address).
		Str("os_family", string(facts.OSFamily)).
		Str("zone", facts.Zone).
		Msg("Gathered node facts")

	return facts, nil
}

// OSFamilyOf maps gopsutil's os/platform family to an OSFamily.
func OSFamilyOf(goos, platformFamily string) models.OSFamily {
	if strings.EqualFold(goos, "windows") {
		return models.OSFamilyWindows
	}

	switch strings.ToLower(platformFamily) {
	case "rhel", "fedora", "redhat", "amazon", "suse":
		return models.OSFamilyRedHat
	case "debian":
		return models.OSFamilyDebian
	}

	return models.OSFamilyOther
}

// primaryAddress picks the first global unicast IPv4 address of an interface
// that is up and not a loopback. It returns "" when there is none.
func primaryAddress(ifaces psnet.InterfaceStatList) string {
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}

		for _, addr := range iface.Addrs {
			prefix, err := netip.ParsePrefix(addr.Addr)
			if err != nil {
				continue
			}

			ip := prefix.Addr()
			if ip.Is4() && ip.IsGlobalUnicast() {
				return ip.String()
			}
		}
	}

	return ""
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}

	return false
}
