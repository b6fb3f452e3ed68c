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
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/carverauto/checkdecl/pkg/models"
)

const sudoPath = "/usr/bin/sudo"

// scriptMode lets owner and group execute installed scripts; everyone may read them.
const scriptMode os.FileMode = 0o755

// Options are the local accounts agent checks are set up with.
type Options struct {
	DaemonUser  string
	PluginOwner string
	PluginGroup string
}

func (o Options) withDefaults() Options {
	if o.DaemonUser == "" {
		o.DaemonUser = models.DefaultDaemonUser
	}

	if o.PluginOwner == "" {
		o.PluginOwner = models.DefaultPluginOwner
	}

	if o.PluginGroup == "" {
		o.PluginGroup = o.PluginOwner
	}

	return o
}

func (r *Resolver) route(intent *models.CheckIntent, commandID, command string) (models.Execution, error) {
	switch intent.Mode {
	case models.ModeDirect:
		return routeDirect(intent, command)
	case models.ModeAgent:
		return r.routeAgent(intent, commandID, command)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMode, intent.Mode)
	}
}

func routeDirect(intent *models.CheckIntent, command string) (*models.DirectCheck, error) {
	if intent.RunAs != "" {
		return nil, ErrRunAsUnsupported
	}

	line, err := CompileDirect(command, intent.Arguments)
	if err != nil {
		return nil, err
	}

	check := &models.DirectCheck{
		Line:         line,
		ScriptSource: intent.ScriptSource,
		Delegate:     intent.Delegate,
	}

	if len(intent.Arguments) > 0 {
		check.Arguments = append([]string(nil), intent.Arguments...)
	}

	return check, nil
}

func (r *Resolver) routeAgent(intent *models.CheckIntent, commandID, command string) (*models.AgentCheck, error) {
	if len(intent.Arguments) > 0 {
		return nil, ErrArgumentsNotImplemented
	}

	if intent.Address == "" {
		return nil, errAddressRequired
	}

	local := pluginPath(intent.PluginDir, command)

	check := &models.AgentCheck{
		ProxyLine:    CompileProxy(intent.Address, intent.Timeout, commandID),
		ScriptSource: intent.ScriptSource,
	}

	if intent.ScriptSource != "" {
		check.Install = &models.FileInstall{
			Path:   pluginPath(intent.PluginDir, scriptName(intent.ScriptSource)),
			Owner:  r.opts.PluginOwner,
			Group:  r.opts.PluginGroup,
			Mode:   scriptMode,
			Source: intent.ScriptSource,
			SHA256: intent.ScriptSHA256,
		}
	}

	if intent.RunAs != "" {
		check.Elevation = &models.ElevationGrant{
			CommandID:   commandID,
			ActingUser:  r.opts.DaemonUser,
			TargetUser:  intent.RunAs,
			Command:     local,
			Interactive: false,
		}

		local = fmt.Sprintf("%s -u %s %s", sudoPath, intent.RunAs, local)
	}

	check.Registration = models.Registration{
		CommandID:   commandID,
		CommandLine: local,
	}

	return check, nil
}

// pluginPath makes a relative command absolute under dir.
func pluginPath(dir, command string) string {
	if strings.HasPrefix(command, "/") {
		return command
	}

	return strings.TrimSuffix(dir, "/") + "/" + command
}

// scriptName is the final path segment of a script source, which may be a
// plain path or a URL.
func scriptName(source string) string {
	p := source

	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}

	return path.Base(p)
}
