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

import "errors"

var (
	// ErrRunAsUnsupported is returned for direct checks that ask for a run-as user.
	ErrRunAsUnsupported = errors.New("run_as is not supported in direct mode")
	// ErrArgumentsNotImplemented is returned for agent checks that carry arguments.
	ErrArgumentsNotImplemented = errors.New("arguments are not implemented in agent mode")
	// ErrArgumentCountMismatch is returned when the $ARGn$ placeholders of a direct
	// command do not line up with the supplied arguments.
	ErrArgumentCountMismatch = errors.New("argument count does not match $ARGn$ placeholders")
	// ErrDuplicateDeclaration is returned when two intents of one node share a
	// host and service once defaults are applied.
	ErrDuplicateDeclaration = errors.New("duplicate check declaration")

	errServiceRequired  = errors.New("service is required")
	errAddressRequired  = errors.New("address is required for agent checks")
	errUnknownMode      = errors.New("unknown execution mode")
	errStoreRequired    = errors.New("declaration store is required")
	errNodeAgentMissing = errors.New("agent checks need a daemon registrar, script deployer and privilege policy")
)
