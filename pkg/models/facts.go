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

// OSFamily is the coarse operating system identity of a node.
type OSFamily string

const (
	OSFamilyRedHat  OSFamily = "redhat"
	OSFamilyDebian  OSFamily = "debian"
	OSFamilyWindows OSFamily = "windows"
	OSFamilyOther   OSFamily = "other"
)

// Facts are the read-only identity facts of the node doing the declaring.
type Facts struct {
	Hostname string   `json:"hostname"`
	Address  string   `json:"address"`
	OSFamily OSFamily `json:"os_family"`
	Zone     string   `json:"zone"`
}

// Values exposes the facts for %{name} interpolation.
func (f *Facts) Values() map[string]string {
	return map[string]string{
		"hostname":  f.Hostname,
		"address":   f.Address,
		"os_family": string(f.OSFamily),
		"zone":      f.Zone,
	}
}
