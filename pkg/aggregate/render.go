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

package aggregate

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
)

const headerTemplate = "# Generated by checkdecl aggregate, run %s. Do not edit.\n"

const objectsTemplate = `{{range .Hosts}}
define host {
{{attr "use" $.Options.HostTemplate}}{{attr "host_name" .Name}}{{attr "address" .Address}}{{attr "hostgroups" .Hostgroup}}{{attr "parents" (join .Parents ",")}}{{attr "icon_image" .Icon}}}
{{end}}{{range .Commands}}
define command {
{{attr "command_name" .Name}}{{attr "command_line" .Line}}}
{{end}}{{range .Services}}
{{if .ScriptSource}}# script for {{.CheckCommand}}: {{.ScriptSource}}
{{end}}define service {
{{attr "use" $.Options.ServiceTemplate}}{{attr "host_name" .Host}}{{attr "service_description" .Description}}{{attr "check_command" .CheckCommand}}{{attr "check_interval" .CheckInterval}}{{attr "notes_url" .NotesURL}}{{attr "icon_image" .Icon}}{{range .Custom}}{{attr (printf "_%s" .Name) .Value}}{{end}}}
{{end}}`

var objectsTmpl = template.Must(template.New("objects").Funcs(template.FuncMap{
	"attr": attr,
	"join": strings.Join,
}).Parse(objectsTemplate))

// attr renders one directive line, or nothing for an empty value. Line breaks
// would end the directive early, so they are flattened.
func attr(name string, value interface{}) string {
	s := strings.NewReplacer("\r", " ", "\n", " ").Replace(fmt.Sprint(value))
	if s == "" {
		return ""
	}

	return fmt.Sprintf("    %-24s %s\n", name, s)
}

// RenderBody writes the object definitions without the header.
func RenderBody(w io.Writer, objs *Objects) error {
	if err := objectsTmpl.Execute(w, objs); err != nil {
		return fmt.Errorf("failed to render objects: %w", err)
	}

	return nil
}

// Render writes a complete configuration file.
func Render(w io.Writer, objs *Objects) error {
	if _, err := fmt.Fprintf(w, headerTemplate, objs.RunID); err != nil {
		return err
	}

	return RenderBody(w, objs)
}

func renderBody(objs *Objects) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderBody(&buf, objs); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
