// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}

// render executes the embedded template at name with data.
func render(name string, data any) ([]byte, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, path.Base(name), data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
