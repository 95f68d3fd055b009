package preview

import (
	"bytes"
	"fmt"
	"text/template"
)

var panel = template.Must(template.New("panel").Parse(
	`{{range .Fields}}{{printf "%-14s" (print .Label ":")}} {{.Value}}
{{end}}
Samples:
{{range .Samples}}  [{{.Label}}]{{if .Legacy}} (legacy){{end}}
    input:  {{.Input}}
    output: {{.Output}}
{{end}}`))

// Text renders the view as a plain-text panel.
func (v View) Text() string {
	var buf bytes.Buffer
	if err := panel.Execute(&buf, v); err != nil {
		return fmt.Sprintf("preview unavailable: %v", err)
	}
	return buf.String()
}
