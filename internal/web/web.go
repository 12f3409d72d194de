// Package web serves the static editor shell. The dynamic editing UI is
// client-side; the server only injects the configured asset base and the
// mission level choices so the page needs no extra round trips.
package web

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/fankit/teamstudio/internal/document"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	AssetBase     string
	MissionLevels []string
}

// RenderIndex writes the editor shell page.
func RenderIndex(w io.Writer, assetBase string) error {
	return indexTemplate.Execute(w, indexData{
		AssetBase:     assetBase,
		MissionLevels: document.MissionLevels,
	})
}
