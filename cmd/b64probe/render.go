package main

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"text/template"
)

var manifest = template.Must(template.New("manifest").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, " ") },
}).Parse(`// Code generated by b64probe; DO NOT EDIT.

//go:build {{.GOARCH}} && !purego

package {{.Package}}

// Toolchain probe for {{.GOOS}}/{{.GOARCH}}:
{{- range .Results}}
//	{{.Variant}}: {{if .Supported}}ok{{if .ExtraFlags}} with {{join .ExtraFlags}}{{end}}{{else}}unsupported{{end}}
{{- end}}

const compiledMask Mask = {{range $i, $r := .Compiled}}{{if $i}} | {{end}}1<<{{$r.Variant}}{{end}}

// compiledFlags records the toolchain settings the probe needed per variant.
var compiledFlags = map[Variant]buildFlags{
{{- range .Compiled}}
	{{.Variant}}: { {{- if .ExtraFlags}}ExtraFlags: {{printf "%#v" .ExtraFlags}}, Defines: {{printf "%#v" .Defines}}{{end -}} },
{{- end}}
}
`))

type manifestData struct {
	Package  string
	GOOS     string
	GOARCH   string
	Results  []Result
	Compiled []Result
}

// render returns the gofmt'ed manifest. Only variants the toolchain accepts
// and the package ships a kernel for are compiled in; Generic always is.
func render(pkg, goos, goarch string, results []Result, kernels []string) ([]byte, error) {
	data := manifestData{
		Package: pkg,
		GOOS:    goos,
		GOARCH:  goarch,
		Results: results,
	}
	for _, r := range results {
		if r.Variant == "Generic" || (r.Supported && slices.Contains(kernels, r.Variant)) {
			data.Compiled = append(data.Compiled, r)
		}
	}

	var buf bytes.Buffer
	if err := manifest.Execute(&buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format manifest: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}
