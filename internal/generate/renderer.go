package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"qakit/internal/config"
	"qakit/internal/spec"

	"github.com/Masterminds/sprig/v3"
)

// GeneratedFile is one rendered test file: source text plus its target
// file name. It is owned by the orchestrator until written; after the
// write, ownership transfers to the filesystem.
type GeneratedFile struct {
	// Name is the output file name, derived from the spec base name
	Name string
	// Content is the full source text
	Content []byte
}

// Renderer turns a normalized suite into the source text of one
// generated Go test file. Output is a pure function of the suite and
// configuration: no timestamps, all map-derived content emitted in
// sorted key order. The same suite always renders byte-identical
// output, which is what makes fingerprint-based delta skipping safe.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the test-file template parsed.
func NewRenderer() (*Renderer, error) {
	funcs := sprig.TxtFuncMap()
	funcs["jsonLit"] = jsonLiteral
	funcs["strLit"] = strconv.Quote
	funcs["strMapLit"] = stringMapLiteral
	funcs["strSliceLit"] = stringSliceLiteral
	funcs["notNil"] = func(v interface{}) bool { return v != nil }

	tmpl, err := template.New("testfile").Funcs(funcs).Parse(testFileTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse test file template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the generated file for a normalized suite. A suite
// with zero test cases is valid and yields nil: no output file.
//
// All generated files share one package, so prefix must be unique per
// spec within a run; it namespaces both the output file name and every
// generated function identifier.
func (r *Renderer) Render(suite *spec.Suite, cfg config.Config, prefix string) (*GeneratedFile, error) {
	if len(suite.Tests) == 0 {
		return nil, nil
	}

	data := struct {
		Suite     *spec.Suite
		SSLVerify bool
		Prefix    string
	}{Suite: suite, SSLVerify: cfg.SSLVerify, Prefix: prefix}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render suite %q: %w", suite.Name, err)
	}

	return &GeneratedFile{
		Name:    prefix + "_gen_test.go",
		Content: buf.Bytes(),
	}, nil
}

// OutputIdent derives the identifier prefix for one spec file from its
// path relative to the spec root: root "specs" with "specs/v1/users.json"
// yields "v1_users". Specs in different subdirectories therefore get
// distinct prefixes even when their base names collide.
func OutputIdent(root, specPath string) string {
	rel := specPath
	if root != "" {
		if r, err := filepath.Rel(root, specPath); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return spec.SanitizeIdent(filepath.ToSlash(rel))
}

// OutputFileName derives the generated file name from the spec file's
// path relative to the spec root: specs/v1/users.json -> v1_users_gen_test.go.
func OutputFileName(root, specPath string) string {
	return OutputIdent(root, specPath) + "_gen_test.go"
}

// jsonLiteral renders a decoded JSON value as a Go expression that
// reconstructs it at test runtime. Canonical compact encoding (sorted
// object keys) keeps the output deterministic; a raw string literal is
// used unless the payload itself contains a backquote.
func jsonLiteral(v interface{}) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cannot encode value for embedding: %w", err)
	}
	s := string(encoded)
	if strings.ContainsRune(s, '`') {
		return "match.MustJSON(" + strconv.Quote(s) + ")", nil
	}
	return "match.MustJSON(`" + s + "`)", nil
}

// stringMapLiteral renders a map[string]string as a Go composite
// literal with sorted keys.
func stringMapLiteral(m map[string]string) string {
	if len(m) == 0 {
		return "nil"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("map[string]string{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k) + ": " + strconv.Quote(m[k]))
	}
	b.WriteString("}")
	return b.String()
}

// stringSliceLiteral renders a []string as a Go composite literal,
// preserving declaration order.
func stringSliceLiteral(s []string) string {
	if len(s) == 0 {
		return "nil"
	}
	var b strings.Builder
	b.WriteString("[]string{")
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteString("}")
	return b.String()
}

// testFileTemplate is the source template of one generated test file.
// Every test case becomes an independently runnable test function that
// issues the HTTP request, asserts the status code, and applies the
// partial-match assertion unless the case skips it.
const testFileTemplate = `// Code generated by qakit from {{ .Suite.SourcePath }}. DO NOT EDIT.

// Suite: {{ .Suite.Name | trim }}
package generated

import (
	"testing"

	"qakit/pkg/httpcall"
	"qakit/pkg/match"
)
{{ range .Suite.Tests }}
// Test_{{ $.Prefix }}_{{ .Ident }} exercises {{ .Method }} {{ .Path }}.{{ with .Description }}
// {{ . }}{{ end }}
func Test_{{ $.Prefix }}_{{ .Ident }}(t *testing.T) {
	resp, err := httpcall.Do(httpcall.Request{
		BaseURL:   {{ strLit $.Suite.BaseURL }},
		Method:    {{ strLit .Method }},
		Path:      {{ strLit .Path }},
		Body:      {{ jsonLit .Body }},
		Params:    {{ strMapLit .Params }},
		Headers:   {{ strMapLit $.Suite.Headers }},
		SSLVerify: {{ $.SSLVerify }},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	match.AssertStatus(t, {{ .Expected.StatusCode }}, resp.StatusCode)
{{- if and (not .EffectiveIgnoreAssert) (notNil .Expected.JSON) }}

	body, err := resp.JSON()
	if err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	match.AssertPartial(t, {{ jsonLit .Expected.JSON }}, body, match.Options{
		IgnorePaths: {{ strSliceLit .IgnoreJSON }},
		Wildcard:    {{ .EffectiveUseWildcard }},
	})
{{- end }}
}
{{ end -}}
`
