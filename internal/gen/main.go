// Command gen writes the arity-specific view helpers of package ecs
// (ViewOfN, TupleN and EachN).
package main

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/tools/imports"
)

var letters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

type param struct {
	Type  string // type parameter name
	Field string // tuple field name
	Id    string // component id variable
	Pool  string // pool variable
}

type arity struct {
	N      int
	Params []param
}

func (a arity) TypeList() string {
	names := make([]string, len(a.Params))
	for i, p := range a.Params {
		names[i] = p.Type
	}
	return strings.Join(names, ", ")
}

const source = `// Code generated by internal/gen; DO NOT EDIT.

package ecs

import "iter"
{{range .}}{{if gt .N 1}}
// ViewOf{{.N}} creates a view over entities that have {{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Type}}{{end}}.
func ViewOf{{.N}}[{{.TypeList}} any](s *Scene) *SceneView {
	return NewSceneView(s{{range .Params}}, ComponentIdOf[{{.Type}}](s){{end}})
}
{{end}}
// Tuple{{.N}} holds the component pointers yielded by Each{{.N}}.
type Tuple{{.N}}[{{.TypeList}} any] struct {
{{range .Params}}	{{.Field}} *{{.Type}}
{{end}}}

// Each{{.N}} yields every entity that has {{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Type}}{{end}} along with pointers to the components.
func Each{{.N}}[{{.TypeList}} any](s *Scene) iter.Seq2[EntityId, Tuple{{.N}}[{{.TypeList}}]] {
{{range .Params}}	{{.Id}} := ComponentIdOf[{{.Type}}](s)
{{end}}	view := NewSceneView(s{{range .Params}}, {{.Id}}{{end}})
	return func(yield func(EntityId, Tuple{{.N}}[{{.TypeList}}]) bool) {
{{range .Params}}		{{.Pool}} := poolFor[{{.Type}}](s, {{.Id}})
{{end}}		for id := range view.Iter() {
			row := int(id.Index())
			item := Tuple{{.N}}[{{.TypeList}}]{
{{range .Params}}				{{.Field}}: {{.Pool}}.at(row),
{{end}}			}
			if !yield(id, item) {
				return
			}
		}
	}
}
{{end}}`

func main() {
	out := flag.String("out", "view_generated.go", "output file")
	maxArity := flag.Int("arity", 4, "highest arity to generate")
	flag.Parse()

	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *maxArity < 1 || *maxArity > len(letters) {
		logger.Fatal().Int("arity", *maxArity).Msg("arity out of range")
	}

	arities := make([]arity, 0, *maxArity)
	for n := 1; n <= *maxArity; n++ {
		a := arity{N: n}
		for i := 0; i < n; i++ {
			lower := strings.ToLower(letters[i])
			a.Params = append(a.Params, param{
				Type:  letters[i],
				Field: "C" + string(rune('1'+i)),
				Id:    "id" + lower,
				Pool:  "p" + lower,
			})
		}
		arities = append(arities, a)
	}

	tmpl := template.Must(template.New("views").Parse(source))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, arities); err != nil {
		logger.Fatal().Err(err).Msg("failed to render template")
	}

	formatted, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to format generated code")
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		logger.Fatal().Err(err).Str("file", *out).Msg("failed to write generated code")
	}
	logger.Info().Str("file", *out).Int("arity", *maxArity).Msg("generated view helpers")
}
