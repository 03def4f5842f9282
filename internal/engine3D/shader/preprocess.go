// Package shader holds the GLSL programs of the scene as plain text. Nothing
// here touches a GL context: tunable constants are injected as #defines by
// Preprocess and the device compiles the result.
package shader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const Version = "#version 330"

// Source is one vertex+fragment pair ready for compilation.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Defines maps a macro name to its GLSL literal.
type Defines map[string]string

// FloatLiteral formats v so GLSL always reads it as a float.
func FloatLiteral(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func (d Defines) Float(name string, v float32) Defines {
	d[name] = FloatLiteral(v)
	return d
}

func (d Defines) Vec3(name string, v [3]float32) Defines {
	d[name] = fmt.Sprintf("vec3(%s, %s, %s)", FloatLiteral(v[0]), FloatLiteral(v[1]), FloatLiteral(v[2]))
	return d
}

// Merge copies every entry of others into a new map; later maps win.
func Merge(others ...Defines) Defines {
	out := Defines{}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Preprocess prepends the version line, the sorted define block and the
// shared helper macros to body. Sorting keeps the output byte-identical for
// identical inputs.
func Preprocess(body string, defs Defines) string {
	var sb strings.Builder
	sb.WriteString(Version)
	sb.WriteString("\n")

	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("#define %s %s\n", k, defs[k]))
	}

	sb.WriteString("#define saturate(x) clamp(x, 0.0, 1.0)\n")
	sb.WriteString(strings.TrimLeft(body, "\n"))
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}

func build(name, vertex, fragment string, defs Defines) Source {
	return Source{
		Name:     name,
		Vertex:   Preprocess(vertex, defs),
		Fragment: Preprocess(fragment, defs),
	}
}
