// Package shader describes shader patches declaratively and evaluates the
// matcap patch on the CPU with GLSL float32 semantics.
//
// A Variant never string-matches generated library source. Base programs
// expose named hooks as marker lines:
//
//	// @hook map_fragment
//
// and a Variant maps hook names to snippets. Composing against a program
// that lacks a hook fails with ErrHookNotFound instead of silently dropping
// the effect.
package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Stage identifies a programmable pipeline stage
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// InsertMode controls where a snippet lands relative to its hook
type InsertMode int

const (
	After InsertMode = iota
	Before
	Replace
)

// HookDeclarations is the hook every program exposes for uniform and varying declarations
const HookDeclarations = "declarations"

// ErrHookNotFound is returned when a variant targets a hook the program does not expose
var ErrHookNotFound = errors.New("shader hook not found")

// Injection places a snippet at a named hook of one stage
type Injection struct {
	Stage   Stage
	Hook    string
	Mode    InsertMode
	Snippet string
}

// Declaration is a named, typed uniform or varying
type Declaration struct {
	Name string
	Type string
}

// Variant is a declarative patch over a base program
type Variant struct {
	Name       string
	Uniforms   []Declaration // fragment uniforms
	Varyings   []Declaration // passed from vertex to fragment
	Injections []Injection
}

// Program is a pair of shader sources carrying hook markers
type Program struct {
	Name     string
	Vertex   string
	Fragment string
}

// Source returns the source for a stage
func (p Program) Source(stage Stage) string {
	if stage == Vertex {
		return p.Vertex
	}
	return p.Fragment
}

func (p *Program) setSource(stage Stage, src string) {
	if stage == Vertex {
		p.Vertex = src
	} else {
		p.Fragment = src
	}
}

// HookMarker returns the marker line for a hook name
func HookMarker(hook string) string {
	return "// @hook " + hook
}

// Hooks lists the hooks exposed by a stage, in source order
func (p Program) Hooks(stage Stage) []string {
	var hooks []string
	for _, line := range strings.Split(p.Source(stage), "\n") {
		trimmed := strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(trimmed, "// @hook "); ok {
			hooks = append(hooks, strings.TrimSpace(name))
		}
	}
	return hooks
}

// Compose applies the variant to base and returns the patched program.
// Declarations go to the declarations hook of the relevant stages, then
// injections are applied in order. The base program is not modified.
func Compose(base Program, v Variant) (Program, error) {
	out := base
	if v.Name != "" {
		out.Name = base.Name + "+" + v.Name
	}

	injections := make([]Injection, 0, len(v.Injections)+2)
	if decl := declare("varying", v.Varyings); decl != "" {
		injections = append(injections,
			Injection{Stage: Vertex, Hook: HookDeclarations, Mode: After, Snippet: decl},
			Injection{Stage: Fragment, Hook: HookDeclarations, Mode: After, Snippet: decl},
		)
	}
	if decl := declare("uniform", v.Uniforms); decl != "" {
		injections = append(injections,
			Injection{Stage: Fragment, Hook: HookDeclarations, Mode: After, Snippet: decl})
	}
	injections = append(injections, v.Injections...)

	for _, inj := range injections {
		src, err := inject(out.Source(inj.Stage), inj)
		if err != nil {
			return Program{}, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		out.setSource(inj.Stage, src)
	}
	return out, nil
}

func declare(qualifier string, decls []Declaration) string {
	var b strings.Builder
	for _, d := range decls {
		fmt.Fprintf(&b, "%s %s %s;\n", qualifier, d.Type, d.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func inject(src string, inj Injection) (string, error) {
	marker := HookMarker(inj.Hook)
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != marker {
			continue
		}
		snippet := strings.TrimRight(inj.Snippet, "\n")
		var replacement []string
		switch inj.Mode {
		case Before:
			replacement = []string{snippet, line}
		case Replace:
			// keep the marker so later variants can still target the hook
			lines = removeHookBody(lines, i)
			replacement = []string{line, snippet}
		default:
			replacement = []string{line, snippet}
		}
		result := make([]string, 0, len(lines)+2)
		result = append(result, lines[:i]...)
		result = append(result, replacement...)
		result = append(result, lines[i+1:]...)
		return strings.Join(result, "\n"), nil
	}
	return "", fmt.Errorf("%w: %s stage has no %q", ErrHookNotFound, inj.Stage, inj.Hook)
}

// removeHookBody drops the default body that follows a hook marker,
// delimited by the next blank line.
func removeHookBody(lines []string, marker int) []string {
	end := marker + 1
	for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
		end++
	}
	return append(lines[:marker+1], lines[end:]...)
}
