// Package script is the scene-management layer above the engine: it turns
// line-oriented command scripts or YAML scene files into scene mutations and
// a per-tick animation hook.
//
// A line script holds one command per line. Words are split like a POSIX
// shell, so quoting works and '#' starts a comment:
//
//	scene 3d
//	create 3d cube c1
//	color c1 bright_green
//	spin c1 1 1 0
//
// Objects are named by id. A bare id resolves in the dimension implied by the
// argument count where there is one (two coordinates mean 2D, three mean 3D),
// otherwise in the active scene dimension first. "2d:id" and "3d:id" pin the
// dimension explicitly.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"ief/engine/driver"
	"ief/engine/scene"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrBadNumber      = errors.New("not a number")
	ErrBadReference   = errors.New("bad object reference")
)

// ParseError locates a malformed script line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type step struct {
	line int
	run  func(e *env) error
}

// Program is a compiled script.
type Program struct {
	steps []step
}

// Len returns the number of compiled commands.
func (p *Program) Len() int { return len(p.steps) }

var commands = mustRegistry()

// Commands lists the accepted command names.
func Commands() []string { return commands.names() }

// Parse compiles a line script. It stops at the first malformed line.
func Parse(r io.Reader) (*Program, error) {
	p := &Program{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := p.addLine(line, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return p, nil
}

// ParseString is Parse over a string.
func ParseString(src string) (*Program, error) {
	return Parse(strings.NewReader(src))
}

// Load reads a script from disk. Files ending in .yaml or .yml are scene
// files; everything else is a line script.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return Parse(f)
	}
}

func (p *Program) addLine(line int, text string) error {
	args, err := shlex.Split(text)
	if err != nil {
		return &ParseError{Line: line, Err: err}
	}
	if len(args) == 0 {
		return nil
	}
	return p.add(line, args)
}

func (p *Program) add(line int, args []string) error {
	run, err := commands.compile(args)
	if err != nil {
		return &ParseError{Line: line, Err: err}
	}
	p.steps = append(p.steps, step{line: line, run: run})
	return nil
}

// Apply runs every command against s in order. A failing command does not stop
// the rest; the failures are joined into the returned error. The hook drives
// the animations the script declared and is nil when there are none.
func (p *Program) Apply(s *scene.Scene) (driver.Hook, error) {
	e := &env{s: s}
	var errs []error
	for _, st := range p.steps {
		if err := st.run(e); err != nil {
			errs = append(errs, fmt.Errorf("script: line %d: %w", st.line, err))
		}
	}
	var hook driver.Hook
	if len(e.anims) > 0 {
		anims := e.anims
		hook = func(_ driver.Frame, s *scene.Scene) {
			for i := range anims {
				anims[i].step(s)
			}
		}
	}
	return hook, errors.Join(errs...)
}

// env is the state commands run against.
type env struct {
	s     *scene.Scene
	anims []animation
}

// ref names an object, optionally pinned to a dimension.
type ref struct {
	dim scene.Dimension
	id  string
}

func parseRef(s string) (ref, error) {
	if s == "" {
		return ref{}, fmt.Errorf("%w: empty id", ErrBadReference)
	}
	if prefix, id, ok := strings.Cut(s, ":"); ok {
		d, err := scene.ParseDimension(prefix)
		if err != nil || id == "" {
			return ref{}, fmt.Errorf("%w: %q", ErrBadReference, s)
		}
		return ref{dim: d, id: id}, nil
	}
	return ref{id: s}, nil
}

// in pins an unpinned reference to d.
func (r ref) in(d scene.Dimension) ref {
	if r.dim == 0 {
		r.dim = d
	}
	return r
}

func (e *env) handle(r ref) (scene.Handle, error) {
	if r.dim != 0 {
		return e.s.Find(r.dim, r.id)
	}
	first, second := scene.Dim3D, scene.Dim2D
	if e.s.Active() == scene.Dim2D {
		first, second = second, first
	}
	for _, d := range [...]scene.Dimension{first, second} {
		if h, ok := e.s.Lookup(d, r.id); ok {
			return h, nil
		}
	}
	return e.s.Find(first, r.id)
}
