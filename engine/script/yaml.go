package script

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"ief/engine/scene"
)

// sceneFile is the YAML form of a script:
//
//	scene: 3d
//	camera:
//	  position: [0, 0, 0]
//	  distance: 750
//	objects:
//	  - id: c1
//	    kind: cube
//	    position: [0, 0, 40]
//	    color: bright_green
//	animate:
//	  - spin: c1
//	    by: [1, 1, 0]
type sceneFile struct {
	Scene   string       `yaml:"scene"`
	Camera  *cameraSpec  `yaml:"camera"`
	Objects []objectSpec `yaml:"objects"`
	Animate []animSpec   `yaml:"animate"`
}

type cameraSpec struct {
	Position []float64 `yaml:"position"`
	Angle    []float64 `yaml:"angle"`
	Distance *float64  `yaml:"distance"`
	line     int
}

type objectSpec struct {
	ID        string    `yaml:"id"`
	Kind      string    `yaml:"kind"`
	Dimension string    `yaml:"dimension"`
	Position  []float64 `yaml:"position"`
	Rotation  []float64 `yaml:"rotation"`
	Scale     []float64 `yaml:"scale"`
	Color     string    `yaml:"color"`
	Fill      *bool     `yaml:"fill"`
	line      int
}

type animSpec struct {
	Spin  string    `yaml:"spin"`
	Drift string    `yaml:"drift"`
	By    []float64 `yaml:"by"`
	line  int
}

func (c *cameraSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain cameraSpec
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line = n.Line
	return nil
}

func (o *objectSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain objectSpec
	if err := n.Decode((*plain)(o)); err != nil {
		return err
	}
	o.line = n.Line
	return nil
}

func (a *animSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain animSpec
	if err := n.Decode((*plain)(a)); err != nil {
		return err
	}
	a.line = n.Line
	return nil
}

// ParseYAML compiles a YAML scene file into the same commands a line script
// would produce. Unknown top-level keys are rejected.
func ParseYAML(r io.Reader) (*Program, error) {
	var f sceneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &Program{}, nil
		}
		return nil, fmt.Errorf("script: yaml: %w", err)
	}

	p := &Program{}
	for i := range f.Objects {
		if err := p.addObject(&f.Objects[i]); err != nil {
			return nil, err
		}
	}
	if c := f.Camera; c != nil {
		if err := p.addCamera(c); err != nil {
			return nil, err
		}
	}
	if f.Scene != "" {
		if err := p.add(1, []string{"scene", f.Scene}); err != nil {
			return nil, err
		}
	}
	for _, a := range f.Animate {
		if err := p.addAnimation(a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Program) addObject(o *objectSpec) error {
	k, err := scene.ParseKind(o.Kind)
	if err != nil {
		return &ParseError{Line: o.line, Err: err}
	}
	dim := o.Dimension
	if dim == "" {
		dim = k.Dimension().String()
	}
	if err := p.add(o.line, []string{"create", dim, o.Kind, o.ID}); err != nil {
		return err
	}
	id := dim + ":" + o.ID

	if len(o.Position) > 0 {
		if err := p.add(o.line, append([]string{"position", id}, formatFloats(o.Position)...)); err != nil {
			return err
		}
	}
	if len(o.Rotation) > 0 {
		if err := p.add(o.line, append([]string{"rotate", id}, formatFloats(o.Rotation)...)); err != nil {
			return err
		}
	}
	if len(o.Scale) > 0 {
		if err := p.add(o.line, append([]string{"scale", id}, formatFloats(o.Scale)...)); err != nil {
			return err
		}
	}
	if o.Color != "" {
		if err := p.add(o.line, []string{"color", id, o.Color}); err != nil {
			return err
		}
	}
	if o.Fill != nil {
		if err := p.add(o.line, []string{"fill", id, strconv.FormatBool(*o.Fill)}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) addCamera(c *cameraSpec) error {
	if len(c.Position) > 0 {
		if err := p.add(c.line, append([]string{"camera", "position"}, formatFloats(c.Position)...)); err != nil {
			return err
		}
	}
	if len(c.Angle) > 0 {
		if err := p.add(c.line, append([]string{"camera", "angle"}, formatFloats(c.Angle)...)); err != nil {
			return err
		}
	}
	if c.Distance != nil {
		return p.add(c.line, []string{"camera", "distance", formatFloat(*c.Distance)})
	}
	return nil
}

func (p *Program) addAnimation(a animSpec) error {
	switch {
	case a.Spin != "" && a.Drift == "":
		return p.add(a.line, append([]string{"spin", a.Spin}, formatFloats(a.By)...))
	case a.Drift != "" && a.Spin == "":
		return p.add(a.line, append([]string{"drift", a.Drift}, formatFloats(a.By)...))
	}
	return &ParseError{Line: a.line, Err: fmt.Errorf("%w: animation needs exactly one of spin or drift", ErrUsage)}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatFloats(vs []float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = formatFloat(v)
	}
	return out
}
