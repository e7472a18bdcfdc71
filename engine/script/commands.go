package script

import (
	"fmt"
	"strconv"
	"strings"

	"ief/engine/geom"
	"ief/engine/palette"
	"ief/engine/scene"
)

func mustRegistry() *registry {
	r := newRegistry()
	for _, cmd := range []command{
		{Name: "scene", Aliases: []string{"dimension"}, Usage: "scene <2d|3d>", MinArgs: 1, MaxArgs: 1, Compile: compileScene},
		{Name: "create", Aliases: []string{"new"}, Usage: "create <2d|3d> <kind> <id>", MinArgs: 3, MaxArgs: 3, Compile: compileCreate},
		{Name: "position", Aliases: []string{"pos", "move"}, Usage: "position <id> <x> <y> [z]", MinArgs: 3, MaxArgs: 4, Compile: compilePosition},
		{Name: "rotate", Aliases: []string{"rot"}, Usage: "rotate <id> <deg> | rotate <id> <x> <y> <z>", MinArgs: 2, MaxArgs: 4, Compile: compileRotate},
		{Name: "scale", Usage: "scale <id> <f1> [f2]", MinArgs: 2, MaxArgs: 3, Compile: compileScale},
		{Name: "fill", Usage: "fill <id> [on|off]", MinArgs: 1, MaxArgs: 2, Compile: compileFill},
		{Name: "color", Aliases: []string{"colour"}, Usage: "color <id> <name>", MinArgs: 2, MaxArgs: 2, Compile: compileColor},
		{Name: "camera", Aliases: []string{"cam"}, Usage: "camera position|angle <x> <y> <z> | camera distance <d> | camera new|use <2d|3d> <id>", MinArgs: 2, MaxArgs: 4, Compile: compileCamera},
		{Name: "spin", Usage: "spin <id> <deg> | spin <id> <x> <y> <z>", MinArgs: 2, MaxArgs: 4, Compile: compileSpin},
		{Name: "drift", Usage: "drift <id> <dx> <dy> [dz]", MinArgs: 3, MaxArgs: 4, Compile: compileDrift},
	} {
		if err := r.register(cmd); err != nil {
			panic(err)
		}
	}
	return r
}

func floats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadNumber, a)
		}
		out[i] = v
	}
	return out, nil
}

// dimFor maps a coordinate count onto the dimension it implies.
func dimFor(n int) scene.Dimension {
	if n >= 3 {
		return scene.Dim3D
	}
	return scene.Dim2D
}

func compileScene(args []string) (func(e *env) error, error) {
	d, err := scene.ParseDimension(args[0])
	if err != nil {
		return nil, err
	}
	return func(e *env) error {
		e.s.SetActive(d)
		return nil
	}, nil
}

func compileCreate(args []string) (func(e *env) error, error) {
	d, err := scene.ParseDimension(args[0])
	if err != nil {
		return nil, err
	}
	k, err := scene.ParseKind(args[1])
	if err != nil {
		return nil, err
	}
	id := args[2]
	if _, err := parseRef(id); err != nil || strings.Contains(id, ":") {
		return nil, fmt.Errorf("%w: %q", ErrBadReference, id)
	}
	return func(e *env) error {
		_, err := e.s.Create(d, k, id)
		return err
	}, nil
}

func compilePosition(args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	v, err := floats(args[1:])
	if err != nil {
		return nil, err
	}
	r = r.in(dimFor(len(v)))
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		if len(v) == 2 {
			return e.s.SetPosition2D(h, v[0], v[1])
		}
		return e.s.SetPosition3D(h, v[0], v[1], v[2])
	}, nil
}

func compileRotate(args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	v, err := floats(args[1:])
	if err != nil {
		return nil, err
	}
	if len(v) == 2 {
		return nil, fmt.Errorf("%w: rotate takes one or three angles", ErrUsage)
	}
	r = r.in(dimFor(len(v)))
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		if len(v) == 1 {
			return e.s.SetRotation2D(h, v[0])
		}
		return e.s.SetRotation3D(h, v[0], v[1], v[2])
	}, nil
}

func compileScale(args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	v, err := floats(args[1:])
	if err != nil {
		return nil, err
	}
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		return e.s.SetScale(h, v...)
	}, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func compileFill(args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	on := true
	if len(args) > 1 {
		if on, err = parseSwitch(args[1]); err != nil {
			return nil, fmt.Errorf("%w: fill takes on or off", ErrUsage)
		}
	}
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		return e.s.SetFilled(h, on)
	}, nil
}

// compileColor accepts any name; unknown names fall back to white.
func compileColor(args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	c := palette.Foreground(args[1])
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		return e.s.SetColor(h, c)
	}, nil
}

func compileCamera(args []string) (func(e *env) error, error) {
	sub, rest := strings.ToLower(args[0]), args[1:]
	switch sub {
	case "position", "pos", "angle":
		if len(rest) != 3 {
			return nil, fmt.Errorf("%w: camera %s <x> <y> <z>", ErrUsage, sub)
		}
		v, err := floats(rest)
		if err != nil {
			return nil, err
		}
		return func(e *env) error {
			c := e.s.Camera3D()
			if sub == "angle" {
				c.AngleX, c.AngleY, c.AngleZ = v[0], v[1], v[2]
			} else {
				c.Position = geom.V3(v[0], v[1], v[2])
			}
			e.s.SetCamera3D(c)
			return nil
		}, nil
	case "distance":
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: camera distance <d>", ErrUsage)
		}
		v, err := floats(rest)
		if err != nil {
			return nil, err
		}
		return func(e *env) error {
			c := e.s.Camera3D()
			c.Distance = v[0]
			e.s.SetCamera3D(c)
			return nil
		}, nil
	case "new", "use":
		if len(rest) != 2 {
			return nil, fmt.Errorf("%w: camera %s <2d|3d> <id>", ErrUsage, sub)
		}
		d, err := scene.ParseDimension(rest[0])
		if err != nil {
			return nil, err
		}
		id := rest[1]
		return func(e *env) error {
			if sub == "new" {
				return e.s.NewCamera(d, id)
			}
			return e.s.UseCamera(d, id)
		}, nil
	}
	return nil, fmt.Errorf("%w: camera %q", ErrUnknownCommand, sub)
}

func compileSpin(args []string) (func(e *env) error, error) {
	return compileAnimation(animSpin, args)
}

func compileDrift(args []string) (func(e *env) error, error) {
	return compileAnimation(animDrift, args)
}

func compileAnimation(kind animKind, args []string) (func(e *env) error, error) {
	r, err := parseRef(args[0])
	if err != nil {
		return nil, err
	}
	v, err := floats(args[1:])
	if err != nil {
		return nil, err
	}
	switch {
	case kind == animSpin && len(v) == 2:
		return nil, fmt.Errorf("%w: spin takes one or three rates", ErrUsage)
	case kind == animSpin && len(v) == 1:
		r = r.in(scene.Dim2D)
	default:
		r = r.in(dimFor(len(v)))
	}
	var by [3]float64
	copy(by[:], v)
	return func(e *env) error {
		h, err := e.handle(r)
		if err != nil {
			return err
		}
		o, err := e.s.Object(h)
		if err != nil {
			return err
		}
		if kind == animSpin && h.Dimension() == scene.Dim3D && o.Kind() != scene.KindCube {
			return fmt.Errorf("spin %q: %w: %s", r.id, scene.ErrKindMismatch, o.Kind())
		}
		e.anims = append(e.anims, animation{kind: kind, h: h, by: by})
		return nil
	}, nil
}
