package script

import (
	"fmt"
	"sort"
	"strings"
)

// compileFunc validates arguments and returns the step to run against a scene.
type compileFunc func(args []string) (func(e *env) error, error)

type command struct {
	Name    string
	Aliases []string
	Usage   string
	MinArgs int
	MaxArgs int
	Compile compileFunc
}

type registry struct {
	primary map[string]command
	lookup  map[string]string
}

func newRegistry() *registry {
	return &registry{
		primary: make(map[string]command),
		lookup:  make(map[string]string),
	}
}

func (r *registry) register(cmd command) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("script registry: empty command name")
	}
	if cmd.Compile == nil {
		return fmt.Errorf("script registry: %q has no handler", cmd.Name)
	}
	if _, ok := r.lookup[cmd.Name]; ok {
		return fmt.Errorf("script registry: duplicate command %q", cmd.Name)
	}

	r.primary[cmd.Name] = cmd
	r.lookup[cmd.Name] = cmd.Name

	for _, alias := range cmd.Aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if _, ok := r.lookup[alias]; ok {
			return fmt.Errorf("script registry: duplicate alias %q", alias)
		}
		r.lookup[alias] = cmd.Name
	}
	return nil
}

func (r *registry) resolve(name string) (command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return command{}, false
	}
	if primary, ok := r.lookup[name]; ok {
		cmd, ok := r.primary[primary]
		return cmd, ok
	}
	return command{}, false
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.primary))
	for name := range r.primary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// compile checks arity and hands the arguments to the command.
func (r *registry) compile(args []string) (func(e *env) error, error) {
	cmd, ok := r.resolve(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	n := len(args) - 1
	if n < cmd.MinArgs || (cmd.MaxArgs >= 0 && n > cmd.MaxArgs) {
		return nil, fmt.Errorf("%w: %s", ErrUsage, cmd.Usage)
	}
	return cmd.Compile(args[1:])
}
