package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Command is a console subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse with the remaining
// positional arguments.
type Command struct {
	Name    string
	Help    string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds console commands by name. Add commands with Register; run a
// console line with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. fs may be nil for commands without flags.
func (r *Registry) Register(name, help string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	r.cmds[name] = &Command{Name: name, Help: help, FlagSet: fs, Run: run}
}

// Names returns registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Help returns a one-line usage summary for a command, or "" if unknown.
func (r *Registry) Help(name string) string {
	if cmd, ok := r.cmds[name]; ok {
		return cmd.Help
	}
	return ""
}

// Parse tokenizes a console line into fields. Empty lines return ok false.
func Parse(line string) (args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// Execute runs the command in args[0] with args[1:] as flag/positional
// arguments. Returns an error for unknown command, parse error, or from Run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run(cmd.FlagSet.Args())
}
