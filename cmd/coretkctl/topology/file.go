package topology

import (
	"os"

	"github.com/coreemu/coretk/api"
	topo "github.com/coreemu/coretk/topology"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is a topology described in YAML.
//
//	nodes:
//	  - {name: r1, kind: router, x: 100, y: 100}
//	  - {name: s1, kind: switch, x: 300, y: 100}
//	links:
//	  - {a: r1, b: s1}
//	hooks:
//	  - {file: start.sh, state: runtime, data: "echo started"}
type File struct {
	Nodes []FileNode `yaml:"nodes"`
	Links []FileLink `yaml:"links"`
	Hooks []FileHook `yaml:"hooks"`
}

// FileNode is a node to place.
type FileNode struct {
	Name  string  `yaml:"name"`
	Kind  string  `yaml:"kind"`
	Model string  `yaml:"model"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// FileLink links two nodes by name.
type FileLink struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// FileHook is a hook script run when the session enters State.
type FileHook struct {
	File  string `yaml:"file"`
	State string `yaml:"state"`
	Data  string `yaml:"data"`
}

// LoadFile reads and validates the topology file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	if err := f.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &f, nil
}

// Validate checks that node names are unique, kinds are known and links
// join two distinct declared nodes.
func (f *File) Validate() error {
	names := make(map[string]struct{}, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.Name == "" {
			return errors.Errorf("node %d has no name", i)
		}
		if _, ok := names[n.Name]; ok {
			return errors.Errorf("duplicate node %q", n.Name)
		}
		if _, err := topo.ParseKind(n.Kind, n.Model); err != nil {
			return errors.Wrapf(err, "node %q", n.Name)
		}
		names[n.Name] = struct{}{}
	}
	for _, l := range f.Links {
		for _, name := range []string{l.A, l.B} {
			if _, ok := names[name]; !ok {
				return errors.Errorf("link %s-%s: unknown node %q", l.A, l.B, name)
			}
		}
		if l.A == l.B {
			return errors.Errorf("link %s-%s: a node can't be linked to itself", l.A, l.B)
		}
	}
	for _, h := range f.Hooks {
		if h.File == "" {
			return errors.New("hook has no file name")
		}
		if _, err := api.ParseSessionState(h.State); err != nil {
			return errors.Wrapf(err, "hook %q", h.File)
		}
	}
	return nil
}

// APIHooks returns the hooks of the file. It assumes the file is valid.
func (f *File) APIHooks() []*api.Hook {
	hooks := make([]*api.Hook, 0, len(f.Hooks))
	for _, h := range f.Hooks {
		state, _ := api.ParseSessionState(h.State)
		hooks = append(hooks, &api.Hook{File: h.File, State: state, Data: h.Data})
	}
	return hooks
}
