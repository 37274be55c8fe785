package partition

import (
	"sort"
	"strings"
)

// Tree is a disposable view of the partition: the default profile first,
// then explicit profiles in store order, each with its visible modules.
type Tree struct {
	Nodes []Node `json:"profiles"`
}

// Node is one profile in the tree.
type Node struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Default bool     `json:"default"`
	Enabled bool     `json:"enabled"`
	Modules []string `json:"modules"`
}

// Project derives the tree for the given universe. It only reads the store
// and returns equal trees for equal inputs. Stored members missing from
// the universe are hidden, not removed.
func Project(s *Store, universe []string) *Tree {
	known := toSet(universe)
	claimed := make(map[string]struct{})
	for _, p := range s.profiles {
		for m := range p.members {
			claimed[m] = struct{}{}
		}
	}

	tree := &Tree{Nodes: make([]Node, 0, len(s.profiles)+1)}

	var defaults []string
	for m := range known {
		if _, ok := claimed[m]; !ok {
			defaults = append(defaults, m)
		}
	}
	tree.Nodes = append(tree.Nodes, newNode(s.def, defaults))

	for _, p := range s.profiles {
		var visible []string
		for m := range p.members {
			if _, ok := known[m]; ok {
				visible = append(visible, m)
			}
		}
		tree.Nodes = append(tree.Nodes, newNode(p, visible))
	}

	return tree
}

func newNode(p *Profile, modules []string) Node {
	if modules == nil {
		modules = []string{}
	}
	SortModules(modules)

	return Node{
		ID:      p.ID,
		Name:    p.Name,
		Default: p.isDefault,
		Enabled: p.Settings.Enabled,
		Modules: modules,
	}
}

// ComputedMembers returns the modules p shows in the current view.
func (s *Store) ComputedMembers(p *Profile) []string {
	for _, node := range s.View().Nodes {
		if node.ID == p.ID {
			return node.Modules
		}
	}
	return nil
}

// StaleMembers returns stored members of p that are missing from the
// current universe.
func (s *Store) StaleMembers(p *Profile) []string {
	known := toSet(s.universe.Modules())

	var stale []string
	for m := range p.members {
		if _, ok := known[m]; !ok {
			stale = append(stale, m)
		}
	}
	SortModules(stale)
	return stale
}

// SortModules sorts module names case-insensitively, falling back to a
// byte-wise comparison for names that differ only in case.
func SortModules(modules []string) {
	sort.Slice(modules, func(i, j int) bool {
		li, lj := strings.ToLower(modules[i]), strings.ToLower(modules[j])
		if li != lj {
			return li < lj
		}
		return modules[i] < modules[j]
	})
}

// Locate finds module in the tree and returns the node and position of it,
// so a selection survives a rebuild.
func (t *Tree) Locate(module string) (node, index int, ok bool) {
	for i, n := range t.Nodes {
		for j, m := range n.Modules {
			if m == module {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// Find returns the node with the given profile name, or nil.
func (t *Tree) Find(name string) *Node {
	for i := range t.Nodes {
		if t.Nodes[i].Name == name {
			return &t.Nodes[i]
		}
	}
	return nil
}

// ModuleCount returns the number of modules across all nodes.
func (t *Tree) ModuleCount() int {
	n := 0
	for _, node := range t.Nodes {
		n += len(node.Modules)
	}
	return n
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
