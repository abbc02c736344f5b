package complete

import (
	"slices"

	"hilite/internal/langdef"
)

// Index is the immutable completion index of one definition.
type Index struct {
	caseSensitive bool
	scopes        map[string]*scope
	order         []string
}

type scope struct {
	name    string
	entries []langdef.Entry
	root    *node
}

// node of the trie; ids lists, in declaration order, every entry whose
// trigger passes through this node.
type node struct {
	next map[rune]*node
	ids  []int
}

// Build indexes the completion groups of def. It has no side effects and
// building twice yields Equal indexes.
func Build(def *langdef.Definition) *Index {
	comp := def.Completion()
	idx := &Index{
		caseSensitive: comp.CaseSensitive,
		scopes:        make(map[string]*scope, len(comp.Groups)),
	}
	for _, g := range comp.Groups {
		if len(g.Entries) == 0 {
			continue
		}
		key := idx.key(g.Scope)
		sc := &scope{name: g.Scope, entries: g.Entries, root: &node{}}
		for id, e := range g.Entries {
			sc.insert(idx.key(e.Trigger), id)
		}
		idx.scopes[key] = sc
		idx.order = append(idx.order, key)
	}
	return idx
}

func (sc *scope) insert(trigger string, id int) {
	n := sc.root
	n.ids = append(n.ids, id)
	for _, r := range trigger {
		child := n.next[r]
		if child == nil {
			if n.next == nil {
				n.next = make(map[rune]*node)
			}
			child = &node{}
			n.next[r] = child
		}
		child.ids = append(child.ids, id)
		n = child
	}
}

func (idx *Index) key(s string) string {
	if idx.caseSensitive {
		return s
	}
	return langdef.Fold(s)
}

// HasScope reports whether entries are registered under the scope key.
// Groups without entries do not register their scope.
func (idx *Index) HasScope(name string) bool {
	_, ok := idx.scopes[idx.key(name)]
	return ok
}

// Scopes returns the scope names in declaration order.
func (idx *Index) Scopes() []string {
	out := make([]string, 0, len(idx.order))
	for _, k := range idx.order {
		out = append(out, idx.scopes[k].name)
	}
	return out
}

// Lookup returns the entries of a scope whose trigger starts with prefix.
// ok is false when the scope is not registered.
func (idx *Index) Lookup(scopeName, prefix string) (entries []langdef.Entry, ok bool) {
	sc, ok := idx.scopes[idx.key(scopeName)]
	if !ok {
		return nil, false
	}
	n := sc.root
	for _, r := range idx.key(prefix) {
		n = n.next[r]
		if n == nil {
			return nil, true
		}
	}
	out := make([]langdef.Entry, 0, len(n.ids))
	for _, id := range n.ids {
		out = append(out, sc.entries[id])
	}
	return out, true
}

// Len returns the number of indexed entries across all scopes.
func (idx *Index) Len() int {
	total := 0
	for _, sc := range idx.scopes {
		total += len(sc.entries)
	}
	return total
}

// Equal reports whether two indexes answer every lookup identically.
func (idx *Index) Equal(other *Index) bool {
	if idx == nil || other == nil {
		return idx == other
	}
	if idx.caseSensitive != other.caseSensitive || !slices.Equal(idx.order, other.order) {
		return false
	}
	for key, sc := range idx.scopes {
		osc, ok := other.scopes[key]
		if !ok || sc.name != osc.name || !slices.Equal(sc.entries, osc.entries) {
			return false
		}
		if !sc.root.equal(osc.root) {
			return false
		}
	}
	return true
}

func (n *node) equal(o *node) bool {
	if !slices.Equal(n.ids, o.ids) || len(n.next) != len(o.next) {
		return false
	}
	for r, child := range n.next {
		oc, ok := o.next[r]
		if !ok || !child.equal(oc) {
			return false
		}
	}
	return true
}
