// Package xmltree is the generic project-tree representation spec.md §3
// describes: element/attribute/char-data nodes produced by the binary
// codec's decoder, mutated minimally by repair, and re-encoded by the same
// codec. It is grounded on
// _examples/original_source/src/ProjectModel.h's ProjectTreeNode and the
// BinaryXMLConverter.cpp helpers that build and walk it.
package xmltree

// Node is one element in the generic project tree.
type Node struct {
	Tag      string
	Attrs    []Attribute
	Children []*Node
	Data     string

	Parent      *Node
	ParentIndex int
}

// SetAttribute updates an existing attribute in place (preserving its
// position) or appends a new one, matching
// ProjectTreeNode::setAttribute's semantics used by convertToSilence.
func (n *Node) SetAttribute(name string, value AttrValue) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
}

// Attribute looks up an attribute by name, reporting whether it exists.
func (n *Node) Attribute(name string) (AttrValue, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return AttrValue{}, false
}

// NameCache is the reusable, append-only, dedup-by-equality cache backing
// element tag names and attribute names (spec.md §3: "Name strings and
// attribute names live in a reusable name cache"). Declaration order is
// preserved and doubles as the wire name-id assignment on encode.
type NameCache struct {
	names []string
	index map[string]int
}

// NewNameCache returns an empty cache.
func NewNameCache() *NameCache {
	return &NameCache{index: make(map[string]int)}
}

// Intern returns the stable index for name, adding it to the cache in
// declaration order if it is not already present.
func (c *NameCache) Intern(name string) int {
	if idx, ok := c.index[name]; ok {
		return idx
	}
	idx := len(c.names)
	c.names = append(c.names, name)
	c.index[name] = idx
	return idx
}

// Lookup returns the name at cache index id (its interning order, which is
// the name-id Encode writes), reporting whether the id is known.
func (c *NameCache) Lookup(id int) (string, bool) {
	if id < 0 || id >= len(c.names) {
		return "", false
	}
	return c.names[id], true
}

// IndexOf returns the name-id for a name already present in the cache.
func (c *NameCache) IndexOf(name string) (int, bool) {
	idx, ok := c.index[name]
	return idx, ok
}

// Contains reports whether name has already been interned.
func (c *NameCache) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Names returns the cache contents in declaration order. Callers must not
// mutate the returned slice.
func (c *NameCache) Names() []string {
	return c.names
}

// Len reports how many names have been interned.
func (c *NameCache) Len() int {
	return len(c.names)
}

// StringCache is the per-parse cache that owns attribute string values
// (spec.md §3: "other strings live in a separate per-parse string cache").
// Unlike NameCache it never deduplicates; Go's immutable strings make the
// stable-address contract moot, so this exists purely to mirror the
// model's ownership boundary for anything that inspects parse provenance.
type StringCache struct {
	values []string
}

// NewStringCache returns an empty cache.
func NewStringCache() *StringCache {
	return &StringCache{}
}

// Add records and returns the string unchanged.
func (c *StringCache) Add(s string) string {
	c.values = append(c.values, s)
	return s
}

// Len reports how many strings have been recorded.
func (c *StringCache) Len() int {
	return len(c.values)
}
