package xmltree

// Builder consumes decoder events and builds a generic Node tree, mirroring
// AudacityProject::HandleTagStart/HandleTagEnd/HandleCharData in
// _examples/original_source/src/ProjectModel.cpp (the generic-tree half of
// that method; the semantic-overlay half lives in package model, which
// wraps a Builder and inspects Current() after each StartElement).
//
// Builder's methods satisfy binaryxml.Sink structurally without importing
// that package, avoiding an import cycle between the wire codec and the
// tree it builds.
type Builder struct {
	Names   *NameCache
	Strings *StringCache
	Root    *Node

	stack []*Node
}

// NewBuilder returns a Builder that interns tag/attribute names into names
// and routes attribute string values through strings.
func NewBuilder(names *NameCache, strings *StringCache) *Builder {
	return &Builder{Names: names, Strings: strings}
}

// Current returns the innermost open element, or nil before the first
// StartElement or after the tree is fully closed.
func (b *Builder) Current() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// StartElement implements the decoder's Sink contract.
func (b *Builder) StartElement(name string, attrs []Attribute) {
	b.Names.Intern(name)

	node := &Node{Tag: name}

	if len(b.stack) == 0 {
		b.Root = node
		node.ParentIndex = 0
	} else {
		parent := b.stack[len(b.stack)-1]
		node.Parent = parent
		node.ParentIndex = len(parent.Children)
		parent.Children = append(parent.Children, node)
	}

	for _, a := range attrs {
		b.Names.Intern(a.Name)
		if a.Value.Kind() == KindString {
			b.Strings.Add(a.Value.StringValue())
		}
	}
	node.Attrs = append(node.Attrs, attrs...)

	b.stack = append(b.stack, node)
}

// EndElement implements the decoder's Sink contract. The closing name is
// accepted but ignored for tree purposes: spec.md §4.2 only lets a
// mismatched EndTag affect the XML pretty-printer's self-closing decision.
func (b *Builder) EndElement(string) {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// CharData implements the decoder's Sink contract.
func (b *Builder) CharData(text string) {
	if cur := b.Current(); cur != nil {
		cur.Data = text
	}
}
