package xmltree

import "testing"

func TestNameCacheInternIsStableAndDeduped(t *testing.T) {
	c := NewNameCache()
	a := c.Intern("project")
	b := c.Intern("wavetrack")
	c2 := c.Intern("project")

	if a != c2 {
		t.Fatalf("expected stable index for repeated name, got %d and %d", a, c2)
	}
	if b == a {
		t.Fatal("expected distinct names to get distinct indices")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	name, ok := c.Lookup(a)
	if !ok || name != "project" {
		t.Fatalf("Lookup(%d) = %q, %v", a, name, ok)
	}
}

func TestBuilderBuildsNestedTree(t *testing.T) {
	names := NewNameCache()
	strs := NewStringCache()
	b := NewBuilder(names, strs)

	b.StartElement("project", nil)
	b.StartElement("wavetrack", []Attribute{{Name: "name", Value: String("Track 1")}})
	b.CharData("")
	b.EndElement("wavetrack")
	b.EndElement("project")

	if b.Root == nil || b.Root.Tag != "project" {
		t.Fatalf("unexpected root: %+v", b.Root)
	}
	if len(b.Root.Children) != 1 || b.Root.Children[0].Tag != "wavetrack" {
		t.Fatalf("unexpected children: %+v", b.Root.Children)
	}
	track := b.Root.Children[0]
	if track.Parent != b.Root || track.ParentIndex != 0 {
		t.Fatalf("unexpected back-reference: parent=%v index=%d", track.Parent, track.ParentIndex)
	}
	val, ok := track.Attribute("name")
	if !ok || val.StringValue() != "Track 1" {
		t.Fatalf("unexpected attribute: %v, %v", val, ok)
	}
}

func TestSetAttributeUpdatesInPlace(t *testing.T) {
	n := &Node{}
	n.SetAttribute("blockid", Int64(42))
	n.SetAttribute("start", Int64(0))
	n.SetAttribute("blockid", Int64(-100))

	if len(n.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(n.Attrs))
	}
	if n.Attrs[0].Name != "blockid" || n.Attrs[0].Value.Int64Value() != -100 {
		t.Fatalf("expected in-place update, got %+v", n.Attrs[0])
	}
}

func TestAttrValueCoercions(t *testing.T) {
	if Int32(5).Int64Value() != 5 {
		t.Fatal("Int32 coercion failed")
	}
	if Float64(1.5).Float64Value() != 1.5 {
		t.Fatal("Float64 coercion failed")
	}
	if !Bool(true).BoolValue() {
		t.Fatal("Bool coercion failed")
	}
	if String("7").Int64Value() != 7 {
		t.Fatal("String->int64 coercion failed")
	}
}
