package entity

import (
	"strings"
)

// Entity is one node in a rooted, ordered XML tree.
//
// Text is the concatenation of all character data directly inside the
// element, outside any child tags. Children preserve document order. The
// attribute map is created lazily; whether it exists at all is not
// observable through Attribute, which distinguishes only present from
// absent keys.
type Entity struct {
	Name     string
	Text     string
	Children []*Entity

	attrs map[string]string
}

// New creates an entity with no attributes and no children.
func New(name, text string) *Entity {
	return &Entity{Name: name, Text: text}
}

// AddChild constructs a new entity and appends it to e's children.
// The new entity is returned so attributes can be attached immediately.
func (e *Entity) AddChild(name, text string) *Entity {
	child := New(name, text)
	e.Children = append(e.Children, child)
	return child
}

// SetAttribute sets an attribute, overwriting any existing value.
func (e *Entity) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Attribute returns the value of the named attribute. The second return
// value is false when the attribute is absent, which is distinct from an
// attribute present with an empty value.
func (e *Entity) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Child returns the first direct child named exactly name, or nil.
// Grandchildren are never searched.
func (e *Entity) Child(name string) *Entity {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Equal reports structural equality: same name, same text, same attribute
// set (order-independent), and same children in the same order. An entity
// with no attribute map equals one with an empty map; both mean "no
// attributes".
func (e *Entity) Equal(o *Entity) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Name != o.Name || e.Text != o.Text {
		return false
	}
	if len(e.attrs) != len(o.attrs) {
		return false
	}
	for k, v := range e.attrs {
		if ov, ok := o.attrs[k]; !ok || ov != v {
			return false
		}
	}
	if len(e.Children) != len(o.Children) {
		return false
	}
	for i, c := range e.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the entity recursively as
// <name attr="value">text<child>...</child></name>.
// Attribute order is unspecified.
func (e *Entity) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Entity) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for name, value := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(value)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(e.Text)
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}
