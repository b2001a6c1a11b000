// Package dom provides the in-memory document model the dashboard pipeline
// mutates. It stands in for the browser document the original PesaFlow pages
// expose: elements carry tags, classes, data attributes and text, and simple
// class/id selectors locate them. Only loop tasks should mutate a document.
package dom

import (
	"strings"

	"github.com/ettle/strcase"
)

// Document is a tree of elements rooted at Root.
type Document struct {
	Root *Element
}

// NewDocument builds a document with an empty body element.
func NewDocument() *Document {
	return &Document{Root: NewElement("body")}
}

// CreateElement builds a detached element with the given tag and classes.
func (d *Document) CreateElement(tag string, classes ...string) *Element {
	el := NewElement(tag)
	for _, class := range classes {
		el.AddClass(class)
	}
	return el
}

// Select returns all elements in document order matching a selector of the
// form ".class", "#id", "[attr=value]", or "tag".
func (d *Document) Select(selector string) []*Element {
	if d == nil || d.Root == nil {
		return nil
	}
	var matched []*Element
	d.Root.walk(func(el *Element) {
		if el.Matches(selector) {
			matched = append(matched, el)
		}
	})
	return matched
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *Element {
	matches := d.Select(selector)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Contains reports whether el is still attached to the document tree.
func (d *Document) Contains(el *Element) bool {
	if d == nil || d.Root == nil || el == nil {
		return false
	}
	for cur := el; cur != nil; cur = cur.parent {
		if cur == d.Root {
			return true
		}
	}
	return false
}

// Element is a node in the document tree.
type Element struct {
	Tag string
	ID  string

	classes  []string
	attrs    map[string]string
	text     string
	raw      string
	parent   *Element
	children []*Element
}

// NewElement builds a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, attrs: map[string]string{}}
}

// Matches reports whether the element matches a single simple selector.
func (e *Element) Matches(selector string) bool {
	switch {
	case selector == "":
		return false
	case strings.HasPrefix(selector, "."):
		return e.HasClass(selector[1:])
	case strings.HasPrefix(selector, "#"):
		return e.ID == selector[1:]
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		name, value, found := strings.Cut(selector[1:len(selector)-1], "=")
		if !found {
			return e.attrs[name] != ""
		}
		return e.attrs[name] == strings.Trim(value, `"'`)
	default:
		return e.Tag == selector
	}
}

// AppendChild attaches child as the last child, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) *Element {
	if child == nil || child == e {
		return e
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	return e
}

// AppendHTML appends a raw markup fragment as an opaque child node. The
// infinite scroll loader uses this for server-rendered list rows.
func (e *Element) AppendHTML(fragment string) *Element {
	child := NewElement("fragment")
	child.raw = fragment
	e.AppendChild(child)
	return child
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, sibling := range siblings {
		if sibling == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children in order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// NextSibling returns the element immediately after this one, or nil.
func (e *Element) NextSibling() *Element {
	if e.parent == nil {
		return nil
	}
	siblings := e.parent.children
	for i, sibling := range siblings {
		if sibling == e && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

// PrevSibling returns the element immediately before this one, or nil.
func (e *Element) PrevSibling() *Element {
	if e.parent == nil {
		return nil
	}
	siblings := e.parent.children
	for i, sibling := range siblings {
		if sibling == e && i > 0 {
			return siblings[i-1]
		}
	}
	return nil
}

// First returns the first descendant matching selector, or nil.
func (e *Element) First(selector string) *Element {
	var found *Element
	e.walk(func(el *Element) {
		if found == nil && el != e && el.Matches(selector) {
			found = el
		}
	})
	return found
}

// AddClass adds a class if absent.
func (e *Element) AddClass(class string) *Element {
	if class == "" || e.HasClass(class) {
		return e
	}
	e.classes = append(e.classes, class)
	return e
}

// RemoveClass drops a class if present.
func (e *Element) RemoveClass(class string) *Element {
	for i, existing := range e.classes {
		if existing == class {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			break
		}
	}
	return e
}

// ToggleClass flips class membership.
func (e *Element) ToggleClass(class string) *Element {
	if e.HasClass(class) {
		return e.RemoveClass(class)
	}
	return e.AddClass(class)
}

// HasClass reports class membership.
func (e *Element) HasClass(class string) bool {
	for _, existing := range e.classes {
		if existing == class {
			return true
		}
	}
	return false
}

// Classes returns the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// SetAttr sets a plain attribute.
func (e *Element) SetAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// Attr reads a plain attribute.
func (e *Element) Attr(name string) string { return e.attrs[name] }

// SetData sets a data attribute; the key is camelCase the way scripts read
// it ("confirmMessage" is stored as data-confirm-message).
func (e *Element) SetData(key, value string) *Element {
	return e.SetAttr(dataAttr(key), value)
}

// Data reads a data attribute by its camelCase key.
func (e *Element) Data(key string) string { return e.attrs[dataAttr(key)] }

// SetText replaces the element's text content.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// RawHTML returns the markup payload of fragment nodes.
func (e *Element) RawHTML() string { return e.raw }

func (e *Element) walk(visit func(*Element)) {
	visit(e)
	for _, child := range e.children {
		child.walk(visit)
	}
}

func dataAttr(key string) string {
	return "data-" + strcase.ToKebab(key)
}
