// Package dom is a minimal host-agnostic element tree. The bridge decodes
// page snapshots into it and the observer scrapes it; neither side knows
// anything about a concrete browser API.
package dom

import (
	"strings"

	"github.com/samber/lo"
)

// Element is one node of the tree. Text is the node's own text; use
// TextContent for the subtree text the way a scrape sees it.
type Element struct {
	Tag      string            `json:"tag"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Element        `json:"children,omitempty"`
}

// New builds an element with the given tag and classes.
func New(tag string, classes ...string) *Element {
	return &Element{Tag: tag, Classes: classes}
}

// HasClass reports whether the element itself carries the class.
func (e *Element) HasClass(name string) bool {
	return lo.Contains(e.Classes, name)
}

// Attr returns the named attribute, or "".
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// SetAttr sets an attribute, allocating the map on first use.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = map[string]string{}
	}
	e.Attrs[name] = value
}

// Append adds a child at the end.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// Prepend adds a child at the front, matching how the page script places
// the action button ahead of the native controls.
func (e *Element) Prepend(child *Element) {
	e.Children = append([]*Element{child}, e.Children...)
}

// FindTag returns the first descendant with the given tag, depth-first,
// or nil.
func (e *Element) FindTag(tag string) *Element {
	return e.find(func(el *Element) bool { return el.Tag == tag })
}

// FindClass returns the first descendant carrying the class, or nil.
func (e *Element) FindClass(name string) *Element {
	return e.find(func(el *Element) bool { return el.HasClass(name) })
}

// ChildrenByTag returns the direct children with the given tag.
func (e *Element) ChildrenByTag(tag string) []*Element {
	return lo.Filter(e.Children, func(el *Element, _ int) bool { return el.Tag == tag })
}

// TextContent concatenates the subtree's text, trimmed.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) collectText(b *strings.Builder) {
	if e.Text != "" {
		b.WriteString(e.Text)
	}
	for _, child := range e.Children {
		child.collectText(b)
	}
}

func (e *Element) find(pred func(*Element) bool) *Element {
	for _, child := range e.Children {
		if pred(child) {
			return child
		}
		if found := child.find(pred); found != nil {
			return found
		}
	}
	return nil
}
