// Package wordml gives namespace aware access to the small part of
// WordprocessingML vocabulary converter understands. It works on top of
// etree DOM and mimics a handful of XPath queries, always returning results in
// document order.
package wordml

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// NS is WordprocessingML main namespace. Prefixes are not significant, only
// namespace URIs are compared.
const NS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Local names of elements and attributes we care about.
const (
	TagParagraph      = "p"
	TagRun            = "r"
	TagText           = "t"
	TagBold           = "b"
	TagRunProps       = "rPr"
	TagColor          = "color"
	TagIndent         = "ind"
	TagRuby           = "ruby"
	TagRubyBase       = "rubyBase"
	TagRubyText       = "rt"
	TagFieldChar      = "fldChar"
	TagInstrText      = "instrText"
	AttrVal           = "val"
	AttrLeftChars     = "leftChars"
	AttrFieldCharType = "fldCharType"
)

// Values of fldCharType attribute.
const (
	FieldBegin    = "begin"
	FieldSeparate = "separate"
	FieldEnd      = "end"
)

// Load parses WordprocessingML document part. Documents declaring non UTF-8
// encodings are transcoded.
func Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse document XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return doc, nil
}

// Is reports whether element belongs to WordprocessingML namespace and has
// requested local name.
func Is(el *etree.Element, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == NS
}

// Descendants returns all descendants of el (not el itself) with requested
// local name in document order: ".//w:local".
func Descendants(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if Is(c, local) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if el != nil {
		walk(el)
	}
	return out
}

// First returns first descendant of el with requested local name or nil.
func First(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, local) {
			return c
		}
		if found := First(c, local); found != nil {
			return found
		}
	}
	return nil
}

// Children returns direct children of el with requested local name.
func Children(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if Is(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// Path follows a chain of child steps starting from every element in from:
// Path(from, "r", "t") is "from/w:r/w:t".
func Path(from []*etree.Element, steps ...string) []*etree.Element {
	cur := from
	for _, step := range steps {
		var next []*etree.Element
		for _, el := range cur {
			next = append(next, Children(el, step)...)
		}
		cur = next
	}
	return cur
}

// HasAncestor reports whether el has an ancestor with requested local name.
// Search does not go above stop (stop itself is checked), nil stop means
// document root.
func HasAncestor(el *etree.Element, local string, stop *etree.Element) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if Is(p, local) {
			return true
		}
		if p == stop {
			break
		}
	}
	return false
}

// Attr returns value of WordprocessingML attribute with requested local name.
func Attr(el *etree.Element, local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key == local && a.NamespaceURI() == NS {
			return a.Value, true
		}
	}
	return "", false
}

// Texts returns character data of all w:t descendants of el in document order:
// ".//w:t/text()". Empty text elements produce no entries.
func Texts(el *etree.Element) []string {
	var out []string
	for _, t := range Descendants(el, TagText) {
		if s := t.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Paragraphs returns every paragraph in the document: "//w:p".
func Paragraphs(doc *etree.Document) []*etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	if Is(root, TagParagraph) {
		return append([]*etree.Element{root}, Descendants(root, TagParagraph)...)
	}
	return Descendants(root, TagParagraph)
}

// Runs returns paragraph runs which are not parts of structural ruby:
// ".//w:r[not(ancestor::w:ruby)]".
func Runs(p *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, r := range Descendants(p, TagRun) {
		if !HasAncestor(r, TagRuby, nil) {
			out = append(out, r)
		}
	}
	return out
}

// RunColor returns the first color value of run properties:
// ".//w:rPr/w:color/@w:val".
func RunColor(r *etree.Element) (string, bool) {
	for _, c := range Path(Descendants(r, TagRunProps), TagColor) {
		if v, ok := Attr(c, AttrVal); ok {
			return v, true
		}
	}
	return "", false
}

// FirstText returns the first non empty character data of the elements.
func FirstText(els []*etree.Element) (string, bool) {
	for _, el := range els {
		if s := el.Text(); s != "" {
			return s, true
		}
	}
	return "", false
}
