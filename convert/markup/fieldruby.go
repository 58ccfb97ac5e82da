package markup

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/dlclark/regexp2"

	"docx2html/common"
	"docx2html/wordml"
)

// Some producers encode ruby as an EQ field instead of w:ruby:
//
//	<w:fldChar w:fldCharType="begin"/>
//	<w:instrText> EQ \* jc2 \* hps12 \o\ad(\s\up 11(</w:instrText>
//	<w:instrText>かん</w:instrText>
//	<w:instrText>),漢)</w:instrText>
//	<w:fldChar w:fldCharType="end"/>
//
// each piece normally sitting in its own run.

var fieldBaseRe = regexp2.MustCompile(`\),([^)]*)\)`, regexp2.None)

type fieldState int

const (
	fieldIdle fieldState = iota
	fieldAwaiting
)

// fieldRuby decodes field-code ruby. Zero value is ready to use, it must not
// outlive a single paragraph.
type fieldRuby struct {
	state      fieldState
	merge      common.AnnotationMerge
	base       string
	annotation string
}

// consume feeds run to decoder. When absorbed is true run belongs to a field
// and must not be rendered as ordinary text, out then holds its contribution.
func (f *fieldRuby) consume(r *etree.Element) (out string, absorbed bool) {
	absorbed = f.state == fieldAwaiting
	for _, el := range fieldTokens(r) {
		switch {
		case wordml.Is(el, wordml.TagFieldChar):
			switch typ, _ := wordml.Attr(el, wordml.AttrFieldCharType); typ {
			case wordml.FieldBegin:
				f.state, f.base, f.annotation = fieldAwaiting, "", ""
				absorbed = true
			case wordml.FieldEnd:
				if f.state != fieldAwaiting {
					continue
				}
				if f.base != "" && f.annotation != "" {
					out += rubyMarkup(f.base, f.annotation)
				}
				f.state, f.base, f.annotation = fieldIdle, "", ""
			}
		case f.state == fieldAwaiting:
			f.instruction(el.Text())
		}
	}
	return out, absorbed
}

// pending reports unterminated field.
func (f *fieldRuby) pending() bool {
	return f.state == fieldAwaiting
}

func (f *fieldRuby) instruction(text string) {
	frag := strings.TrimSpace(text)
	if frag == "" {
		return
	}
	if strings.Contains(frag, "EQ") && strings.Contains(frag, `\o\ad`) {
		// opening directive, nothing to capture
		return
	}
	if m, err := fieldBaseRe.FindStringMatch(frag); err == nil && m != nil {
		f.base = m.GroupByNumber(1).String()
		return
	}
	if strings.HasPrefix(frag, `\`) {
		return
	}
	if f.merge == common.AnnotationMergeConcat {
		f.annotation += frag
	} else {
		f.annotation = frag
	}
}

// fieldTokens returns fldChar and instrText elements of the run in document
// order.
func fieldTokens(r *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if wordml.Is(c, wordml.TagFieldChar) || wordml.Is(c, wordml.TagInstrText) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(r)
	return out
}
