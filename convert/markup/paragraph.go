package markup

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"docx2html/wordml"
)

// openTag selects paragraph opening tag. Only the first indentation element
// is looked at and its left characters value must match exactly.
func (c *Converter) openTag(p *etree.Element) string {
	if v, ok := wordml.Attr(wordml.First(p, wordml.TagIndent), wordml.AttrLeftChars); ok && v == c.cfg.CitationLeftChars {
		return `<p class="citation">`
	}
	return "<p>"
}

// assemble builds paragraph markup before canonicalization.
func (c *Converter) assemble(p *etree.Element) string {
	var (
		buf    strings.Builder
		fields = fieldRuby{merge: c.cfg.FieldRuby.Annotation}
	)

	buf.WriteString(c.openTag(p))
	for _, r := range wordml.Runs(p) {
		if out, absorbed := fields.consume(r); absorbed {
			buf.WriteString(out)
			continue
		}
		buf.WriteString(c.annotateRun(r))
	}
	if fields.pending() {
		c.log.Debug("Unterminated field dropped", zap.String("base", fields.base), zap.String("annotation", fields.annotation))
	}
	buf.WriteString("</p>")
	return buf.String()
}
