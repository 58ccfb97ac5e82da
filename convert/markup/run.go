package markup

import (
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"docx2html/wordml"
)

const (
	refOpen   = `<span class="ref">`
	boldOpen  = `<span class="bold">`
	spanClose = `</span>`
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func rubyMarkup(base, annotation string) string {
	return "<ruby>" + textEscaper.Replace(base) + "<rt>" + textEscaper.Replace(annotation) + "</rt></ruby>"
}

// annotateRun renders a single run. Runs living inside structural ruby
// produce nothing, their text is picked up when enclosing ruby is rendered.
func (c *Converter) annotateRun(r *etree.Element) string {
	if wordml.HasAncestor(r, wordml.TagRuby, nil) {
		return ""
	}

	var text string
	if ruby := wordml.First(r, wordml.TagRuby); ruby != nil {
		base, okBase := wordml.FirstText(wordml.Path(wordml.Descendants(ruby, wordml.TagRubyBase), wordml.TagRun, wordml.TagText))
		annotation, okText := wordml.FirstText(wordml.Path(wordml.Descendants(ruby, wordml.TagRubyText), wordml.TagRun, wordml.TagText))
		if !okBase || !okText {
			c.log.Debug("Incomplete ruby dropped", zap.String("base", base), zap.String("annotation", annotation))
			return ""
		}
		text = rubyMarkup(base, annotation)
	} else {
		// NOTE: only leading spaces are removed, trailing ones separate runs
		text = textEscaper.Replace(strings.TrimLeftFunc(strings.Join(wordml.Texts(r), ""), unicode.IsSpace))
	}

	if color, ok := wordml.RunColor(r); ok && color == c.cfg.RefColor {
		text = refOpen + text + spanClose
	}
	if wordml.First(r, wordml.TagBold) != nil {
		text = boldOpen + text + spanClose
	}
	return text
}
