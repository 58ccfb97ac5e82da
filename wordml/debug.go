package wordml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"docx2html/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// Dump returns readable outline of paragraphs and runs as converter sees
// them. It exists solely for debug reports.
func Dump(doc *etree.Document) string {
	tw := treeWriter{debug.NewTreeWriter()}
	paras := Paragraphs(doc)
	tw.Line(0, "document paragraphs=%d", len(paras))
	for i, p := range paras {
		tw.paragraph(1, i, p)
	}
	return tw.String()
}

func (tw treeWriter) paragraph(depth, idx int, p *etree.Element) {
	leftChars, _ := Attr(First(p, TagIndent), AttrLeftChars)
	tw.Node(depth, fmt.Sprintf("p[%d]", idx), "leftChars", leftChars)
	for i, r := range Runs(p) {
		tw.run(depth+1, i, r)
	}
}

func (tw treeWriter) run(depth, idx int, r *etree.Element) {
	var flags []string
	if First(r, TagBold) != nil {
		flags = append(flags, "bold")
	}
	if ruby := First(r, TagRuby); ruby != nil {
		flags = append(flags, "ruby")
	}
	color, _ := RunColor(r)
	fld, _ := Attr(First(r, TagFieldChar), AttrFieldCharType)

	var instr []string
	for _, it := range Descendants(r, TagInstrText) {
		instr = append(instr, it.Text())
	}

	tw.Node(depth, fmt.Sprintf("r[%d]", idx),
		"flags", strings.Join(flags, ","),
		"color", color,
		"fldChar", fld,
		"instr", strings.Join(instr, "|"),
		"text", strings.Join(Texts(r), ""),
	)
}
