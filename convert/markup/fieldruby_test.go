package markup

import (
	"testing"

	"docx2html/common"
	"docx2html/wordml"
)

func TestFieldRuby_Instruction(t *testing.T) {
	tests := []struct {
		name     string
		frags    []string
		merge    common.AnnotationMerge
		wantBase string
		wantAnn  string
	}{
		{"opening directive ignored", []string{eqOpen}, common.AnnotationMergeReplace, "", ""},
		{"base", []string{"),漢)"}, common.AnnotationMergeReplace, "漢", ""},
		{"base with spaces", []string{"  ),漢 字)  "}, common.AnnotationMergeReplace, "漢 字", ""},
		{"switch ignored", []string{`\s\up 9(`, `\* hps10`}, common.AnnotationMergeReplace, "", ""},
		{"blank ignored", []string{"  ", "　"}, common.AnnotationMergeReplace, "", ""},
		{"annotation trimmed", []string{" かん "}, common.AnnotationMergeReplace, "", "かん"},
		{"latest annotation wins", []string{"か", "ん"}, common.AnnotationMergeReplace, "", "ん"},
		{"annotations joined", []string{"か", "ん"}, common.AnnotationMergeConcat, "", "かん"},
		{"latest base wins", []string{"),甲)", "),乙)"}, common.AnnotationMergeReplace, "乙", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldRuby{state: fieldAwaiting, merge: tt.merge}
			for _, frag := range tt.frags {
				f.instruction(frag)
			}
			if f.base != tt.wantBase || f.annotation != tt.wantAnn {
				t.Errorf("base, annotation = %q, %q, want %q, %q", f.base, f.annotation, tt.wantBase, tt.wantAnn)
			}
		})
	}
}

func TestFieldRuby_Consume(t *testing.T) {
	p := firstParagraph(t, `<w:p>`+
		run("", "a")+
		fldChar("end")+
		fldChar("begin")+instr("古")+
		fldChar("begin")+instr(eqOpen)+instr("かん")+instr("),漢)")+
		fldChar("separate")+run("", "漢")+
		fldChar("end")+
		run("", "b")+
		`</w:p>`)

	type step struct {
		out      string
		absorbed bool
	}
	want := []step{
		{"", false},                            // a
		{"", false},                            // end while idle
		{"", true},                             // begin
		{"", true},                             // 古
		{"", true},                             // begin again resets
		{"", true},                             // directive
		{"", true},                             // かん
		{"", true},                             // ),漢)
		{"", true},                             // separate
		{"", true},                             // field result text
		{"<ruby>漢<rt>かん</rt></ruby>", true}, // end
		{"", false},                            // b
	}

	runs := wordml.Runs(p)
	if len(runs) != len(want) {
		t.Fatalf("runs = %d, want %d", len(runs), len(want))
	}
	var f fieldRuby
	for i, r := range runs {
		out, absorbed := f.consume(r)
		if out != want[i].out || absorbed != want[i].absorbed {
			t.Errorf("run %d: consume() = %q, %v, want %q, %v", i, out, absorbed, want[i].out, want[i].absorbed)
		}
	}
	if f.pending() {
		t.Error("decoder must be idle after end marker")
	}
}

func TestFieldRuby_Pending(t *testing.T) {
	p := firstParagraph(t, `<w:p>`+fldChar("begin")+instr("かん")+`</w:p>`)

	var f fieldRuby
	for _, r := range wordml.Runs(p) {
		f.consume(r)
	}
	if !f.pending() {
		t.Error("pending() = false for unterminated field")
	}
}
