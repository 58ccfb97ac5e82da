package markup

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// RuleKind selects how rule pattern is matched.
type RuleKind int

const (
	// RuleExact replaces the whole paragraph when it is equal to pattern.
	RuleExact RuleKind = iota
	// RuleLiteral replaces every occurrence of pattern.
	RuleLiteral
	// RuleRegexp rewrites every match of pattern, replacement may refer to
	// groups as $1, $2...
	RuleRegexp
)

// maxPasses bounds canonicalization, every rule shrinks its matches so
// pipeline settles in one or two passes on real documents.
const maxPasses = 8

// Rule is a single whole-paragraph rewrite.
type Rule struct {
	Name        string
	Kind        RuleKind
	Pattern     string
	Replacement string
	Rationale   string

	re *regexp2.Regexp
}

func exact(name, pattern, replacement, rationale string) *Rule {
	return &Rule{Name: name, Kind: RuleExact, Pattern: pattern, Replacement: replacement, Rationale: rationale}
}

func literal(name, pattern, replacement, rationale string) *Rule {
	return &Rule{Name: name, Kind: RuleLiteral, Pattern: pattern, Replacement: replacement, Rationale: rationale}
}

func pattern(name, expr, replacement, rationale string) *Rule {
	return &Rule{
		Name:        name,
		Kind:        RuleRegexp,
		Pattern:     expr,
		Replacement: replacement,
		Rationale:   rationale,
		re:          regexp2.MustCompile(expr, regexp2.None),
	}
}

const dashReplacement = `<span style="letter-spacing: -1px;">―</span>―`

// Rules is the canonicalization pipeline. Order matters: span merging expects
// sentinel paragraphs to be classified already and ruby cleanup expects spans
// to be merged.
var Rules = []*Rule{
	exact("empty", `<p></p>`, `<p>&nbsp;</p>`,
		"empty paragraphs collapse in browsers, keep vertical space"),
	exact("end-marker", `<p>（了）</p>`, `<p class="end">（了）</p>`,
		"terminal marker is styled separately"),
	exact("asterisk", `<p>＊</p>`, `<p class="ast">＊</p>`,
		"scene break marker is styled separately"),
	literal("dash-horizontal-bar", "――", dashReplacement,
		"double dash renders with a gap between glyphs"),
	literal("dash-em", "——", dashReplacement,
		"em dash pair is a typing variant of horizontal bar pair"),

	pattern("ref-merge-first", `(<span class="ref">)(.*?)</span>(\s*<span class="ref">)+`, `$1$2`,
		"reference style spanning several runs is emitted per run"),
	pattern("ref-merge-interior", `</span>(\s*<span class="ref">)+`, ``,
		"remove interior close and reopen pairs"),
	pattern("ref-merge-stray", `(</span>)(\s*<span class="ref">)+`, ``,
		"remove leftover close and reopen pairs"),

	pattern("bold-merge-first", `(<span class="bold">)(.*?)</span>(\s*<span class="bold">)+`, `$1$2`,
		"bold style spanning several runs is emitted per run"),
	pattern("bold-merge-interior", `</span>(\s*<span class="bold">)+`, ``,
		"remove interior close and reopen pairs"),
	pattern("bold-merge-stray", `(</span>)(\s*<span class="bold">)+`, ``,
		"remove leftover close and reopen pairs"),

	pattern("ruby-echo", `(<ruby>([^<]*)<rt>([^<]*)</rt></ruby>)\2\3`, `$1`,
		"ruby base and reading sometimes repeat as plain text right after ruby"),
	pattern("ruby-repeat", `(<ruby>[^<]*<rt>[^<]*</rt></ruby>)(?:\1)+`, `$1`,
		"identical ruby emitted by several runs of the same word"),
}

// Apply performs single rewrite of s.
func (r *Rule) Apply(s string) (string, error) {
	switch r.Kind {
	case RuleExact:
		if s == r.Pattern {
			return r.Replacement, nil
		}
		return s, nil
	case RuleLiteral:
		return strings.ReplaceAll(s, r.Pattern, r.Replacement), nil
	case RuleRegexp:
		out, err := r.re.Replace(s, r.Replacement, -1, -1)
		if err != nil {
			return s, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		return out, nil
	default:
		return s, fmt.Errorf("rule %s: unknown kind %d", r.Name, r.Kind)
	}
}

// Canonicalize runs all rules over assembled paragraph until it stops
// changing, so canonical output is stable under repeated canonicalization.
func Canonicalize(s string) (string, error) {
	for range maxPasses {
		next, err := canonicalPass(s)
		if err != nil {
			return "", err
		}
		if next == s {
			break
		}
		s = next
	}
	return s, nil
}

func canonicalPass(s string) (string, error) {
	var err error
	for _, r := range Rules {
		if s, err = r.Apply(s); err != nil {
			return "", err
		}
	}
	return s, nil
}
