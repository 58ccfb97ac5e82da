// Package markup turns WordprocessingML paragraphs into HTML paragraphs
// following conventions of Japanese literary manuscripts: bold and reference
// spans, ruby annotations (structural and field-code encoded), citation
// indentation and a few sentinel paragraphs.
package markup

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docx2html/config"
	"docx2html/wordml"
)

// Converter holds per document settings. It keeps no per paragraph state and
// is safe for concurrent use.
type Converter struct {
	cfg   *config.DocumentConfig
	shell *template.Template
	log   *zap.Logger
}

// ShellValues are available to document shell template.
type ShellValues struct {
	Title  string
	Body   string
	Source string
}

// New prepares converter, parsing document shell template.
func New(cfg *config.DocumentConfig, log *zap.Logger) (*Converter, error) {
	shell, err := template.New(string(config.HTMLTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.HTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.HTMLTemplateFieldName, err)
	}
	return &Converter{cfg: cfg, shell: shell, log: log.Named("markup")}, nil
}

// Convert converts every paragraph of the document and joins results with new
// lines in document order. Paragraphs are independent, so they are converted
// concurrently.
func (c *Converter) Convert(ctx context.Context, doc *etree.Document) (string, error) {
	paras := wordml.Paragraphs(doc)
	out := make([]string, len(paras))

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paras {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			html, err := c.Paragraph(p)
			if err != nil {
				return fmt.Errorf("paragraph %d: %w", i, err)
			}
			out[i] = html
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	c.log.Debug("Paragraphs converted", zap.Int("count", len(paras)), zap.Int("workers", workers))
	return strings.Join(out, "\n"), nil
}

// Paragraph assembles and canonicalizes a single paragraph.
func (c *Converter) Paragraph(p *etree.Element) (string, error) {
	return Canonicalize(c.assemble(p))
}

// Render wraps converted body into document shell.
func (c *Converter) Render(body, source string) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.shell.Execute(buf, ShellValues{Title: c.cfg.Title, Body: body, Source: source}); err != nil {
		return nil, fmt.Errorf("unable to expand document template: %w", err)
	}
	return buf.Bytes(), nil
}
