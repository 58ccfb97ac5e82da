package convert

import (
	"path/filepath"
	"strings"
)

// buildOutputPath returns path of resulting HTML file: source path with its
// extension replaced. Leading dots of the file name do not start an
// extension, so ".docx" becomes ".docx.html".
func buildOutputPath(src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	if strings.TrimLeft(base, ".") == strings.TrimPrefix(ext, ".") {
		ext = ""
	}
	return strings.TrimSuffix(src, ext) + ".html"
}
