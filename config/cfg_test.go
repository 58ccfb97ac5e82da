package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"docx2html/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Title != "Converted Document" {
		t.Errorf("Title = %q, want %q", cfg.Document.Title, "Converted Document")
	}
	if cfg.Document.RefColor != "00B050" {
		t.Errorf("RefColor = %q, want 00B050", cfg.Document.RefColor)
	}
	if cfg.Document.CitationLeftChars != "100" {
		t.Errorf("CitationLeftChars = %q, want 100", cfg.Document.CitationLeftChars)
	}
	if cfg.Document.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Document.Workers)
	}
	if cfg.Document.FieldRuby.Annotation != common.AnnotationMergeReplace {
		t.Errorf("FieldRuby.Annotation = %v, want replace", cfg.Document.FieldRuby.Annotation)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestConfig_DefaultHTMLTemplateNotExpanded(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	tmpl := cfg.Document.HTMLTemplate
	if !strings.Contains(tmpl, "{{ .Title }}") || !strings.Contains(tmpl, "{{ .Body }}") {
		t.Errorf("html_template was expanded while loading: %q", tmpl)
	}
	if !strings.HasPrefix(tmpl, "<!DOCTYPE html>\n") {
		t.Errorf("html_template has unexpected prefix: %q", tmpl)
	}
	if !strings.HasSuffix(tmpl, "</html>") {
		t.Errorf("html_template must not end with new line: %q", tmpl)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  title: "Manuscript"
  ref_color: "FF0000"
  citation_left_chars: "200"
  workers: 4
  field_ruby:
    annotation: concat
logging:
  console:
    level: debug
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Title != "Manuscript" {
		t.Errorf("Title = %q, want Manuscript", cfg.Document.Title)
	}
	if cfg.Document.RefColor != "FF0000" {
		t.Errorf("RefColor = %q, want FF0000", cfg.Document.RefColor)
	}
	if cfg.Document.CitationLeftChars != "200" {
		t.Errorf("CitationLeftChars = %q, want 200", cfg.Document.CitationLeftChars)
	}
	if cfg.Document.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Document.Workers)
	}
	if cfg.Document.FieldRuby.Annotation != common.AnnotationMergeConcat {
		t.Errorf("FieldRuby.Annotation = %v, want concat", cfg.Document.FieldRuby.Annotation)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	// untouched values come from template
	if !strings.Contains(cfg.Document.HTMLTemplate, "<!DOCTYPE html>") {
		t.Error("Expected HTMLTemplate default to survive partial configuration")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
document:
  title: x
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"bad color", "version: 1\ndocument:\n  ref_color: \"green\"\n"},
		{"bad citation", "version: 1\ndocument:\n  citation_left_chars: \"abc\"\n"},
		{"negative workers", "version: 1\ndocument:\n  workers: -1\n"},
		{"bad annotation mode", "version: 1\ndocument:\n  field_ruby:\n    annotation: merge\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid_values.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.FieldRuby.Annotation = common.AnnotationMergeConcat

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if !strings.Contains(string(data), "annotation: concat") {
		t.Errorf("Dump() did not render enum as text:\n%s", data)
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Errorf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if cfg2.Document.HTMLTemplate != cfg.Document.HTMLTemplate {
		t.Errorf("HTMLTemplate mismatch after dump/load:\n%q\n%q", cfg2.Document.HTMLTemplate, cfg.Document.HTMLTemplate)
	}
	if cfg2.Document.FieldRuby.Annotation != common.AnnotationMergeConcat {
		t.Errorf("Annotation mismatch after dump/load: %v", cfg2.Document.FieldRuby.Annotation)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		data := []byte(`version: 1`)
		cfg := &Config{}

		result, err := unmarshalConfig(data, cfg, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}

		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}

		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		data := []byte(`invalid: [yaml`)
		cfg := &Config{}

		_, err := unmarshalConfig(data, cfg, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}
