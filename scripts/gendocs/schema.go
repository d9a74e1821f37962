package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/maigus-labs/maigus/internal/config"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate configuration reference
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "run", "parser"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/config/types.go Config and ParserConfig.
func getConfigSchema() []ConfigField {
	d := config.Default()
	return []ConfigField{
		{Name: "workers", Type: "int", Default: fmt.Sprint(d.Workers), Description: "Cards parsed at once; 0 uses one per CPU", Category: "run"},
		{Name: "state_path", Type: "string", Default: d.StatePath, Description: "SQLite database of audit runs", Category: "run"},
		{Name: "output", Type: "string", Default: d.Output, Description: "Output format: " + strings.Join(config.OutputFormats, ", "), Category: "run"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Log at debug level", Category: "run"},

		{Name: "parser.trace", Type: "bool", Default: "false", Description: "Log every parser stage", Category: "parser"},
		{Name: "parser.stacktrace", Type: "bool", Default: "false", Description: "Log a stack at failure checkpoints", Category: "parser"},
		{Name: "parser.allow_unsupported", Type: "bool", Default: "false", Description: "Keep unparseable lines as unsupported markers instead of failing the card", Category: "parser"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter("Configuration", "maigus configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("maigus reads `%s` (or `%s`) from the working directory, or the file named by `--config`. "+
		"Environment variables override the file and flags override both.", config.ConfigFileName, config.ConfigFileNameAlt))

	fields := getConfigSchema()
	for _, section := range []struct{ category, title string }{
		{"run", "Run Settings"},
		{"parser", "Parser Settings"},
	} {
		w.Header(2, section.title)
		headers := []string{"Field", "Type", "Default", "Description"}
		var rows [][]string
		for _, f := range fields {
			if f.Category != section.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
		}
		w.Table(headers, rows)
	}

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# maigus.yaml
workers: 8
state_path: .maigus/state.db
output: table

parser:
  trace: false
  stacktrace: false
  allow_unsupported: true`)

	w.Header(2, "Boolean Environment Values")
	w.Paragraph("Boolean environment variables are on only for `1`, `true`, `TRUE`, `yes` and `YES`. Any other value, `True` included, leaves the setting off.")

	// Write file
	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
