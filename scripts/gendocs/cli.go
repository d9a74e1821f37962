package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maigus-labs/maigus/internal/cli"
	"github.com/maigus-labs/maigus/internal/config"
)

// exitNotes describes when a command exits non-zero. Commands not listed
// fail only on usage or I/O errors.
var exitNotes = map[string]string{
	"batch":      "Exits 1 when any card fails to parse. The report is still written first.",
	"audit":      "Exits 0 even when lines fail. Failures are stored with the run; use `audit show` to list them.",
	"audit show": "Exits 1 when the state database holds no runs.",
}

// formatNotes describes what a command prints for json output and for the
// text and table formats, in that order.
var formatNotes = map[string][2]string{
	"parse": {"the parsed lines as JSON", "the indented syntax tree of each line"},
	"batch": {"the full report, card trees included", "a table of failing lines and the run counts"},
	"audit": {"the full report, card trees included", "the run id and its counts"},
}

type commandPage struct {
	cmd  *cobra.Command
	path string // command path without the binary name, "audit show"
}

func (p commandPage) file() string {
	return strings.ReplaceAll(p.path, " ", "-") + ".md"
}

func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	return writeCLIDocs(cli.NewRootCmd(), outDir)
}

// writeCLIDocs writes index.md and one page per documented command,
// subcommands included ("audit-show.md").
func writeCLIDocs(root *cobra.Command, outDir string) error {
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	pages := collectPages(root, "")
	if err := writeFile(outDir, "index.md", renderIndex(root, pages)); err != nil {
		return err
	}
	for _, p := range pages {
		if err := writeFile(outDir, p.file(), renderCommandPage(p)); err != nil {
			return fmt.Errorf("page for %s: %w", p.path, err)
		}
	}
	log.Printf("  Generated index.md and %d command pages", len(pages))
	return nil
}

func collectPages(cmd *cobra.Command, prefix string) []commandPage {
	var pages []commandPage
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || strings.HasPrefix(sub.Name(), "__") || sub.Name() == "completion" {
			continue
		}
		path := strings.TrimSpace(prefix + " " + sub.Name())
		pages = append(pages, commandPage{cmd: sub, path: path})
		pages = append(pages, collectPages(sub, path)...)
	}
	return pages
}

func renderIndex(root *cobra.Command, pages []commandPage) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line reference for maigus")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("maigus compiles oracle text into typed syntax trees. `parse` handles a single card, " +
		"`batch` a YAML corpus, and `audit` stores each corpus run in SQLite for later inspection.")
	w.CodeBlock("bash", "go install github.com/maigus-labs/maigus/cmd/maigus@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, p := range pages {
		link := fmt.Sprintf("[%s](%s)", InlineCode(p.path), strings.TrimSuffix(p.file(), ".md"))
		rows = append(rows, []string{link, cleanDescription(p.cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Settings")
	w.Paragraph(fmt.Sprintf("Settings come from `%s`, the environment, or a flag. "+
		"Flags win over the environment, which wins over the file.", config.ConfigFileName))
	w.Table([]string{"Key", "Flag", "Environment", "Default"}, settingsRows(root.PersistentFlags()))

	w.Header(2, "Output Formats")
	var formats []string
	for _, f := range config.OutputFormats {
		formats = append(formats, InlineCode(f))
	}
	w.Paragraph("`--output` accepts " + strings.Join(formats, ", ") + ". Logs always go to stderr, so stdout stays machine-readable.")

	return w.Bytes()
}

// settingsRows joins config keys with the flag and environment variable
// that set them.
func settingsRows(flags *pflag.FlagSet) [][]string {
	flagFor := map[string]string{}
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			flagFor[config.FlagKey(f.Name)] = InlineCode("--" + f.Name)
		}
	})
	envFor := map[string]string{}
	for _, b := range config.EnvBindings() {
		envFor[b.Key] = InlineCode(b.Var)
	}

	var rows [][]string
	for _, field := range getConfigSchema() {
		rows = append(rows, []string{
			InlineCode(field.Name),
			orDash(flagFor[field.Name]),
			orDash(envFor[field.Name]),
			InlineCode(field.Default),
		})
	}
	return rows
}

func renderCommandPage(p commandPage) []byte {
	cmd := p.cmd
	w := NewMarkdownWriter()
	w.Frontmatter(p.path, cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "maigus "+p.path)
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	usage := []string{"maigus " + strings.TrimSpace(strings.TrimPrefix(cmd.UseLine(), "maigus"))}
	if cmd.HasAvailableSubCommands() {
		usage = append(usage, fmt.Sprintf("maigus %s <subcommand> [options]", p.path))
	}
	w.CodeBlock("bash", strings.Join(usage, "\n"))

	if cmd.HasAvailableSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if !sub.Hidden {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table([]string{"Option", "Default", "Description"}, flagRows(cmd.LocalFlags()))
	}

	if notes, ok := formatNotes[p.path]; ok {
		w.Header(2, "Output")
		w.Table([]string{"Format", "Prints"}, [][]string{
			{InlineCode("json"), notes[0]},
			{InlineCode("text") + ", " + InlineCode("table"), notes[1]},
		})
	}

	if note, ok := exitNotes[p.path]; ok {
		w.Header(2, "Exit Status")
		w.Paragraph(note)
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	w.Paragraph("Global settings are listed on the [CLI reference](index).")
	return w.Bytes()
}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(name), orDash(def), cleanDescription(f.Usage)})
	})
	return rows
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeFile(dir, name string, b []byte) error {
	return os.WriteFile(filepath.Join(dir, name), b, 0600)
}
