package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maigus-labs/maigus/pkg/format"
	"github.com/maigus-labs/maigus/pkg/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var (
		name      string
		shortName string
		showTags  bool
	)

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse oracle text and print its syntax tree",
		Long: `Parse one line of oracle text, or a whole card text when the argument
contains newlines, and print the resulting syntax tree.

References to the card's own name are replaced before parsing when --name
is given.`,
		Example: `  # Parse a single line
  maigus parse "Destroy target creature."

  # Parse with self-references
  maigus parse --name "Grizzly Bears" "When Grizzly Bears enters, draw a card."

  # Print the tree as JSON
  maigus parse -o json "Draw two cards."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			p := parser.New(c.Cfg.ParserSettings(), c.Logger)
			asJSON := c.Cfg.Output == "json"

			if strings.Contains(args[0], "\n") {
				return parseText(c.Out, p, args[0], name, shortName, asJSON)
			}
			return parseLine(c.Out, p, args[0], name, shortName, asJSON, showTags)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full card name used for self-references")
	cmd.Flags().StringVar(&shortName, "short-name", "", "Short card name (\"Ragavan\" for \"Ragavan, Nimble Pilferer\")")
	cmd.Flags().BoolVar(&showTags, "tags", false, "Also print the spans of tagged references")

	return cmd
}

func parseLine(w io.Writer, p *parser.Parser, line, name, shortName string, asJSON, showTags bool) error {
	res, err := p.ParseCardLine(line, 0, name, shortName)
	if err != nil {
		return err
	}
	if res == nil {
		_, _ = fmt.Fprintln(w, "(no rules text)")
		return nil
	}

	if asJSON {
		b, err := format.JSON(res.Line)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}

	_, _ = fmt.Fprint(w, format.Text(res.Line))
	if showTags {
		if tags := format.Tags(line, res.Tags); tags != "" {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprint(w, tags)
		}
	}
	return nil
}

// lineJSON is the JSON shape of one line of a parsed card text.
type lineJSON struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Attached bool   `json:"attached,omitempty"`
	Ast      any    `json:"ast,omitempty"`
	Error    string `json:"error,omitempty"`
}

func parseText(w io.Writer, p *parser.Parser, text, name, shortName string, asJSON bool) error {
	results, err := p.ParseText(text, name, shortName)

	if asJSON {
		out := make([]lineJSON, 0, len(results))
		for _, r := range results {
			l := lineJSON{Index: r.Index, Text: r.Text, Attached: r.Attached}
			if r.Ast != nil {
				l.Ast = format.Tree(r.Ast)
			}
			if r.Err != nil {
				l.Error = r.Err.Error()
			}
			out = append(out, l)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
		return err
	}

	for _, r := range results {
		_, _ = fmt.Fprintf(w, "line %d: %s\n", r.Index, r.Text)
		switch {
		case r.Err != nil:
			_, _ = fmt.Fprintf(w, "  error: %v\n", r.Err)
		case r.Attached:
			_, _ = fmt.Fprintln(w, "  (attached to the line above)")
		default:
			_, _ = fmt.Fprint(w, indentBlock(format.Text(r.Ast), "  "))
		}
	}
	return err
}

// indentBlock prefixes every non-empty line of s.
func indentBlock(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l != "" && l != "\n" {
			b.WriteString(prefix)
		}
		b.WriteString(l)
	}
	return b.String()
}
