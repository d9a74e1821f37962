// Package loader reads card corpora: YAML documents whose cards carry a
// name, an optional short name, a printed mana cost and oracle text.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/parser"
)

// Card is one card of a corpus with its text NFC-normalized.
type Card struct {
	Name      string
	ShortName string
	ManaCost  core.ManaCost
	Text      string
	// Source is "file:line" of the card's mapping.
	Source string
}

// cardYAML is the on-disk shape of a card.
type cardYAML struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	ManaCost  string `yaml:"mana_cost"`
	Text      string `yaml:"text"`
}

var knownFields = map[string]bool{
	"name":       true,
	"short_name": true,
	"mana_cost":  true,
	"text":       true,
}

// LoadFile reads every card of a corpus file.
func LoadFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, path)
}

// Load reads a YAML stream. Each document is a card mapping or a sequence of
// card mappings; cards keep their order in the stream. source names the
// stream in errors.
func Load(r io.Reader, source string) ([]Card, error) {
	dec := yaml.NewDecoder(r)
	var cards []Card
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return cards, nil
		}
		if err != nil {
			return nil, &CorpusParseError{File: source, Message: fmt.Sprintf("invalid YAML: %v", err)}
		}
		if len(doc.Content) == 0 {
			continue
		}
		root := doc.Content[0]
		switch root.Kind {
		case yaml.MappingNode:
			c, err := decodeCard(root, source)
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		case yaml.SequenceNode:
			for _, item := range root.Content {
				c, err := decodeCard(item, source)
				if err != nil {
					return nil, err
				}
				cards = append(cards, c)
			}
		default:
			return nil, &CorpusParseError{File: source, Line: root.Line, Message: "expected a card or a list of cards"}
		}
	}
}

func decodeCard(n *yaml.Node, source string) (Card, error) {
	if n.Kind != yaml.MappingNode {
		return Card{}, &CorpusParseError{File: source, Line: n.Line, Message: "expected a card mapping"}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !knownFields[key.Value] {
			return Card{}, &UnknownFieldError{File: source, Line: key.Line, Field: key.Value}
		}
	}
	var raw cardYAML
	if err := n.Decode(&raw); err != nil {
		return Card{}, &CorpusParseError{File: source, Line: n.Line, Message: fmt.Sprintf("failed to parse card: %v", err)}
	}

	name := strings.TrimSpace(norm.NFC.String(raw.Name))
	if name == "" {
		return Card{}, &CorpusParseError{File: source, Line: n.Line, Message: "card name is required"}
	}
	cost, err := parser.ParseManaCost(raw.ManaCost)
	if err != nil {
		return Card{}, &CorpusParseError{File: source, Line: n.Line, Message: fmt.Sprintf("%s: %v", name, err)}
	}
	c := Card{
		Name:      name,
		ShortName: strings.TrimSpace(norm.NFC.String(raw.ShortName)),
		ManaCost:  cost,
		Text:      strings.TrimSpace(norm.NFC.String(raw.Text)),
		Source:    fmt.Sprintf("%s:%d", source, n.Line),
	}
	c.ApplyDefaults()
	return c, nil
}

// ApplyDefaults derives the short name of a titled legend ("Ragavan, Nimble
// Pilferer" is also "Ragavan") when none is given.
func (c *Card) ApplyDefaults() {
	if c.ShortName != "" {
		return
	}
	if head, _, ok := strings.Cut(c.Name, ", "); ok {
		c.ShortName = head
	}
}

// CorpusParseError is a malformed corpus.
type CorpusParseError struct {
	File    string
	Line    int
	Message string
}

func (e *CorpusParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError is a card key outside name, short_name, mana_cost and
// text.
type UnknownFieldError struct {
	File  string
	Line  int
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q in card", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	return msg
}
