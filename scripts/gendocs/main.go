// Package main generates the markdown reference for the maigus CLI and its
// configuration file from the command tree and config defaults.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=schema
//	go run ./scripts/gendocs
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

// generators maps each -gen value to its writer and default docs subdirectory.
var generators = map[string]struct {
	dir string
	run func(outDir string) error
}{
	"cli":    {dir: "cli", run: generateCLIDocs},
	"schema": {dir: "concepts", run: generateSchemaDocs},
}

func main() {
	gen := flag.String("gen", "all", "what to generate: cli, schema, all")
	outDir := flag.String("outdir", "", "output directory (only with a single -gen value)")
	flag.Parse()

	names := []string{*gen}
	switch {
	case *gen == "all":
		names = []string{"cli", "schema"}
		if *outDir != "" {
			log.Fatal("-outdir needs a single -gen value")
		}
	case generators[*gen].run == nil:
		log.Fatalf("unknown -gen value %q (use cli, schema, all)", *gen)
	}

	root, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	for _, name := range names {
		g := generators[name]
		dir := *outDir
		if dir == "" {
			dir = filepath.Join(root, "docs", g.dir)
		}
		if err := g.run(dir); err != nil {
			log.Fatalf("%s docs: %v", name, err)
		}
	}
}

// findProjectRoot walks up from the working directory to the go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
