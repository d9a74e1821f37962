package parser

import "os"

// Environment variables that toggle parser diagnostics.
const (
	EnvTrace            = "MAIGUS_PARSER_TRACE"
	EnvStackTrace       = "MAIGUS_PARSER_STACKTRACE"
	EnvAllowUnsupported = "MAIGUS_PARSER_ALLOW_UNSUPPORTED"
)

// Config controls parser diagnostics. It is built once by the caller and
// never changes parse outcomes.
type Config struct {
	// Trace logs every stage at debug level.
	Trace bool
	// StackTrace logs a goroutine stack at failure checkpoints.
	StackTrace bool
	// AllowUnsupported is a caller-side policy flag: batch callers keep
	// unparseable lines as markers instead of failing the card. The parser
	// itself only carries it.
	AllowUnsupported bool
}

// FlagEnabled reports whether an environment value turns a flag on.
func FlagEnabled(v string) bool {
	switch v {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	}
	return false
}

// ConfigFromEnv builds a Config from environment lookups. A nil lookup
// uses os.LookupEnv.
func ConfigFromEnv(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	enabled := func(name string) bool {
		v, ok := lookup(name)
		return ok && FlagEnabled(v)
	}
	return Config{
		Trace:            enabled(EnvTrace),
		StackTrace:       enabled(EnvStackTrace),
		AllowUnsupported: enabled(EnvAllowUnsupported),
	}
}
