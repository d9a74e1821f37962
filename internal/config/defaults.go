package config

// Default configuration values.
const (
	DefaultStateFile = ".maigus/state.db"
	DefaultOutput    = "text"
	DefaultWorkers   = 0
)

// OutputFormats are the accepted values of "output".
var OutputFormats = []string{"text", "json", "table"}

func defaults() map[string]any {
	return map[string]any{
		"parser.trace":             false,
		"parser.stacktrace":        false,
		"parser.allow_unsupported": false,
		"workers":                  DefaultWorkers,
		"state_path":               DefaultStateFile,
		"output":                   DefaultOutput,
		"verbose":                  false,
	}
}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		Workers:   DefaultWorkers,
		StatePath: DefaultStateFile,
		Output:    DefaultOutput,
	}
}
