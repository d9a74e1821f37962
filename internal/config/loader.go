package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/maigus-labs/maigus/pkg/parser"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "maigus.yaml"
	ConfigFileNameAlt = "maigus.yml"
)

// envPrefix selects the environment variables the env provider reads.
const envPrefix = "MAIGUS_"

// envKeys maps the recognized environment variables to config keys. Other
// MAIGUS_* variables are ignored.
var envKeys = map[string]string{
	parser.EnvTrace:            "parser.trace",
	parser.EnvStackTrace:       "parser.stacktrace",
	parser.EnvAllowUnsupported: "parser.allow_unsupported",
	envPrefix + "WORKERS":      "workers",
	envPrefix + "STATE_PATH":   "state_path",
	envPrefix + "OUTPUT":       "output",
}

// EnvBinding pairs an environment variable with the config key it sets.
type EnvBinding struct {
	Var string
	Key string
}

// EnvBindings returns the recognized environment variables sorted by name.
func EnvBindings() []EnvBinding {
	out := make([]EnvBinding, 0, len(envKeys))
	for v, k := range envKeys {
		out = append(out, EnvBinding{Var: v, Key: k})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// flagKeys maps flag names whose key differs from the snake-cased name.
var flagKeys = map[string]string{
	"state":             "state_path",
	"trace":             "parser.trace",
	"stacktrace":        "parser.stacktrace",
	"allow-unsupported": "parser.allow_unsupported",
}

// FlagKey returns the config key a command-line flag sets.
func FlagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// findConfigFile returns the explicit path, or the first config file found
// in dir. It returns "" when there is none.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load layers configuration. Precedence (highest to lowest): changed flags,
// environment, config file, defaults. cfgFile may be empty to search the
// working directory; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return load(cfgFile, cwd, flags)
}

func load(cfgFile, dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile, dir)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		return envKeys[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	// 4. Flags, only those set explicitly
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return FlagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       flagStringHook,
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// flagStringHook decodes string booleans with the parser's truthiness rule,
// so MAIGUS_PARSER_TRACE=True stays off just as it does for the parser.
func flagStringHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	s, _ := data.(string)
	return parser.FlagEnabled(s), nil
}
