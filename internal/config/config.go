package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Gitmaxd/ai-init/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeySkipAliases = "skip_aliases"
	KeyVerbose     = "verbose"
	KeyTemplateDir = "template_dir"
	KeyConcurrency = "concurrency"
)

type kind int

const (
	kindBool kind = iota
	kindInt
	kindString
)

var keys = map[string]kind{
	KeySkipAliases: kindBool,
	KeyVerbose:     kindBool,
	KeyTemplateDir: kindString,
	KeyConcurrency: kindInt,
}

// Settings is the resolved configuration for a run.
type Settings struct {
	SkipAliases bool
	Verbose     bool
	TemplateDir string
	Concurrency int
}

var (
	v   = viper.New()
	dir string
)

// defaultDir honors AIINIT_HOME before falling back to ~/.ai-init.
func defaultDir() string {
	if d := os.Getenv(branding.EnvVar("HOME")); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// Dir returns the config directory (~/.ai-init/).
func Dir() string {
	if dir != "" {
		return dir
	}
	return defaultDir()
}

// FilePath returns the config file path (~/.ai-init/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads the config file from Dir and the environment. A missing file is
// not an error; a malformed one is.
func Load() error {
	return LoadFrom(defaultDir())
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(configDir string) error {
	dir = configDir
	v = viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	v.SetDefault(KeySkipAliases, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyTemplateDir, "")
	v.SetDefault(KeyConcurrency, 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", FilePath(), err)
	}
	return nil
}

// BindFlag lets a command-line flag override key when it is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for %s", key)
	}
	return v.BindPFlag(key, flag)
}

// Current returns the resolved settings.
func Current() Settings {
	return Settings{
		SkipAliases: v.GetBool(KeySkipAliases),
		Verbose:     v.GetBool(KeyVerbose),
		TemplateDir: v.GetString(KeyTemplateDir),
		Concurrency: v.GetInt(KeyConcurrency),
	}
}

// Keys returns the recognized keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns a config value by key as a string.
func Get(key string) (string, error) {
	if _, ok := keys[key]; !ok {
		return "", unknownKey(key)
	}
	return v.GetString(key), nil
}

// Set validates value for key, then writes it to the config file.
func Set(key, value string) error {
	k, ok := keys[key]
	if !ok {
		return unknownKey(key)
	}

	var typed any = value
	switch k {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		typed = b
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		typed = n
	}

	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", Dir(), err)
	}
	v.Set(key, typed)
	if err := v.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
}
