// Package project loads structura.toml.
package project

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"structura/internal/diag"
	"structura/internal/source"
)

// ManifestName is the configuration file looked up from the working directory.
const ManifestName = "structura.toml"

// SourceExt is the extension every compilation unit must carry.
const SourceExt = ".struct"

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Serve   ServeConfig   `toml:"serve"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	OutDir      string `toml:"out_dir"`
	RuntimePath string `toml:"runtime_path"`
	Wrap        bool   `toml:"wrap"`
	Jobs        int    `toml:"jobs"` // 0 = GOMAXPROCS
	Cache       bool   `toml:"cache"`
}

type ServeConfig struct {
	Addr    string `toml:"addr"`
	Timeout string `toml:"timeout"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Build: BuildConfig{
			OutDir:      "build",
			RuntimePath: "./runtime/stdlib.js",
			Wrap:        true,
			Cache:       true,
		},
		Serve: ServeConfig{Addr: ":5000", Timeout: "5s"},
	}
}

// Manifest is a loaded structura.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir to locate structura.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the manifest above startDir. Without one it returns the
// defaults and ok == false.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	m, err := Load(path)
	return m, err == nil, err
}

// ConfigError reports an unreadable or invalid manifest.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.ProjInvalidConfig, 0, source.Span{}, e.Error())
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: errors.Wrap(err, "failed to parse TOML")}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ConfigError{Path: path, Err: errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Validate checks value ranges; errors name the offending key.
func (c Config) Validate() error {
	if c.Build.Jobs < 0 {
		return errors.Errorf("[build].jobs must be >= 0, got %d", c.Build.Jobs)
	}
	if strings.TrimSpace(c.Build.OutDir) == "" {
		return errors.New("[build].out_dir must not be empty")
	}
	if strings.TrimSpace(c.Build.RuntimePath) == "" {
		return errors.New("[build].runtime_path must not be empty")
	}
	if _, err := c.ServeTimeout(); err != nil {
		return err
	}
	return nil
}

// ServeTimeout parses [serve].timeout.
func (c Config) ServeTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Serve.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "[serve].timeout")
	}
	if d <= 0 {
		return 0, errors.Errorf("[serve].timeout must be positive, got %s", d)
	}
	return d, nil
}

// OutDir resolves [build].out_dir against the manifest root.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) || m.Root == "" {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, m.Config.Build.OutDir)
}

// Encode writes cfg as TOML, the format `structura init` produces.
func Encode(cfg Config) ([]byte, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return []byte(sb.String()), nil
}
