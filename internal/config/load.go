package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "UNIATTEND_"

// FileName is the config file inside the home directory.
const FileName = "config.yaml"

// Options tune Load. Zero values read ~/.uniattend and ./.env.
type Options struct {
	// Home overrides the home directory (the --home flag).
	Home string
	// EnvFiles are loaded into the process environment before parsing.
	// Missing files are ignored.
	EnvFiles []string
}

// Loaded is the result of Load.
type Loaded struct {
	Config Config
	Home   string
	Path   string
	// FromFile reports whether the config file existed.
	FromFile bool
}

// Load builds the effective configuration. Flags are applied by the
// caller on top of the result.
func Load(opts Options) (*Loaded, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	home, err := ResolveHome(opts.Home)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	path := filepath.Join(home, FileName)
	fromFile, err := readFile(path, &cfg)
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "parse environment", err)
	}

	cfg.Sanitize(home)
	return &Loaded{Config: cfg, Home: home, Path: path, FromFile: fromFile}, nil
}

// loadEnvFiles loads .env files, ignoring ones that do not exist.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			var pathErr *os.PathError
			if !stderrors.As(err, &pathErr) {
				return errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("load %s", f), err)
			}
		}
	}
	return nil
}

// ResolveHome returns flag, then $UNIATTEND_HOME, then ~/.uniattend.
func ResolveHome(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	var homeEnv struct {
		Home string `env:"HOME"`
	}
	if err := env.ParseWithOptions(&homeEnv, env.Options{Prefix: EnvPrefix}); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "parse environment", err)
	}
	if homeEnv.Home != "" {
		return homeEnv.Home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "failed to get home directory", err)
	}
	return filepath.Join(userHome, ".uniattend"), nil
}

func readFile(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return false, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s", path), err).
			WithSuggestion("Fix the YAML syntax or remove the file to use defaults")
	}
	return true, nil
}

// ReadFile loads only the config file at path over the defaults, without
// environment overrides. `config set` edits this view so env values are
// never written back.
func ReadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := readFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path with 0600 permissions.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config", err)
	}
	return nil
}
