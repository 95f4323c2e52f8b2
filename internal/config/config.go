// Package config loads and validates application settings. The core
// packages never read configuration themselves; cmd/vaultura resolves a
// Config and threads the values through constructors.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/zombocoder/vaultura/internal/crypto"
)

const appDirName = "vaultura"

var ErrNotFound = errors.New("config: file not found")

type Config struct {
	VaultPath string `yaml:"vault_path" validate:"required"`

	// AutoLockSecs of idle time before the vault locks itself; 0 disables.
	AutoLockSecs int `yaml:"auto_lock_secs" validate:"min=0"`

	// ClipboardClearSecs before copied secrets are wiped from the
	// clipboard; 0 disables the wipe.
	ClipboardClearSecs int `yaml:"clipboard_clear_secs" validate:"min=0"`

	KDFMemoryKiB   uint32 `yaml:"kdf_memory_kib" validate:"min=8"`
	KDFTimeCost    uint32 `yaml:"kdf_time_cost" validate:"min=1"`
	KDFParallelism uint32 `yaml:"kdf_parallelism" validate:"min=1,max=255"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// UseKeyring stores the master password in the OS keyring after a
	// successful unlock so the next unlock can be offered without typing.
	UseKeyring bool `yaml:"use_keyring"`
}

func Default() Config {
	return Config{
		VaultPath:          DefaultVaultPath(),
		AutoLockSecs:       300,
		ClipboardClearSecs: 30,
		KDFMemoryKiB:       64 * 1024,
		KDFTimeCost:        3,
		KDFParallelism:     4,
		LogLevel:           "info",
	}
}

func (c Config) KDFParams() crypto.KDFParams {
	return crypto.KDFParams{
		Memory:      c.KDFMemoryKiB,
		Time:        c.KDFTimeCost,
		Parallelism: c.KDFParallelism,
	}
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads the config from the default location, writing and returning
// the defaults when no file exists yet.
func Load() (Config, error) {
	path := DefaultConfigPath()
	cfg, err := LoadFrom(path)
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		if saveErr := cfg.Save(path); saveErr != nil {
			return Config{}, saveErr
		}
		return cfg, nil
	}
	return cfg, err
}

// LoadFrom reads and validates a config file at an explicit path. A missing
// file is an error here, unlike Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, "config.yaml")
	}
	return "vaultura.yaml"
}

func DefaultVaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, "vault.vltr")
	}
	return "vault.vltr"
}
