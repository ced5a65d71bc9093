package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	Store  StoreConfig  `yaml:"store"`
	Notify NotifyConfig `yaml:"notify"`
	Seed   SeedConfig   `yaml:"seed"`
}

type StoreConfig struct {
	// Backend selects "memory" or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the sqlite database file; ignored by the memory backend.
	Path string `yaml:"path"`
}

type NotifyConfig struct {
	Topic string `yaml:"topic"`
}

// SeedConfig provisions accounts and demo data at startup. Accounts carry an
// explicit role; this is how seller and admin logins come to exist.
type SeedConfig struct {
	Accounts []SeedAccount `yaml:"accounts"`
	Products []SeedProduct `yaml:"products"`
	Sellers  []SeedSeller  `yaml:"sellers"`
}

type SeedAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Email    string `yaml:"email"`
}

type SeedProduct struct {
	Name        string `yaml:"name"`
	Weight      string `yaml:"weight"`
	Rate        int    `yaml:"rate"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
}

type SeedSeller struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
}

func Default() Config {
	return Config{
		Listen: ":8080",
		Store:  StoreConfig{Backend: BackendMemory, Path: "freshbasket.db"},
		Notify: NotifyConfig{Topic: "FreshBasket"},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Store.Backend != BackendMemory && c.Store.Backend != BackendSQLite {
		return fmt.Errorf("invalid store backend %q: must be %q or %q", c.Store.Backend, BackendMemory, BackendSQLite)
	}
	if c.Store.Backend == BackendSQLite && c.Store.Path == "" {
		return fmt.Errorf("store path is required for the sqlite backend")
	}
	for _, a := range c.Seed.Accounts {
		switch a.Role {
		case "user", "seller", "admin":
		default:
			return fmt.Errorf("seed account %q has invalid role %q", a.Username, a.Role)
		}
	}
	return nil
}
