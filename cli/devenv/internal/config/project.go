package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = "devenv.yaml"

type ComposeConfig struct {
	Engine  string   `yaml:"engine" toml:"engine"`
	Command []string `yaml:"command" toml:"command"`
	Files   []string `yaml:"files" toml:"files"`
}

type Services struct {
	App    string `yaml:"app" toml:"app"`
	Node   string `yaml:"node" toml:"node"`
	Python string `yaml:"python" toml:"python"`
	DB     string `yaml:"db" toml:"db"`
	Auth   string `yaml:"auth" toml:"auth"`
}

type DBConfig struct {
	User string `yaml:"user" toml:"user"`
}

type AuthConfig struct {
	ReloadCommand []string `yaml:"reload_command" toml:"reload_command"`
}

type DepsConfig struct {
	Manifest     string `yaml:"manifest" toml:"manifest"`
	Requirements string `yaml:"requirements" toml:"requirements"`
	CacheFile    string `yaml:"cache_file" toml:"cache_file"`
}

type HostsConfig struct {
	Aliases []string `yaml:"aliases" toml:"aliases"`
	IP      string   `yaml:"ip" toml:"ip"`
}

type SSHConfig struct {
	Key     string   `yaml:"key" toml:"key"`
	UserEnv string   `yaml:"user_env" toml:"user_env"`
	Tunnels []string `yaml:"tunnels" toml:"tunnels"`
}

type LocalConfig struct {
	Path        string `yaml:"path" toml:"path"`
	ProfilesDir string `yaml:"profiles_dir" toml:"profiles_dir"`
}

// ProjectConfig is the content of devenv.yaml merged over Defaults.
type ProjectConfig struct {
	Project     string            `yaml:"project" toml:"project"`
	Compose     ComposeConfig     `yaml:"compose" toml:"compose"`
	Services    Services          `yaml:"services" toml:"services"`
	Databases   []string          `yaml:"databases" toml:"databases"`
	DB          DBConfig          `yaml:"db" toml:"db"`
	Auth        AuthConfig        `yaml:"auth" toml:"auth"`
	Deps        DepsConfig        `yaml:"deps" toml:"deps"`
	Hosts       HostsConfig       `yaml:"hosts" toml:"hosts"`
	SSH         SSHConfig         `yaml:"ssh" toml:"ssh"`
	LocalConfig LocalConfig       `yaml:"local_config" toml:"local_config"`
	Env         map[string]string `yaml:"env" toml:"env"`
}

// Defaults returns the configuration used when devenv.yaml is absent.
func Defaults() ProjectConfig {
	return ProjectConfig{
		Compose: ComposeConfig{Engine: "docker", Command: []string{"docker", "compose"}},
		Services: Services{
			App:    "app",
			Node:   "frontend",
			Python: "app",
			DB:     "db",
			Auth:   "app",
		},
		Databases: []string{"app", "app_test"},
		DB:        DBConfig{User: "postgres"},
		Auth:      AuthConfig{ReloadCommand: []string{"python", "-m", "scripts.load_auth_fixtures"}},
		Deps: DepsConfig{
			Manifest:     "package.json",
			Requirements: "requirements.txt",
			CacheFile:    filepath.Join(".devenv", "manifest.sha256"),
		},
		Hosts: HostsConfig{
			Aliases: []string{"devenv.test", "api.devenv.test"},
			IP:      "127.0.0.1",
		},
		SSH: SSHConfig{
			Key:     "id_rsa",
			UserEnv: "DEVENV_USER",
			Tunnels: []string{"5432:localhost:5432"},
		},
		LocalConfig: LocalConfig{
			Path:        filepath.Join("config", "local.yaml"),
			ProfilesDir: filepath.Join("config", "profiles"),
		},
		Env: map[string]string{},
	}
}

// ReadProject parses the project file at path over Defaults. A missing file is
// not an error. The returned string is the project root (the file's directory).
func ReadProject(path string) (ProjectConfig, string, error) {
	cfg := Defaults()
	path = strings.TrimSpace(path)
	if path == "" {
		path = FileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return cfg, "", err
	}
	root := filepath.Dir(abs)
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, root, nil
		}
		return cfg, root, err
	}
	if err := decode(abs, data, &cfg); err != nil {
		return cfg, root, fmt.Errorf("parse %s: %w", abs, err)
	}
	if cfg.Env == nil {
		cfg.Env = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, root, fmt.Errorf("%s: %w", abs, err)
	}
	return cfg, root, nil
}

// decode picks the format from the file extension; anything but .toml is YAML.
func decode(path string, data []byte, cfg *ProjectConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the actions cannot work with.
func (c ProjectConfig) Validate() error {
	if len(c.Compose.Command) == 0 {
		return errors.New("compose.command must not be empty")
	}
	if strings.TrimSpace(c.Compose.Engine) == "" {
		return errors.New("compose.engine must be set")
	}
	if strings.TrimSpace(c.Services.App) == "" {
		return errors.New("services.app must be set")
	}
	if strings.TrimSpace(c.Deps.Manifest) == "" {
		return errors.New("deps.manifest must be set")
	}
	if strings.TrimSpace(c.SSH.UserEnv) == "" {
		return errors.New("ssh.user_env must be set")
	}
	return nil
}

// ApplyEnv exports the env map without overriding variables already set.
func (c ProjectConfig) ApplyEnv() {
	for k, v := range c.Env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		_ = os.Setenv(k, v)
	}
}
