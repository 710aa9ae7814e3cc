package settings

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/jenkins-release/jenkins-release/errs"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "jenkins_release"

// FS is the filesystem settings are read from. Tests swap in a memory FS.
var FS = &afero.Afero{Fs: afero.NewOsFs()}

// Config is the connection configuration of a CLI run. It is built once at
// startup and not changed afterwards.
type Config struct {
	Host       string        `yaml:"host"`
	User       string        `yaml:"user"`
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
	Debug      bool          `yaml:"-"`
	FileUsed   string        `yaml:"-"`
	HTTPClient *http.Client  `yaml:"-"`
}

// Load reads the .env file of the working directory into the environment,
// then the settings file at path, then the environment. An empty path means
// DefaultConfigPath.
func (cfg *Config) Load(path string) error {
	if err := LoadDotEnv(".env"); err != nil {
		return err
	}

	if path == "" {
		path = DefaultConfigPath()
	}
	if err := cfg.LoadFromDisk(path); err != nil {
		return err
	}

	return cfg.LoadFromEnv(EnvPrefix)
}

// LoadFromDisk reads a YAML settings file, expanding ${VAR} references from
// the environment first. A missing file leaves cfg untouched.
func (cfg *Config) LoadFromDisk(path string) error {
	content, err := FS.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errs.Config(errors.Wrapf(err, "reading settings file %s", path))
	}
	cfg.FileUsed = path

	expanded, err := envsubst.String(string(content))
	if err != nil {
		return errs.Config(errors.Wrapf(err, "expanding variables in %s", path))
	}

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return errs.Config(errors.Wrapf(err, "parsing settings file %s", path))
	}
	return nil
}

// LoadFromEnv will read from environment variables of the given prefix for host, user, token and timeout.
func (cfg *Config) LoadFromEnv(prefix string) error {
	if host := ReadFromEnv(prefix, "host"); host != "" {
		cfg.Host = host
	}

	if user := ReadFromEnv(prefix, "user"); user != "" {
		cfg.User = user
	}

	if token := ReadFromEnv(prefix, "token"); token != "" {
		cfg.Token = token
	}

	if timeout := ReadFromEnv(prefix, "timeout"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return errs.Config(errors.Wrapf(err, "parsing %s", EnvName(prefix, "timeout")))
		}
		cfg.Timeout = d
	}

	return nil
}

// Validate reports whether the config can be used to reach a server.
func (cfg *Config) Validate() error {
	if cfg.Host == "" {
		return errs.Configf("no Jenkins host configured: set --host, %s or host in %s",
			EnvName(EnvPrefix, "host"), DefaultConfigPath())
	}
	if cfg.Timeout < 0 {
		return errs.Configf("timeout must not be negative, got %s", cfg.Timeout)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set win. A missing file is ignored.
func LoadDotEnv(path string) error {
	f, err := FS.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errs.Config(errors.Wrapf(err, "opening %s", path))
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return errs.Config(errors.Wrapf(err, "parsing %s", path))
	}
	for k, v := range vars {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errs.Config(err)
		}
	}
	return nil
}

// EnvName returns the environment variable name for prefix and field.
func EnvName(prefix, field string) string {
	return strings.ToUpper(strings.Join([]string{prefix, field}, "_"))
}

// ReadFromEnv takes a prefix and field to search the environment for after capitalizing and joining them with an underscore.
func ReadFromEnv(prefix, field string) string {
	return os.Getenv(EnvName(prefix, field))
}

// configFilename returns the name of the cli config file
func configFilename() string {
	return "cli.yml"
}

// SettingsPath returns the path of the CLI settings directory
func SettingsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jenkins-release")
}

// DefaultConfigPath returns the settings file used when --config is not given
func DefaultConfigPath() string {
	return filepath.Join(SettingsPath(), configFilename())
}
