package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the service configuration, loaded from a yaml file.
type ServerConfig struct {
	// ServerPort is the port the API listens on.
	ServerPort string `yaml:"port"`

	// DBURI is the postgres connection string.
	DBURI string `yaml:"dbURI"`

	// SchemaRepository is the directory of numbered schema revisions.
	// Empty disables schema version management.
	SchemaRepository string `yaml:"schemaRepository,omitempty"`

	Session SessionConfig `yaml:"session"`

	Auth AuthConfig `yaml:"auth"`
}

type SessionConfig struct {
	// TTL is how long an untouched review loop survives before it is
	// discarded. Zero falls back to 30 minutes.
	TTL Duration `yaml:"ttl,omitempty"`

	// Redis is the address ("host:port") of a shared session store.
	// Empty keeps sessions in process memory.
	Redis string `yaml:"redis,omitempty"`
}

type AuthConfig struct {
	// SignKey verifies bearer tokens (HS256).
	SignKey string `yaml:"signKey"`
}

const DefaultSessionTTL = 30 * time.Minute

func (s SessionConfig) EffectiveTTL() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return time.Duration(s.TTL)
}

// Duration is a time.Duration written as a string, e.g. "30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("not a duration: %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	var out ServerConfig
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
