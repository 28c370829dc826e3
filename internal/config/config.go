package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath        = "/etc/clickshare/config.yaml"
	DefaultListenAddr  = ":9180"
	DefaultTimeoutMS   = 10000
	DefaultCooldownMS  = 3000
	DefaultPollMS      = 30000
	DefaultTopicPrefix = "clickshare"
	DefaultClientID    = "clickshare-monitor"
)

// Config is the daemon configuration. MQTT and Archive are optional
// sections; a nil section disables the feature.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Devices []DeviceConfig `yaml:"devices"`
	Poll    PollConfig     `yaml:"poll"`
	MQTT    *MQTTConfig    `yaml:"mqtt"`
	Archive *ArchiveConfig `yaml:"archive"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DeviceConfig describes one ClickShare unit. Password may be inline or in
// a secret file, never both.
type DeviceConfig struct {
	Name         string `yaml:"name"`
	BaseURL      string `yaml:"base_url"`
	Login        string `yaml:"login"`
	Password     string `yaml:"password"`
	PasswordFile string `yaml:"password_file"`
	InsecureTLS  bool   `yaml:"insecure_tls"`
	TimeoutMS    int    `yaml:"timeout_ms"`
	CooldownMS   int    `yaml:"cooldown_ms"`
}

type PollConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	TopicPrefix  string `yaml:"topic_prefix"`
	ClientID     string `yaml:"client_id"`
	Username     string `yaml:"username"`
	PasswordFile string `yaml:"password_file"`
}

type ArchiveConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	AccessKeyFile string `yaml:"access_key_file"`
	SecretKeyFile string `yaml:"secret_key_file"`
	Prefix        string `yaml:"prefix"`
}

// Load parses the YAML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Poll.IntervalMS == 0 {
		cfg.Poll.IntervalMS = DefaultPollMS
	}
	for i := range cfg.Devices {
		if cfg.Devices[i].TimeoutMS == 0 {
			cfg.Devices[i].TimeoutMS = DefaultTimeoutMS
		}
		if cfg.Devices[i].CooldownMS == 0 {
			cfg.Devices[i].CooldownMS = DefaultCooldownMS
		}
	}
	if cfg.MQTT != nil {
		if cfg.MQTT.TopicPrefix == "" {
			cfg.MQTT.TopicPrefix = DefaultTopicPrefix
		}
		if cfg.MQTT.ClientID == "" {
			cfg.MQTT.ClientID = DefaultClientID
		}
	}
}

// Validate enforces required invariants beyond YAML typing.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if len(cfg.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	if cfg.Poll.IntervalMS <= 0 {
		return fmt.Errorf("poll.interval_ms must be positive")
	}

	seen := make(map[string]bool)
	for i, device := range cfg.Devices {
		field := fmt.Sprintf("devices[%d]", i)
		if device.Name == "" {
			return fmt.Errorf("%s.name is required", field)
		}
		if seen[device.Name] {
			return fmt.Errorf("duplicate device name: %s", device.Name)
		}
		seen[device.Name] = true

		parsed, err := url.Parse(device.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s.base_url %q is not a valid URL", field, device.BaseURL)
		}
		if device.Login == "" {
			return fmt.Errorf("%s.login is required", field)
		}
		if device.Password == "" && device.PasswordFile == "" {
			return fmt.Errorf("%s needs password or password_file", field)
		}
		if device.Password != "" && device.PasswordFile != "" {
			return fmt.Errorf("%s sets both password and password_file", field)
		}
		if device.TimeoutMS <= 0 {
			return fmt.Errorf("%s.timeout_ms must be positive", field)
		}
		if device.CooldownMS < 0 {
			return fmt.Errorf("%s.cooldown_ms must not be negative", field)
		}
	}

	if cfg.MQTT != nil && cfg.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required")
	}
	if cfg.Archive != nil {
		if cfg.Archive.Endpoint == "" {
			return fmt.Errorf("archive.endpoint is required")
		}
		if cfg.Archive.Bucket == "" {
			return fmt.Errorf("archive.bucket is required")
		}
		if cfg.Archive.AccessKeyFile == "" {
			return fmt.Errorf("archive.access_key_file is required")
		}
		if cfg.Archive.SecretKeyFile == "" {
			return fmt.Errorf("archive.secret_key_file is required")
		}
	}

	return nil
}

func (d DeviceConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMS) * time.Millisecond
}

func (d DeviceConfig) Cooldown() time.Duration {
	return time.Duration(d.CooldownMS) * time.Millisecond
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

// ResolvePassword returns the inline password or the trimmed content of the
// password file.
func (d DeviceConfig) ResolvePassword() (string, error) {
	if d.Password != "" {
		return d.Password, nil
	}
	return ReadSecretFile(d.PasswordFile)
}

func (m MQTTConfig) ResolvePassword() (string, error) {
	if m.PasswordFile == "" {
		return "", nil
	}
	return ReadSecretFile(m.PasswordFile)
}

// ReadSecretFile reads a credential file, trimming the trailing newline
// secret managers tend to leave in place.
func ReadSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
