package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotEnoughServers = errors.New("there are not enough specified servers")
	ErrEmptyServerName  = errors.New("server name is not specified")
)

const (
	minServerCount = 2

	defaultPort              = 8080
	defaultLogLevel          = "info"
	defaultSyncPeriod        = 5 * time.Second
	defaultHealthCheckPeriod = 5 * time.Second
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Config struct {
	Name              string         `yaml:"name"`
	Port              int            `yaml:"port"`
	LogLevel          string         `yaml:"log_level"`
	SyncPeriod        time.Duration  `yaml:"sync_period"`
	HealthCheckPeriod time.Duration  `yaml:"health_check_period"`
	Servers           []ServerConfig `yaml:"outer_servers"`
}

// New reads the config from cfgPath. SERVER_NAME and SERVER_PORT override
// the name and port from the file.
func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, errors.WithMessage(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Config{
		Port:              defaultPort,
		LogLevel:          defaultLogLevel,
		SyncPeriod:        defaultSyncPeriod,
		HealthCheckPeriod: defaultHealthCheckPeriod,
	}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if name := os.Getenv("SERVER_NAME"); name != "" {
		cfg.Name = name
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port, err = strconv.Atoi(port)
		if err != nil {
			return Config{}, errors.WithMessagef(err, "parse SERVER_PORT '%s'", port)
		}
	}
	if cfg.Name == "" {
		return Config{}, ErrEmptyServerName
	}
	if len(cfg.Servers) < minServerCount {
		return Config{}, ErrNotEnoughServers
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
