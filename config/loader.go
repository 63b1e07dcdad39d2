package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configName is the config file name without extension.
const configName = "recast"

const configType = "yaml"

// envPrefix is the environment variable prefix, as in RECAST_CONCURRENCY.
const envPrefix = "RECAST"

// Load reads the configuration from path, or from recast.yaml in the
// current or home directory when path is empty, then applies RECAST_*
// environment variables and defaults. A missing default file is not an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Debugf("using config %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("log.verbosity", d.Log.Verbosity)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("maven.repository", d.Maven.Repository)
}

// Write stores cfg as YAML at path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
