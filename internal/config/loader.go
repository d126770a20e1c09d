package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kvconnect/kvconnect/pkg/schema"
)

// LoadConfig reads and parses a connection values file.
func LoadConfig(filepath string) (Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// FromViper assembles a value set from viper's merged sources (config file,
// environment). Only keys the schema declares are taken, so unrelated
// environment variables cannot leak into resolution. Group fields are
// looked up under dotted keys; with the env key replacer installed at
// startup these also resolve from underscore-separated variables
// (tls.caCert from TLS_CACERT).
func FromViper() Config {
	cfg := Config{}
	for _, f := range connectionSchema.Fields() {
		if f.Type == schema.TypeRecord {
			nested := map[string]any{}
			for _, nf := range f.Fields {
				key := f.Key + "." + nf.Key
				if viper.IsSet(key) {
					nested[nf.Key] = viper.Get(key)
				}
			}
			if len(nested) > 0 {
				cfg[f.Key] = nested
			}
			continue
		}
		if viper.IsSet(f.Key) {
			cfg[f.Key] = viper.Get(f.Key)
		}
	}
	return cfg
}
