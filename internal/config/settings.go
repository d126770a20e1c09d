package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kvconnect/kvconnect/pkg/schema"
)

// Settings is the typed effective connection configuration handed to the
// connection factory. Field names match the schema keys exactly; fields
// hidden by the chosen topology or auth mode stay at their zero value.
type Settings struct {
	ConnectionType string `mapstructure:"connectionType"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ClusterHosts   string `mapstructure:"clusterHosts"`
	SentinelHosts  string `mapstructure:"sentinelHosts"`
	MasterName     string `mapstructure:"masterName"`
	Database       int    `mapstructure:"database"`
	AuthType       string `mapstructure:"authType"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	SSL            bool   `mapstructure:"ssl"`

	TLS    TLSSettings    `mapstructure:"tls"`
	Tuning TuningSettings `mapstructure:"tuning"`
}

// TLSSettings carries the certificate material for an encrypted connection.
type TLSSettings struct {
	CACert             string `mapstructure:"caCert"`
	ClientCert         string `mapstructure:"clientCert"`
	ClientKey          string `mapstructure:"clientKey"`
	RejectUnauthorized bool   `mapstructure:"rejectUnauthorized"`
	ServerName         string `mapstructure:"serverName"`
}

// TuningSettings carries timeouts and retry limits.
type TuningSettings struct {
	ConnectTimeout int `mapstructure:"connectTimeout"`
	ReadTimeout    int `mapstructure:"readTimeout"`
	WriteTimeout   int `mapstructure:"writeTimeout"`
	MaxRetries     int `mapstructure:"maxRetries"`
	PoolSize       int `mapstructure:"poolSize"`
}

// NewSettings decodes a resolved configuration into Settings.
func NewSettings(resolved schema.Effective) (Settings, error) {
	var s Settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &s,
		ErrorUnused: false,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(map[string]any(resolved)); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// ResolveSettings resolves a value set and decodes it in one step.
func ResolveSettings(cfg Config) (Settings, schema.Errors, error) {
	resolved, errs := Resolve(cfg)
	if len(errs) > 0 {
		return Settings{}, errs, nil
	}
	settings, err := NewSettings(resolved)
	return settings, nil, err
}
