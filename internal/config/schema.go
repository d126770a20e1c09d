package config

import (
	"github.com/kvconnect/kvconnect/pkg/schema"
)

// Connection topologies.
const (
	TopologyStandard = "standard"
	TopologySentinel = "sentinel"
	TopologyCluster  = "cluster"
)

// Authentication modes.
const (
	AuthNone     = "none"
	AuthPassword = "password"
	AuthUserPass = "userpass"
)

// connectionSchema is the single canonical definition of the connection
// configuration surface. Built once at startup; a broken definition stops
// the process immediately.
var connectionSchema = schema.MustNew(
	// Topology
	schema.Field{
		Key:         "connectionType",
		Type:        schema.TypeString,
		Default:     TopologyStandard,
		Options:     []string{TopologyStandard, TopologyCluster, TopologySentinel},
		Description: "How the client reaches the store: a single server, a cluster, or sentinel-managed failover.",
	},
	schema.Field{
		Key:         "host",
		Type:        schema.TypeString,
		Default:     "localhost",
		Description: "Server hostname or IP address.",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologyStandard}}},
	},
	schema.Field{
		Key:         "port",
		Type:        schema.TypeNumber,
		Default:     6379,
		Description: "Server port.",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologyStandard}}},
	},
	schema.Field{
		Key:         "clusterHosts",
		Type:        schema.TypeString,
		Default:     "",
		Required:    true,
		Description: "Comma-separated list of cluster seed nodes (e.g. \"10.0.0.1:6379,10.0.0.2:6379\").",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologyCluster}}},
	},
	schema.Field{
		Key:         "sentinelHosts",
		Type:        schema.TypeString,
		Default:     "",
		Required:    true,
		Description: "Comma-separated list of sentinel endpoints (e.g. \"10.0.0.1:26379,10.0.0.2:26379\").",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologySentinel}}},
	},
	schema.Field{
		Key:         "masterName",
		Type:        schema.TypeString,
		Default:     "",
		Required:    true,
		Description: "Name of the sentinel-monitored master to follow.",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologySentinel}}},
	},
	schema.Field{
		Key:         "database",
		Type:        schema.TypeNumber,
		Default:     0,
		Description: "Database index to select after connecting. Cluster deployments only support database 0.",
		VisibleWhen: []schema.Clause{{Field: "connectionType", AnyOf: []any{TopologyStandard, TopologySentinel}}},
	},

	// Authentication
	schema.Field{
		Key:         "authType",
		Type:        schema.TypeString,
		Default:     AuthNone,
		Options:     []string{AuthNone, AuthPassword, AuthUserPass},
		Description: "Authentication mode: none, requirepass-style password, or ACL username plus password.",
	},
	schema.Field{
		Key:         "username",
		Type:        schema.TypeString,
		Default:     "",
		Required:    true,
		Description: "ACL username.",
		VisibleWhen: []schema.Clause{{Field: "authType", AnyOf: []any{AuthUserPass}}},
	},
	schema.Field{
		Key:         "password",
		Type:        schema.TypeString,
		Default:     "",
		Required:    true,
		Secret:      true,
		Description: "Password for the selected authentication mode.",
		VisibleWhen: []schema.Clause{{Field: "authType", AnyOf: []any{AuthPassword, AuthUserPass}}},
	},

	// TLS
	schema.Field{
		Key:         "ssl",
		Type:        schema.TypeBool,
		Default:     false,
		Description: "Encrypt the connection with TLS.",
	},
	schema.Field{
		Key:         "tls",
		Type:        schema.TypeRecord,
		Description: "TLS parameters, only relevant when ssl is enabled.",
		VisibleWhen: []schema.Clause{{Field: "ssl", AnyOf: []any{true}}},
		Fields: []schema.Field{
			{
				Key:         "caCert",
				Type:        schema.TypeString,
				Default:     "",
				Secret:      true,
				Description: "CA certificate in PEM format used to verify the server.",
			},
			{
				Key:         "clientCert",
				Type:        schema.TypeString,
				Default:     "",
				Secret:      true,
				Description: "Client certificate in PEM format for mutual TLS.",
			},
			{
				Key:         "clientKey",
				Type:        schema.TypeString,
				Default:     "",
				Secret:      true,
				Description: "Client private key in PEM format for mutual TLS.",
			},
			{
				Key:         "rejectUnauthorized",
				Type:        schema.TypeBool,
				Default:     true,
				Description: "Verify the server certificate chain and hostname.",
			},
			{
				Key:         "serverName",
				Type:        schema.TypeString,
				Default:     "",
				Description: "Override the server name used for SNI and certificate verification.",
			},
		},
	},

	// Connection tuning
	schema.Field{
		Key:         "tuning",
		Type:        schema.TypeRecord,
		Description: "Timeouts and retry behavior.",
		Fields: []schema.Field{
			{
				Key:         "connectTimeout",
				Type:        schema.TypeNumber,
				Default:     10,
				Description: "Dial timeout in seconds.",
			},
			{
				Key:         "readTimeout",
				Type:        schema.TypeNumber,
				Default:     3,
				Description: "Socket read timeout in seconds.",
			},
			{
				Key:         "writeTimeout",
				Type:        schema.TypeNumber,
				Default:     3,
				Description: "Socket write timeout in seconds.",
			},
			{
				Key:         "maxRetries",
				Type:        schema.TypeNumber,
				Default:     3,
				Description: "Retries per command before giving up.",
			},
			{
				Key:         "poolSize",
				Type:        schema.TypeNumber,
				Default:     10,
				Description: "Maximum number of pooled connections.",
			},
		},
	},
)

// Schema returns the connection configuration schema.
func Schema() *schema.Schema {
	return connectionSchema
}

// Validate checks a value set against the schema and returns every problem
// found. An empty result means the configuration resolves cleanly.
func Validate(cfg Config) schema.Errors {
	_, errs := connectionSchema.Resolve(schema.Values(cfg))
	return errs
}

// Resolve produces the effective connection configuration for a value set.
func Resolve(cfg Config) (schema.Effective, schema.Errors) {
	return connectionSchema.Resolve(schema.Values(cfg))
}

// ActiveFields returns the fields currently active for a value set, in
// declaration order with dotted paths for nested fields.
func ActiveFields(cfg Config) []string {
	return connectionSchema.Evaluate(schema.Values(cfg))
}
