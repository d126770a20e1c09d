package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvconnect/kvconnect/internal/config"
	"github.com/kvconnect/kvconnect/pkg/schema"
)

// Version is set via ldflags during build.
var Version string

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kvconnect",
	Short: "Define, validate and resolve key-value store connection configurations",
	Long: `kvconnect describes the connection configuration surface of a key-value
store client as a declarative schema: typed fields with conditional
visibility, option groups and defaults. It validates partial value sets and
resolves them into a single effective configuration for the connection
factory.

Use the --config flag to point at a values file, or set the fields below in
the environment or a viper-compatible config file.
`,
}

// Execute runs the CLI.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "values file (default is ./connection.yaml)")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + "\n" + buildFieldsHelp())

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if Version != "" {
			fmt.Println(Version)
		} else {
			fmt.Println("dev")
		}
	},
}

func initConfig() {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			log.Fatalf("Values file does not exist: %s", cfgFile)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("connection")
	}

	// Nested keys map to underscore-separated env names (tls.caCert is
	// TLS_CACERT); dots are not valid in environment variables.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Infof("Using values file: %s", viper.ConfigFileUsed())
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	logConfigValues()
}

// logConfigValues logs the assembled value set with secrets redacted.
func logConfigValues() {
	cfg := config.FromViper()
	if len(cfg) == 0 {
		return
	}
	log.Info("Configuration values:")
	for _, f := range config.Schema().Fields() {
		value, exists := cfg[f.Key]
		if !exists {
			continue
		}
		if f.Type == schema.TypeRecord {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for _, nf := range f.Fields {
				if nv, ok := nested[nf.Key]; ok {
					log.Infof("%s.%s: %v", f.Key, nf.Key, displayValue(nf, nv))
				}
			}
			continue
		}
		log.Infof("%s: %v", f.Key, displayValue(f, value))
	}
}

func displayValue(f schema.Field, value any) any {
	if f.Secret {
		if s, ok := value.(string); !ok || s != "" {
			return "---redacted---"
		}
	}
	return value
}

// buildFieldsHelp renders every schema field for the help footer.
func buildFieldsHelp() string {
	var sb strings.Builder

	sb.WriteString("CONFIGURATION FIELDS\n\n")
	writeFieldsHelp(&sb, "", config.Schema().Fields())
	sb.WriteString("\n")
	return sb.String()
}

func writeFieldsHelp(sb *strings.Builder, prefix string, fields []schema.Field) {
	for _, f := range fields {
		name := f.Key
		if prefix != "" {
			name = prefix + "." + f.Key
		}

		line := fmt.Sprintf("  %-24s %-8s", name, "("+string(f.Type)+")")
		if f.Description != "" {
			line += " " + f.Description
		}
		if f.Default != nil {
			defaultStr := fmt.Sprintf("%v", f.Default)
			if defaultStr != "" && defaultStr != "false" {
				line += fmt.Sprintf(" [Default: %s]", defaultStr)
			}
		}
		if len(f.Options) > 0 {
			line += fmt.Sprintf(" [Options: %s]", strings.Join(f.Options, ", "))
		}
		if len(f.VisibleWhen) > 0 {
			line += fmt.Sprintf(" [Requires: %s]", formatClauses(f.VisibleWhen))
		}
		if f.Required {
			line += " [Required]"
		}

		sb.WriteString(line + "\n")
		if f.Type == schema.TypeRecord {
			writeFieldsHelp(sb, name, f.Fields)
		}
	}
}

// formatClauses renders a visibility predicate as "field=a|b,other=true".
func formatClauses(clauses []schema.Clause) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		values := make([]string, len(c.AnyOf))
		for j, v := range c.AnyOf {
			values[j] = fmt.Sprintf("%v", v)
		}
		parts[i] = c.Field + "=" + strings.Join(values, "|")
	}
	return strings.Join(parts, ",")
}
