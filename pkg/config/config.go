package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthorityConfig selects the security authority. Mock replaces the RACF
// callable service with a simulated one; the Mock* fields shape its answer.
type AuthorityConfig struct {
	Mock              bool   `mapstructure:"mock"`
	MockTicket        string `mapstructure:"mock_ticket"`
	MockReturnCode    uint32 `mapstructure:"mock_return_code"`
	MockSAFReturnCode uint32 `mapstructure:"mock_saf_rc"`
	MockRACFReturn    uint32 `mapstructure:"mock_racf_rc"`
	MockRACFReason    uint32 `mapstructure:"mock_racf_reason"`
}

// PolicyConfig holds the optional pre-flight policy
type PolicyConfig struct {
	File string `mapstructure:"file"`
}

// MetricsConfig holds Prometheus textfile configuration
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// Config is the complete genptkt configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Authority AuthorityConfig `mapstructure:"authority"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	OTel      OTelConfig      `mapstructure:"otel"`
}

// InitViper initializes Viper with common settings
func InitViper(toolName string) *viper.Viper {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(fmt.Sprintf("/etc/%s/", toolName))

	// Environment variable settings
	v.SetEnvPrefix("PASSTICKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")

	// The real callable service unless asked otherwise
	v.SetDefault("authority.mock", false)
	v.SetDefault("authority.mock_ticket", "")
	v.SetDefault("authority.mock_return_code", 0)
	v.SetDefault("authority.mock_saf_rc", 0)
	v.SetDefault("authority.mock_racf_rc", 0)
	v.SetDefault("authority.mock_racf_reason", 0)

	v.SetDefault("policy.file", "")
	v.SetDefault("metrics.textfile", "")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.collector_endpoint", "")
}

// Load reads the configuration from file and environment
func Load(v *viper.Viper, cfg any) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// BindFlags binds common CLI flags to Viper
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("mock", false, "Use a simulated security authority instead of RACF")
	cmd.PersistentFlags().String("policy-file", "", "Rego policy deciding which user/application pairs may be requested")
	cmd.PersistentFlags().String("metrics-textfile", "", "Write Prometheus metrics to this file (node exporter textfile format)")
	cmd.PersistentFlags().Bool("otel-enabled", false, "Enable OpenTelemetry tracing")
	cmd.PersistentFlags().String("otel-collector-endpoint", "", "OpenTelemetry collector gRPC endpoint (e.g. localhost:4317)")

	v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("authority.mock", cmd.PersistentFlags().Lookup("mock"))
	v.BindPFlag("policy.file", cmd.PersistentFlags().Lookup("policy-file"))
	v.BindPFlag("metrics.textfile", cmd.PersistentFlags().Lookup("metrics-textfile"))
	v.BindPFlag("otel.enabled", cmd.PersistentFlags().Lookup("otel-enabled"))
	v.BindPFlag("otel.collector_endpoint", cmd.PersistentFlags().Lookup("otel-collector-endpoint"))
}
