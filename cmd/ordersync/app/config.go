package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/caretide/ordersync/internal/transport"
	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/orders"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Portal configuration
	PortalBaseURL   string `validate:"omitempty,url"`
	PortalAPIKey    string
	PortalAuthStyle string `validate:"omitempty,auth_style"`

	// Run configuration
	InputFile       string
	OutputDir       string
	KnownFieldsFile string
	CachePatients   bool
	PatientCacheTTL time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// auth_style is custom because ForStyle accepts parameterized styles
	// like "header:X-Api-Key" that no built-in tag covers.
	_ = validate.RegisterValidation("auth_style", validAuthStyle)
}

// validAuthStyle accepts the styles transport.ForStyle understands.
func validAuthStyle(fl validator.FieldLevel) bool {
	style := fl.Field().String()
	if i := strings.IndexByte(style, ':'); i >= 0 {
		style = style[:i]
	}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", transport.StyleNone, transport.StyleBearer, transport.StyleHeader, transport.StyleQuery:
		return true
	default:
		return false
	}
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.ordersync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind portal settings commonly kept in .env files
	bindPortalKeys()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".ordersync")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Portal configuration
		PortalBaseURL:   viper.GetString("portal_base_url"),
		PortalAPIKey:    viper.GetString("portal_api_key"),
		PortalAuthStyle: viper.GetString("portal_auth_style"),

		// Run configuration
		InputFile:       viper.GetString("input_file"),
		OutputDir:       viper.GetString("output_dir"),
		KnownFieldsFile: viper.GetString("known_fields_file"),
		CachePatients:   viper.GetBool("cache_patients"),
		PatientCacheTTL: viper.GetDuration("patient_cache_ttl"),

		// Logging configuration
		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.InputFile == "" {
		config.InputFile = constants.DefaultInputFile
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.PatientCacheTTL == 0 {
		config.PatientCacheTTL = constants.PatientCacheTTL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for invalid values. Absent optional
// values pass; a present value must be well formed.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewConfigError(fe.Field(), fmt.Sprintf("invalid value %v (rule %s)", fe.Value(), fe.Tag()), err)
	}
	return errors.NewConfigError("", err.Error(), err)
}

// AuthStyle resolves the transport auth style for the portal client.
// An explicit portal_auth_style wins; otherwise a configured API key
// implies bearer and no key means no authentication.
func (c *Config) AuthStyle() string {
	if c.PortalAuthStyle != "" {
		return c.PortalAuthStyle
	}
	if c.PortalAPIKey != "" {
		return transport.StyleBearer
	}
	return transport.StyleNone
}

// KnownFields resolves the known order field allowlist: the override file
// when one is configured, otherwise the built-in default list.
func (c *Config) KnownFields() ([]string, error) {
	if c.KnownFieldsFile == "" {
		return orders.DefaultKnownFields(), nil
	}
	return orders.LoadKnownFields(c.KnownFieldsFile)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindPortalKeys explicitly binds portal environment variables to Viper.
func bindPortalKeys() {
	// Portal settings that are usually kept in .env files
	keys := []string{
		"PORTAL_BASE_URL",
		"PORTAL_API_KEY",
		"PORTAL_AUTH_STYLE",
		"INPUT_FILE",
		"OUTPUT_DIR",
		"KNOWN_FIELDS_FILE",
		"CACHE_PATIENTS",
		"PATIENT_CACHE_TTL",
	}

	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
