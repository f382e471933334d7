// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the Linear GraphQL API endpoint used when no override
// is configured.
const DefaultEndpoint = "https://api.linear.app/graphql"

// Config holds all configuration parameters for the application.
type Config struct {
	Linear LinearConfig
}

// LinearConfig holds Linear specific configuration.
type LinearConfig struct {
	APIKey   string
	Endpoint string
}

// LoadConfig initializes and loads configuration from environment variables.
//
// The API key is resolved with the following precedence: the explicit value
// passed by the caller (typically a --api-key flag), then the trimmed output
// of the shell command named by LINEAR_API_KEY_CMD, then LINEAR_API_KEY,
// then the first LINEAR_-prefixed environment variable whose name contains
// KEY or TOKEN.
func LoadConfig(explicitKey string) (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("linear.api_key", "LINEAR_API_KEY")
	v.BindEnv("linear.api_key_cmd", "LINEAR_API_KEY_CMD")
	v.BindEnv("linear.endpoint", "LINEAR_ENDPOINT")

	apiKey := strings.TrimSpace(explicitKey)
	if apiKey == "" {
		if cmd := v.GetString("linear.api_key_cmd"); cmd != "" {
			out, err := runKeyCommand(cmd)
			if err != nil {
				return nil, fmt.Errorf("failed to run LINEAR_API_KEY_CMD: %w", err)
			}
			apiKey = out
		}
	}
	if apiKey == "" {
		apiKey = v.GetString("linear.api_key")
	}
	if apiKey == "" {
		apiKey = scanProviderEnv()
	}

	endpoint := v.GetString("linear.endpoint")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Config{
		Linear: LinearConfig{
			APIKey:   apiKey,
			Endpoint: endpoint,
		},
	}, nil
}

// ValidateConfig ensures that all required configuration values are provided.
func ValidateConfig(config *Config) error {
	var missingVars []string

	if config.Linear.APIKey == "" {
		missingVars = append(missingVars, "LINEAR_API_KEY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// runKeyCommand executes a shell command and returns its trimmed output.
func runKeyCommand(command string) (string, error) {
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// scanProviderEnv returns the value of the first LINEAR_-prefixed environment
// variable whose name contains KEY or TOKEN. This is the last-resort tier of
// the credential precedence chain.
func scanProviderEnv() string {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "LINEAR_") {
			continue
		}
		if strings.Contains(name, "KEY") || strings.Contains(name, "TOKEN") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
