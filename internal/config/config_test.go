package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearLinearEnv unsets every credential-bearing variable the loader reads,
// restoring them when the test finishes.
func clearLinearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LINEAR_API_KEY", "LINEAR_API_KEY_CMD", "LINEAR_ENDPOINT", "LINEAR_ACCESS_TOKEN"} {
		if orig, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(name) })
		}
		os.Unsetenv(name)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		explicitKey string
		env         map[string]string
		wantKey     string
	}{
		{
			name:        "Explicit flag wins over everything",
			explicitKey: "flag-key",
			env: map[string]string{
				"LINEAR_API_KEY_CMD": "echo cmd-key",
				"LINEAR_API_KEY":     "env-key",
			},
			wantKey: "flag-key",
		},
		{
			name: "Key command wins over plain env var",
			env: map[string]string{
				"LINEAR_API_KEY_CMD": "echo '  cmd-key  '",
				"LINEAR_API_KEY":     "env-key",
			},
			wantKey: "cmd-key",
		},
		{
			name: "Named env var",
			env: map[string]string{
				"LINEAR_API_KEY": "env-key",
			},
			wantKey: "env-key",
		},
		{
			name: "Provider-prefixed fallback",
			env: map[string]string{
				"LINEAR_ACCESS_TOKEN": "fallback-key",
			},
			wantKey: "fallback-key",
		},
		{
			name:    "Nothing set",
			wantKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLinearEnv(t)
			for name, value := range tt.env {
				require.NoError(t, os.Setenv(name, value))
			}

			config, err := LoadConfig(tt.explicitKey)
			require.NoError(t, err)
			require.NotNil(t, config)
			assert.Equal(t, tt.wantKey, config.Linear.APIKey)
		})
	}
}

func TestLoadConfigEndpoint(t *testing.T) {
	clearLinearEnv(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, config.Linear.Endpoint)

	require.NoError(t, os.Setenv("LINEAR_ENDPOINT", "http://localhost:8080/graphql"))
	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/graphql", config.Linear.Endpoint)
}

func TestValidateConfig(t *testing.T) {
	err := ValidateConfig(&Config{Linear: LinearConfig{APIKey: "lin_api_123"}})
	assert.NoError(t, err)

	err = ValidateConfig(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LINEAR_API_KEY")
}
