package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.AccountNumberMaxAttempts)
	assert.Equal(t, 5*time.Millisecond, cfg.AccountNumberBackoff)
	assert.Equal(t, "50000", cfg.DepositCeiling.String())
	assert.Equal(t, 50, cfg.StatementPageSize)
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "3")
	t.Setenv("ACCOUNT_NUMBER_BACKOFF", "1ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 3, cfg.AccountNumberMaxAttempts)
	assert.Equal(t, time.Millisecond, cfg.AccountNumberBackoff)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("zero attempts", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "0")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad ceiling", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("DEPOSIT_CEILING", "-1")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
