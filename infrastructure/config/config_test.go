package config_test

import (
	"testing"

	"fraudgraph/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "neo4j", cfg.Neo4jUsername)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30, cfg.GraphCacheTTL)
	assert.Equal(t, 250, cfg.SeedUserCount)
	assert.Equal(t, 1000, cfg.SeedTransactionCount)
	assert.Equal(t, 8, cfg.SeedMaxTransactions)
	assert.Equal(t, 5, cfg.SeedMaxCounterparties)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("NEO4J_URI", "bolt://graph:7687")
	t.Setenv("NEO4J_USER", "fraud")
	t.Setenv("GRAPH_CACHE_TTL", "120")
	t.Setenv("USER_COUNT", "500")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "bolt://graph:7687", cfg.Neo4jURI)
	assert.Equal(t, "fraud", cfg.Neo4jUsername)
	assert.Equal(t, 120, cfg.GraphCacheTTL)
	assert.Equal(t, 500, cfg.SeedUserCount)
	assert.False(t, cfg.EnableMetrics)
}

func TestLoadConfigUsernameAliasLosesToPrimary(t *testing.T) {
	t.Setenv("NEO4J_USERNAME", "primary")
	t.Setenv("NEO4J_USER", "alias")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.Neo4jUsername)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("GRAPH_CACHE_TTL", "not-a-number")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.GraphCacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid development config",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "missing neo4j uri",
			mutate:  func(c *config.Config) { c.Neo4jURI = "" },
			wantErr: "NEO4J_URI",
		},
		{
			name: "default password in production",
			mutate: func(c *config.Config) {
				c.Environment = "production"
				c.Neo4jPassword = "password"
			},
			wantErr: "NEO4J_PASSWORD",
		},
		{
			name: "real password in production",
			mutate: func(c *config.Config) {
				c.Environment = "production"
				c.Neo4jPassword = "s3cret"
			},
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *config.Config) { c.GraphCacheTTL = -1 },
			wantErr: "GRAPH_CACHE_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadConfig()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
