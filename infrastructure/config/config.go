package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Neo4j configuration
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cache behavior
	GraphCacheTTL int // seconds; full-graph responses only

	// Seeding defaults
	SeedUserCount          int
	SeedTransactionCount   int
	SeedMaxTransactions    int
	SeedMaxCounterparties  int
	SeedBatchSize          int
	SeedAttributeEdgeLimit int

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUsername: getEnv("NEO4J_USERNAME", getEnv("NEO4J_USER", "neo4j")),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", getEnv("NEO4J_PASS", "password")),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		GraphCacheTTL: getEnvInt("GRAPH_CACHE_TTL", 30),

		SeedUserCount:          getEnvInt("USER_COUNT", 250),
		SeedTransactionCount:   getEnvInt("TRANSACTION_COUNT", 1000),
		SeedMaxTransactions:    getEnvInt("MAX_TRANSACTIONS_PER_USER", 8),
		SeedMaxCounterparties:  getEnvInt("MAX_COUNTERPARTIES_PER_USER", 5),
		SeedBatchSize:          getEnvInt("BATCH_SIZE", 1000),
		SeedAttributeEdgeLimit: getEnvInt("ATTRIBUTE_EDGE_LIMIT", 1000),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Environment == "production" {
		if c.Neo4jPassword == "" || c.Neo4jPassword == "password" {
			return fmt.Errorf("NEO4J_PASSWORD must be set in production")
		}
	}
	if c.GraphCacheTTL < 0 {
		return fmt.Errorf("GRAPH_CACHE_TTL must not be negative")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
