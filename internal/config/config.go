package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBName       string
	DBUser       string
	DBHost       string
	DBPort       string
	DBPassword   string
	CreateTables bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	cfg := &Config{
		DBName:       os.Getenv("DB_NAME"),
		DBUser:       os.Getenv("DB_USER"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		CreateTables: strings.EqualFold(os.Getenv("CREATE_TABLES"), "true"),
	}

	if missing := cfg.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"DB_NAME", c.DBName},
		{"DB_USER", c.DBUser},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_PASSWORD", c.DBPassword},
	}

	var missing []string
	for _, v := range required {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

// DatabaseURI builds the Postgres connection string from the individual
// connection parameters.
func (c *Config) DatabaseURI() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
