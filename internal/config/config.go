package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEmployers are searched by name when ETL_EMPLOYERS is not set
var DefaultEmployers = []string{
	"Google", "Yandex", "Microsoft", "Apple", "Amazon",
	"Facebook", "Tesla", "Samsung", "IBM", "Oracle",
}

// Config contains runtime settings for one ETL run
type Config struct {
	LogLevel string
	Postgres struct {
		Name     string
		User     string
		Password string
		Host     string // default localhost
		Port     string // default 5432
		SSLMode  string // default disable
	}
	HH struct {
		BaseURL      string
		UserAgent    string
		RequestDelay time.Duration // default 200ms
		PageSize     int           // default 20
	}
	ETL struct {
		Employers   []string
		EmployerIDs []string
		Keyword     string // default python
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
	} // optional, the graph mirror is off when URI is empty
}

// Load reads an optional .env file and populates config from environment variables.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	envFile := ".env"
	if v := os.Getenv("ETL_ENV_FILE"); v != "" {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	cfg := Config{LogLevel: "info"}
	cfg.Postgres.Host = "localhost"
	cfg.Postgres.Port = "5432"
	cfg.Postgres.SSLMode = "disable"
	cfg.HH.RequestDelay = 200 * time.Millisecond
	cfg.HH.PageSize = 20
	cfg.ETL.Employers = append([]string(nil), DefaultEmployers...)
	cfg.ETL.Keyword = "python"

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.Postgres.Name = os.Getenv("DB_NAME")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Postgres.Port = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}

	var invalid []string

	cfg.HH.BaseURL = os.Getenv("HH_BASE_URL")
	cfg.HH.UserAgent = os.Getenv("HH_USER_AGENT")
	if v := os.Getenv("HH_REQUEST_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("HH_REQUEST_DELAY=%q", v))
		} else {
			cfg.HH.RequestDelay = d
		}
	}
	if v := os.Getenv("HH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			invalid = append(invalid, fmt.Sprintf("HH_PAGE_SIZE=%q", v))
		} else {
			cfg.HH.PageSize = n
		}
	}

	if v, ok := os.LookupEnv("ETL_EMPLOYERS"); ok {
		cfg.ETL.Employers = splitList(v)
	}
	cfg.ETL.EmployerIDs = splitList(os.Getenv("ETL_EMPLOYER_IDS"))
	if v := os.Getenv("ETL_KEYWORD"); v != "" {
		cfg.ETL.Keyword = v
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	var missingVars []string

	if cfg.Postgres.Name == "" {
		missingVars = append(missingVars, "DB_NAME")
	}

	if cfg.Postgres.User == "" {
		missingVars = append(missingVars, "DB_USER")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// splitList splits a comma-separated value, dropping blank entries
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
