package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabaseURL is the embedded store used when DATABASE_URL is unset.
const DefaultDatabaseURL = "sqlite:///./todo.db"

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DatabaseURL  string // storage target, see database.ParseURL
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads a .env file when one exists and then builds a Config from the
// environment. JWT_SECRET is required; a missing value exits the program.
func Load() Config {
	loadDotEnv()
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8000"),
		DatabaseURL:  envStr("DATABASE_URL", DefaultDatabaseURL),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: positive("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:   positive("BCRYPT_COST", 10),
	}
}

// DatabaseURL returns only the storage target. The migration command uses
// it so that it does not need the server's secrets.
func DatabaseURL() string {
	loadDotEnv()
	return envStr("DATABASE_URL", DefaultDatabaseURL)
}

func loadDotEnv() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// positive is envInt that rejects zero and negative values.
func positive(key string, def int) int {
	n := envInt(key, def)
	if n < 1 {
		log.Fatalf("invalid value for %s: %d", key, n)
	}
	return n
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
