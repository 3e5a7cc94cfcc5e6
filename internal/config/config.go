package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings splits comma-separated list values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The database settings describe the relational
// store that holds all service state; everything else (redis, rabbitmq)
// is optional and read where it is used.
type Config struct {
	Env         string   // application environment (e.g. "dev", "prod")
	Port        string   // HTTP port to listen on
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host address
	DBPort      string   // database port number
	DBName      string   // database name
	CORSOrigins []string // origins allowed to call the API from a browser
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:         must("APP_ENV"),      // environment (dev/test/prod)
		Port:        must("APP_PORT"),     // port to bind the HTTP server
		DBUser:      must("DB_USER"),      // database user
		DBPass:      os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:      must("DB_HOST"),      // database host
		DBPort:      must("DB_PORT"),      // database port
		DBName:      must("DB_NAME"),      // database name
		CORSOrigins: list("CORS_ORIGINS"), // comma-separated allow-list, empty means any origin
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// list splits a comma-separated environment variable into its non-empty
// trimmed elements.  An unset variable yields an empty slice.
func list(key string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
