package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The signing secret, the
// algorithm choice and the OTP window are injected here once at
// process start and passed into the components that need them; there
// are no process-wide mutable singletons.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	JWTSecret        string // secret used to sign JWTs (HS256)
	AccessTTLMin     int    // session token time-to-live in minutes (default 60)
	OtpSessionTTLMin int    // OTP-session token time-to-live in minutes (default 15)
	OtpTTLMin        int    // OTP code validity window in minutes (default 20)
	BcryptCost       int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// The TTL knobs are optional and fall back to the defaults above.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),     // environment (dev/test/prod)
		Port:             must("APP_PORT"),    // port to bind the HTTP server
		DBUser:           must("DB_USER"),     // database user
		DBPass:           os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:           must("DB_HOST"),     // database host
		DBPort:           must("DB_PORT"),     // database port
		DBName:           must("DB_NAME"),     // database name
		JWTSecret:        must("JWT_SECRET"),  // secret used for signing JWTs
		AccessTTLMin:     intOr("ACCESS_TOKEN_TTL_MIN", 60),  // TTL for session tokens
		OtpSessionTTLMin: intOr("OTP_SESSION_TTL_MIN", 15),   // TTL for OTP-session tokens
		OtpTTLMin:        intOr("OTP_TTL_MIN", 20),           // OTP validity window
		BcryptCost:       mustInt("BCRYPT_COST"),             // bcrypt cost factor
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// intOr reads an optional integer variable, falling back to def when
// unset and failing fast when set to something unparsable.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
