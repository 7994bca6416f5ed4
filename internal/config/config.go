package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"

    "github.com/joho/godotenv"
)

// Config holds the runtime configuration shared by the booking and trivia
// services.  Each field corresponds to an environment variable.  Database
// fields that only make sense for one driver are left empty for the other.
type Config struct {
    Env         string         // application environment (e.g. "dev", "prod")
    Port        string         // HTTP port to listen on
    DBDriver    string         // "mysql" or "sqlite"
    DBUser      string         // database username (mysql)
    DBPass      string         // database password (optional)
    DBHost      string         // database host address (mysql)
    DBPort      string         // database port number (mysql)
    DBName      string         // database name (mysql)
    DBPath      string         // database file or ":memory:" (sqlite)
    DBBootstrap bool           // create missing tables on startup
    Location    *time.Location // zone used to interpret stored show times
    LogVerbose  bool           // debug level logging
}

// LoadDotEnv reads a .env file from the working directory when one exists.
// Variables already present in the environment win.
func LoadDotEnv() {
    if _, err := os.Stat(".env"); err != nil {
        return
    }
    if err := godotenv.Load(); err != nil {
        log.Printf("config: could not read .env: %v", err)
    }
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    cfg := LoadDatabase()
    cfg.Port = must("APP_PORT")
    return cfg
}

// LoadDatabase is Load without the HTTP settings, for tools that only talk
// to the database.  Which database variables are required depends on
// DB_DRIVER.
func LoadDatabase() Config {
    cfg := Config{
        Env:         envStr("APP_ENV", "dev"),
        DBDriver:    envStr("DB_DRIVER", "mysql"),
        DBPass:      os.Getenv("DB_PASS"),
        DBBootstrap: envBool("DB_BOOTSTRAP", false),
        LogVerbose:  envBool("LOG_VERBOSE", false),
        Location:    mustLocation(envStr("TIME_ZONE", "Local")),
    }
    switch cfg.DBDriver {
    case "mysql":
        cfg.DBUser = must("DB_USER")
        cfg.DBHost = must("DB_HOST")
        cfg.DBPort = must("DB_PORT")
        cfg.DBName = must("DB_NAME")
    case "sqlite":
        cfg.DBPath = envStr("DB_PATH", "fyyur.db")
    default:
        log.Fatalf("unsupported DB_DRIVER: %q", cfg.DBDriver)
    }
    return cfg
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

func mustLocation(name string) *time.Location {
    loc, err := time.LoadLocation(name)
    if err != nil {
        log.Fatalf("invalid TIME_ZONE %q: %v", name, err)
    }
    return loc
}
