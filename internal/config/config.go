package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Identifiers and secrets are strings; TTLs and
// the bcrypt cost are ints so they can be used directly where needed.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // MySQL username
    DBPass       string // MySQL password (optional)
    DBHost       string // MySQL host address
    DBPort       string // MySQL port number
    DBName       string // MySQL database name
    MongoURI     string // MongoDB connection string (catalog store)
    MongoDB      string // MongoDB database holding the catalog collections
    AnimeColl    string // collection holding anime catalog documents
    MangaColl    string // collection holding manga catalog documents
    JWTSecret    string // secret used to sign JWTs
    AccessTTLMin int    // access token time-to-live in minutes
    ResetTTLMin  int    // password-reset token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for password hashing
    JikanURL     string // base URL of the Jikan API (seasonal-anime feed)
    ResetBaseURL string // frontend base URL used to build password-reset links
    UploadDir    string // directory where catalog images are stored
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values
// fall back to development defaults.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),
        Port:         must("APP_PORT"),
        DBUser:       must("DB_USER"),
        DBPass:       os.Getenv("DB_PASS"), // empty allowed
        DBHost:       must("DB_HOST"),
        DBPort:       must("DB_PORT"),
        DBName:       must("DB_NAME"),
        MongoURI:     must("MONGO_URI"),
        MongoDB:      must("MONGO_DB"),
        AnimeColl:    getenv("MONGO_ANIME_COLLECTION", "animes"),
        MangaColl:    getenv("MONGO_MANGA_COLLECTION", "mangas"),
        JWTSecret:    must("JWT_SECRET"),
        AccessTTLMin: getenvInt("ACCESS_TOKEN_TTL_MIN", 120),
        ResetTTLMin:  getenvInt("RESET_TOKEN_TTL_MIN", 15),
        BcryptCost:   getenvInt("BCRYPT_COST", 10),
        JikanURL:     getenv("JIKAN_URL", "https://api.jikan.moe/v4"),
        ResetBaseURL: getenv("RESET_BASE_URL", "http://localhost:3000"),
        UploadDir:    getenv("UPLOAD_DIR", "public/uploads"),
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

// getenv returns the value of an optional environment variable or the
// provided default when it is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt is like getenv() but converts the value into an integer.  A
// value that cannot be parsed causes a fatal configuration error.
func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}
