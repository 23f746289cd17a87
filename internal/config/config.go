package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings splits the admin account list
    "time"    // time parses the booking deadline
)

// AdminAccount is one administrator allowed to log in.  Accounts are
// configured via the ADMIN_ACCOUNTS variable as a comma-separated list of
// "username:password:Display Name" entries; the plain passwords are
// bcrypt-hashed at load time so only the hash stays in memory.
type AdminAccount struct {
    Username     string
    PasswordHash string
    DisplayName  string
}

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env             string         // application environment (e.g. "dev", "prod")
    Port            string         // HTTP port to listen on
    SheetAPIURL     string         // spreadsheet web API endpoint (system of record)
    SheetTimeoutSec int            // request timeout for sheet API calls, seconds
    JWTSecret       string         // secret used to sign admin access tokens
    AccessTTLMin    int            // access token time-to-live in minutes
    BcryptCost      int            // bcrypt cost for hashing admin passwords
    BookingDeadline time.Time      // bookings close for ordinary users after this instant
    Admins          []AdminAccount // administrators allowed to log in
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The admin account
// list is parsed here; hashing the passwords is left to the caller because
// it needs the bcrypt cost from this very config.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                   // environment (dev/test/prod)
        Port:            must("APP_PORT"),                  // port to bind the HTTP server
        SheetAPIURL:     must("SHEET_API_URL"),             // spreadsheet web API endpoint
        SheetTimeoutSec: envIntDefault("SHEET_TIMEOUT_SEC", 10),
        JWTSecret:       must("JWT_SECRET"),                // secret used for signing JWTs
        AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        BcryptCost:      envIntDefault("BCRYPT_COST", 10),  // bcrypt cost factor
        BookingDeadline: parseDeadline(os.Getenv("BOOKING_DEADLINE")),
        Admins:          parseAdmins(os.Getenv("ADMIN_ACCOUNTS")),
    }
}

// parseAdmins splits ADMIN_ACCOUNTS into account entries.  Malformed
// entries are fatal: a half-configured admin list is worse than none.
func parseAdmins(raw string) []AdminAccount {
    if strings.TrimSpace(raw) == "" {
        return nil
    }
    var out []AdminAccount
    for _, entry := range strings.Split(raw, ",") {
        parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
        if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
            log.Fatalf("malformed ADMIN_ACCOUNTS entry: %q (want user:password:Display Name)", entry)
        }
        out = append(out, AdminAccount{
            Username:     parts[0],
            PasswordHash: parts[1], // plain at this point, hashed in main
            DisplayName:  parts[2],
        })
    }
    return out
}

// parseDeadline interprets BOOKING_DEADLINE as RFC3339.  An empty value
// means bookings never close; an unparseable value is fatal.
func parseDeadline(raw string) time.Time {
    if raw == "" {
        return time.Time{}
    }
    t, err := time.Parse(time.RFC3339, raw)
    if err != nil {
        log.Fatalf("invalid BOOKING_DEADLINE %q: %v", raw, err)
    }
    return t
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

// envIntDefault reads an optional integer variable with a fallback.
func envIntDefault(key string, def int) int {
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
