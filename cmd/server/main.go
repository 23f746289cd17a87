package main // Entry point package

import (
    "context"
    "log"  // Logging library
    "time"

    "github.com/joho/godotenv"    // .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/worapol/banquet-booking/internal/config" // Internal config loader
    "github.com/worapol/banquet-booking/internal/handler"
    "github.com/worapol/banquet-booking/internal/queue"
    "github.com/worapol/banquet-booking/internal/router" // Internal router setup
    "github.com/worapol/banquet-booking/internal/store"
    "github.com/worapol/banquet-booking/internal/utils"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set the environment directly

    cfg := config.Load() // Load environment config

    // Admin passwords arrive as plain text in ADMIN_ACCOUNTS and are hashed
    // once here so only bcrypt hashes stay in memory for the process lifetime.
    for i := range cfg.Admins {
        hash, err := utils.HashPassword(cfg.Admins[i].PasswordHash, cfg.BcryptCost)
        if err != nil {
            log.Fatalf("hash admin password for %s: %v", cfg.Admins[i].Username, err)
        }
        cfg.Admins[i].PasswordHash = hash
    }

    // Redis backs the booking snapshot, the availability response cache and
    // the rate limiter.  All three degrade gracefully when it is absent.
    rdb := config.NewRedisClient()

    var snapshot store.SnapshotCache
    if rdb != nil {
        snapshot = store.NewRedisSnapshot(rdb)
    }

    sheet := store.NewSheetClient(cfg.SheetAPIURL, time.Duration(cfg.SheetTimeoutSec)*time.Second)
    st := store.New(sheet, snapshot)

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := st.Load(ctx); err != nil {
        // The store fell back to the cached snapshot or an empty list; the
        // service still starts and keeps taking bookings locally.
        log.Printf("starting degraded, sheet API unreachable: %v", err)
    }
    cancel()

    // Consume booking events in the background.  The consumer reconnects on
    // its own and a missing broker never blocks startup.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    e := echo.New() // Create Echo instance

    availability := handler.NewAvailabilityHandler(cfg, st)
    bookings := handler.NewBookingHandler(cfg, st)
    admin := handler.NewAdminHandler(cfg, st)
    auth := handler.NewAuthHandler(cfg)

    router.RegisterRoutes(e) // Register application routes
    router.RegisterPublic(e, availability, bookings, rdb)
    router.RegisterAuth(e, auth, admin, availability, cfg.JWTSecret)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
