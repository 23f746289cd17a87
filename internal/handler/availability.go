package handler

import (
    "net/http"
    "sort"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/worapol/banquet-booking/internal/config"
    "github.com/worapol/banquet-booking/internal/middleware"
    "github.com/worapol/banquet-booking/internal/store"
    "github.com/worapol/banquet-booking/internal/venue"
)

// AvailabilityHandler serves the seat map state the booking page renders:
// which seats are taken, which tables are unlocked and whether bookings
// are still open.  The same handler backs the public route (anonymous,
// response-cached) and the admin route (adds occupant labels and the
// exclude parameter used while editing a booking).
type AvailabilityHandler struct {
    Cfg   config.Config
    Store *store.Store
}

func NewAvailabilityHandler(cfg config.Config, st *store.Store) *AvailabilityHandler {
    if st == nil {
        panic("nil store passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Cfg: cfg, Store: st}
}

// Get handles GET /v1/availability and GET /v1/admin/availability.  The
// ?exclude=<bookingID> parameter removes one booking from the occupancy
// index so its own seats show as free while it is being edited; only
// administrators may use it, for guests it is silently ignored.
func (h *AvailabilityHandler) Get(c echo.Context) error {
    ident := middleware.IdentityFrom(c)

    exclude := ""
    if ident.Privileged {
        exclude = c.QueryParam("exclude")
    }

    bookings := h.Store.Bookings()
    occ := venue.BuildOccupancy(bookings, exclude)
    unlockedSet := venue.UnlockedTables(occ)

    unlocked := make([]string, 0, len(unlockedSet))
    for id := range unlockedSet {
        unlocked = append(unlocked, id)
    }
    sort.Strings(unlocked)

    occupied := make([]string, 0, len(occ))
    for seat := range occ {
        occupied = append(occupied, seat)
    }
    sort.Strings(occupied)

    resp := echo.Map{
        "tables":        venue.TotalTables,
        "seatsPerTable": venue.SeatsPerTable,
        "seatPrice":     venue.SeatPrice,
        "bookingOpen":   h.bookingOpen() || ident.Privileged,
        "unlocked":      unlocked,
        "occupied":      occupied,
    }
    if ident.Privileged {
        // Admins also see who holds each seat.
        resp["labels"] = occ
    }
    return c.JSON(http.StatusOK, resp)
}

// bookingOpen reports whether the booking deadline has not yet passed.  A
// zero deadline means bookings never close.
func (h *AvailabilityHandler) bookingOpen() bool {
    return h.Cfg.BookingDeadline.IsZero() || time.Now().Before(h.Cfg.BookingDeadline)
}
