package handler

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/worapol/banquet-booking/internal/config"
    "github.com/worapol/banquet-booking/internal/lifecycle"
    "github.com/worapol/banquet-booking/internal/middleware"
    "github.com/worapol/banquet-booking/internal/model"
    "github.com/worapol/banquet-booking/internal/queue"
    "github.com/worapol/banquet-booking/internal/selection"
    "github.com/worapol/banquet-booking/internal/service"
    "github.com/worapol/banquet-booking/internal/store"
    "github.com/worapol/banquet-booking/internal/venue"
)

// PublishFunc sends a booking event to the message broker.  The indirection
// lets tests capture events without a running broker.
type PublishFunc func(ctx context.Context, event queue.BookingEvent) error

// BookingHandler owns the public booking endpoint.  Guests pick seats on
// the seat map and submit one request; everything else (seat gating,
// pricing, the booking record itself) is decided server side so a stale
// or hand-crafted client cannot grab seats the map would not offer.
type BookingHandler struct {
    Cfg       config.Config
    Store     *store.Store
    Publisher PublishFunc // optional, nil disables events
}

func NewBookingHandler(cfg config.Config, st *store.Store) *BookingHandler {
    if st == nil {
        panic("nil store passed to NewBookingHandler")
    }
    return &BookingHandler{Cfg: cfg, Store: st, Publisher: service.PublishBookingEvent}
}

type createBookingReq struct {
    Parent  model.ParentInfo  `json:"parent"`
    Student model.StudentInfo `json:"student"`
    Seats   []string          `json:"seats"`
}

// Create handles POST /v1/bookings.
//
// The request is rejected before touching the store when the deadline has
// passed, a seat id is malformed or the contact fields are missing.  Seat
// conflicts are detected by replaying the requested seats through the
// same selection rules the seat map applies, against the occupancy at the
// moment of commit, so two guests racing for one seat cannot both win.
func (h *BookingHandler) Create(c echo.Context) error {
    ident := middleware.IdentityFrom(c)

    if !ident.Privileged && !h.bookingOpen() {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "booking period has ended"})
    }

    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validateCreate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    // A repeated seat id must not toggle the seat back off.
    seats := uniqueSeats(req.Seats)

    var unavailable []string
    booking, warning, err := h.Store.Update(c.Request().Context(), store.ActionCreate,
        func(bookings []model.Booking) ([]model.Booking, model.Booking, error) {
            occ := venue.BuildOccupancy(bookings, "")
            gate := selection.Gate{
                Occupancy:  occ,
                Unlocked:   venue.UnlockedTables(occ),
                Privileged: ident.Privileged,
            }

            sel := selection.New()
            for _, seat := range seats {
                sel.ToggleSeat(gate, seat)
            }
            for _, seat := range seats {
                if !sel.Contains(seat) {
                    unavailable = append(unavailable, seat)
                }
            }
            if len(unavailable) > 0 {
                return nil, model.Booking{}, errSeatsUnavailable
            }

            return lifecycle.Create(bookings, req.Parent, req.Student, sel.Seats(), ident, time.Now())
        })
    if err != nil {
        if errors.Is(err, errSeatsUnavailable) {
            return c.JSON(http.StatusConflict, echo.Map{
                "error":       "some seats are unavailable",
                "unavailable": unavailable,
            })
        }
        if errors.Is(err, lifecycle.ErrNoSeats) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
        }
        log.Printf("create booking: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
    }

    h.publish(queue.ActionBookingCreated, booking, ident)

    resp := echo.Map{"booking": booking}
    if warning != "" {
        resp["warning"] = warning
    }
    return c.JSON(http.StatusCreated, resp)
}

var errSeatsUnavailable = errors.New("some seats are unavailable")

// uniqueSeats drops duplicate seat ids while keeping request order.
func uniqueSeats(seats []string) []string {
    seen := make(map[string]bool, len(seats))
    out := make([]string, 0, len(seats))
    for _, seat := range seats {
        if seen[seat] {
            continue
        }
        seen[seat] = true
        out = append(out, seat)
    }
    return out
}

func (h *BookingHandler) bookingOpen() bool {
    return h.Cfg.BookingDeadline.IsZero() || time.Now().Before(h.Cfg.BookingDeadline)
}

func (h *BookingHandler) publish(action string, b model.Booking, ident model.Identity) {
    publishEvent(h.Publisher, action, b, ident)
}

// publishEvent emits a booking event without blocking the HTTP response.
// The publisher tolerates a dead broker, so a failed publish only logs.
func publishEvent(pub PublishFunc, action string, b model.Booking, ident model.Identity) {
    if pub == nil {
        return
    }
    ev := queue.BookingEvent{
        Action:     action,
        BookingID:  b.ID,
        Parent:     b.ParentLabel(),
        Seats:      b.Seats,
        Total:      b.Total,
        Status:     string(b.Status),
        Actor:      ident.DisplayName,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := pub(ctx, ev); err != nil {
            log.Printf("publish %s for %s: %v", action, b.ID, err)
        }
    }()
}

func validateCreate(req *createBookingReq) error {
    if strings.TrimSpace(req.Parent.FirstName) == "" || strings.TrimSpace(req.Parent.LastName) == "" {
        return errors.New("parent name is required")
    }
    if strings.TrimSpace(req.Parent.Phone) == "" {
        return errors.New("parent phone is required")
    }
    if strings.TrimSpace(req.Student.FirstName) == "" || strings.TrimSpace(req.Student.LastName) == "" {
        return errors.New("student name is required")
    }
    if len(req.Seats) == 0 {
        return errors.New("no seats selected")
    }
    for _, seat := range req.Seats {
        if !venue.ValidSeatID(seat) {
            return errors.New("invalid seat id: " + seat)
        }
    }
    return nil
}
