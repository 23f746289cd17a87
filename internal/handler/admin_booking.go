package handler

import (
    "errors"
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

// AdminHandler covers the staff side of the booking desk: listing and
// searching bookings, rewriting a booking's seats, cancelling seats and
// confirming payments.  Every route behind it requires the ADMIN role.
type AdminHandler struct {
    Cfg       config.Config
    Store     *store.Store
    Publisher PublishFunc
}

func NewAdminHandler(cfg config.Config, st *store.Store) *AdminHandler {
    if st == nil {
        panic("nil store passed to NewAdminHandler")
    }
    return &AdminHandler{Cfg: cfg, Store: st, Publisher: service.PublishBookingEvent}
}

// List handles GET /v1/admin/bookings.
//
// ?status= filters on booking status.  ?parent= and ?student= are term
// filters scoped to the respective name: every whitespace-separated term
// must occur in the parent's name (or phone) resp. the student's name,
// case-insensitive.  A parent term is never satisfied by the student's
// name or vice versa.
func (h *AdminHandler) List(c echo.Context) error {
    statusFilter := strings.TrimSpace(c.QueryParam("status"))
    if statusFilter != "" {
        if _, err := model.ParseStatus(statusFilter); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status: " + statusFilter})
        }
    }
    parentTerms := strings.Fields(strings.ToLower(c.QueryParam("parent")))
    studentTerms := strings.Fields(strings.ToLower(c.QueryParam("student")))

    all := h.Store.Bookings()
    out := make([]model.Booking, 0, len(all))
    for _, b := range all {
        if statusFilter != "" && string(b.Status) != statusFilter {
            continue
        }
        parentHay := strings.ToLower(strings.Join([]string{
            b.Parent.Prefix, b.Parent.FirstName, b.Parent.LastName, b.Parent.Phone,
        }, " "))
        studentHay := strings.ToLower(strings.Join([]string{
            b.Student.Prefix, b.Student.FirstName, b.Student.LastName,
        }, " "))
        if !matchesTerms(parentHay, parentTerms) || !matchesTerms(studentHay, studentTerms) {
            continue
        }
        out = append(out, b)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": out, "count": len(out)})
}

// matchesTerms reports whether every term occurs in the haystack.  No
// terms means match everything.
func matchesTerms(hay string, terms []string) bool {
    for _, term := range terms {
        if !strings.Contains(hay, term) {
            return false
        }
    }
    return true
}

// Stats handles GET /v1/admin/stats and returns the numbers the admin
// dashboard shows: active bookings, seats sold, revenue and seats left.
func (h *AdminHandler) Stats(c echo.Context) error {
    all := h.Store.Bookings()

    var active, pending, confirmed, cancelled, seatsSold, revenue int
    for _, b := range all {
        switch b.Status {
        case model.StatusPendingPayment:
            pending++
        case model.StatusConfirmed:
            confirmed++
            // Only paid bookings count as revenue.
            revenue += b.Total
        case model.StatusCancelled:
            cancelled++
        }
        if b.Active() {
            active++
            seatsSold += len(b.Seats)
        }
    }

    return c.JSON(http.StatusOK, echo.Map{
        "totalBookings":  len(all),
        "activeBookings": active,
        "pendingPayment": pending,
        "confirmed":      confirmed,
        "cancelled":      cancelled,
        "seatsSold":      seatsSold,
        "seatsAvailable": venue.TotalSeats - seatsSold,
        "revenue":        revenue,
    })
}

type updateSeatsReq struct {
    Seats []string `json:"seats"`
}

// Update handles PUT /v1/admin/bookings/:id and replaces the booking's
// seat list wholesale.  The requested seats are replayed through the seat
// map rules with the booking's own seats excluded from occupancy, so an
// edit can keep or rearrange seats the booking already holds.  An empty
// result cancels the booking.
func (h *AdminHandler) Update(c echo.Context) error {
    id := c.Param("id")
    ident := middleware.IdentityFrom(c)

    var req updateSeatsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    for _, seat := range req.Seats {
        if !venue.ValidSeatID(seat) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id: " + seat})
        }
    }

    // A repeated seat id must not toggle the seat back off.
    seats := uniqueSeats(req.Seats)

    var unavailable []string
    booking, warning, err := h.Store.Update(c.Request().Context(), store.ActionUpdate,
        func(bookings []model.Booking) ([]model.Booking, model.Booking, error) {
            current, ok := findBooking(bookings, id)
            if !ok {
                return nil, model.Booking{}, lifecycle.ErrBookingNotFound
            }

            occ := venue.BuildOccupancy(bookings, id)
            gate := selection.Gate{
                Occupancy:  occ,
                Unlocked:   venue.UnlockedTables(occ),
                Privileged: true,
            }

            sel := selection.NewForEdit(current)
            sel.Clear()
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

            return lifecycle.Replace(bookings, id, sel.Seats(), ident)
        })
    if err != nil {
        return h.mapError(c, err, unavailable)
    }

    action := queue.ActionBookingUpdated
    if booking.Status == model.StatusCancelled {
        action = queue.ActionBookingCancelled
    }
    h.publish(action, booking, ident)

    resp := echo.Map{"booking": booking}
    if warning != "" {
        resp["warning"] = warning
    }
    return c.JSON(http.StatusOK, resp)
}

type cancelSeatsReq struct {
    Seats []string `json:"seats"`
}

// Cancel handles POST /v1/admin/bookings/:id/cancel.  A seat list cancels
// only those seats; an empty body cancels the whole booking.
func (h *AdminHandler) Cancel(c echo.Context) error {
    id := c.Param("id")
    ident := middleware.IdentityFrom(c)

    var req cancelSeatsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    booking, warning, err := h.Store.Update(c.Request().Context(), store.ActionUpdate,
        func(bookings []model.Booking) ([]model.Booking, model.Booking, error) {
            seats := req.Seats
            if len(seats) == 0 {
                current, ok := findBooking(bookings, id)
                if !ok {
                    return nil, model.Booking{}, lifecycle.ErrBookingNotFound
                }
                seats = current.Seats
            }
            return lifecycle.PartialCancel(bookings, id, seats, ident)
        })
    if err != nil {
        return h.mapError(c, err, nil)
    }

    action := queue.ActionBookingUpdated
    if booking.Status == model.StatusCancelled {
        action = queue.ActionBookingCancelled
    }
    h.publish(action, booking, ident)

    resp := echo.Map{"booking": booking}
    if warning != "" {
        resp["warning"] = warning
    }
    return c.JSON(http.StatusOK, resp)
}

// ConfirmPayment handles POST /v1/admin/bookings/:id/confirm-payment and
// moves a pending booking to confirmed, recording who confirmed it.
func (h *AdminHandler) ConfirmPayment(c echo.Context) error {
    id := c.Param("id")
    ident := middleware.IdentityFrom(c)

    booking, warning, err := h.Store.Update(c.Request().Context(), store.ActionUpdate,
        func(bookings []model.Booking) ([]model.Booking, model.Booking, error) {
            return lifecycle.ConfirmPayment(bookings, id, ident, time.Now())
        })
    if err != nil {
        return h.mapError(c, err, nil)
    }

    h.publish(queue.ActionPaymentConfirmed, booking, ident)

    resp := echo.Map{"booking": booking}
    if warning != "" {
        resp["warning"] = warning
    }
    return c.JSON(http.StatusOK, resp)
}

// mapError translates lifecycle and gating errors into the JSON error
// responses the admin UI expects.
func (h *AdminHandler) mapError(c echo.Context, err error, unavailable []string) error {
    switch {
    case errors.Is(err, lifecycle.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, lifecycle.ErrNotPendingPayment):
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not awaiting payment"})
    case errors.Is(err, errSeatsUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":       "some seats are unavailable",
            "unavailable": unavailable,
        })
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update booking"})
    }
}

func (h *AdminHandler) publish(action string, b model.Booking, ident model.Identity) {
    publishEvent(h.Publisher, action, b, ident)
}

func findBooking(bookings []model.Booking, id string) (model.Booking, bool) {
    for _, b := range bookings {
        if b.ID == id {
            return b, true
        }
    }
    return model.Booking{}, false
}
