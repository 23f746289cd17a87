// Package lifecycle applies booking state transitions: create, full
// edit-replace, partial cancel and payment confirmation.  All functions are
// pure reducers over the booking collection — they return a fresh slice and
// the affected booking, never mutating their input — so the whole state
// machine is unit-testable without fixtures.  Totals are always recomputed
// from the resulting seat list; no transition sets a total independently.
package lifecycle

import (
    "errors"
    "fmt"
    "sort"
    "time"

    "github.com/worapol/banquet-booking/internal/model"
    "github.com/worapol/banquet-booking/internal/venue"
)

var (
    // ErrBookingNotFound is returned when a transition names a booking id
    // that does not exist in the collection.
    ErrBookingNotFound = errors.New("booking not found")
    // ErrNoSeats rejects a create with an empty seat list.
    ErrNoSeats = errors.New("no seats selected")
    // ErrNotPendingPayment guards ConfirmPayment: only a booking awaiting
    // payment can be confirmed.
    ErrNotPendingPayment = errors.New("booking is not awaiting payment")
)

// NextID allocates the next sequential booking id, BK followed by a
// zero-padded counter over the collection length.  Cancelled bookings are
// never physically deleted, so the length only grows and ids stay unique.
func NextID(bookings []model.Booking) string {
    return fmt.Sprintf("BK%04d", len(bookings)+1)
}

// Create appends a new booking assembled from the attendee details and the
// committed selection.  The booking starts in pending_payment and is
// attributed to the acting administrator when one is logged in.  Seats are
// sorted and de-duplicated before pricing.
func Create(bookings []model.Booking, parent model.ParentInfo, student model.StudentInfo, seats []string, ident model.Identity, now time.Time) ([]model.Booking, model.Booking, error) {
    seats = sortedUnique(seats)
    if len(seats) == 0 {
        return nil, model.Booking{}, ErrNoSeats
    }
    b := model.Booking{
        ID:        NextID(bookings),
        Parent:    parent,
        Student:   student,
        Seats:     seats,
        Total:     venue.TotalPrice(seats),
        Status:    model.StatusPendingPayment,
        Timestamp: now.UTC(),
    }
    if ident.Privileged {
        b.BookedBy = ident.DisplayName
    }
    out := make([]model.Booking, len(bookings), len(bookings)+1)
    copy(out, bookings)
    return append(out, b), b, nil
}

// Replace swaps a booking's seat list wholesale with the editor's
// selection.  An empty replacement cancels the booking; otherwise the
// stored status is kept.  The bookedBy attribution moves to the acting
// administrator, or is preserved for self-service edits.
func Replace(bookings []model.Booking, bookingID string, seats []string, ident model.Identity) ([]model.Booking, model.Booking, error) {
    return apply(bookings, bookingID, func(b model.Booking) model.Booking {
        b.Seats = sortedUnique(seats)
        b.Total = venue.TotalPrice(b.Seats)
        if len(b.Seats) == 0 {
            b.Seats = []string{}
            b.Status = model.StatusCancelled
        }
        if ident.Privileged {
            b.BookedBy = ident.DisplayName
        }
        return b
    })
}

// PartialCancel removes a subset of seats from a booking with set
// difference semantics: cancelling a seat the booking does not hold is a
// harmless no-op.  When the last seat goes, the booking transitions to
// cancelled with a zero total; otherwise the remainder is re-sorted and
// re-priced and the status is untouched.
func PartialCancel(bookings []model.Booking, bookingID string, seatsToCancel []string, ident model.Identity) ([]model.Booking, model.Booking, error) {
    drop := map[string]bool{}
    for _, seat := range seatsToCancel {
        drop[seat] = true
    }
    return apply(bookings, bookingID, func(b model.Booking) model.Booking {
        remaining := make([]string, 0, len(b.Seats))
        for _, seat := range b.Seats {
            if !drop[seat] {
                remaining = append(remaining, seat)
            }
        }
        sort.Strings(remaining)
        b.Seats = remaining
        b.Total = venue.TotalPrice(remaining)
        if len(remaining) == 0 {
            b.Status = model.StatusCancelled
        }
        if ident.Privileged {
            b.BookedBy = ident.DisplayName
        }
        return b
    })
}

// ConfirmPayment moves a booking from pending_payment to confirmed,
// stamping the confirming administrator and the payment time.  Any other
// starting status is rejected with ErrNotPendingPayment.
func ConfirmPayment(bookings []model.Booking, bookingID string, ident model.Identity, now time.Time) ([]model.Booking, model.Booking, error) {
    var guard error
    out, b, err := apply(bookings, bookingID, func(b model.Booking) model.Booking {
        if b.Status != model.StatusPendingPayment {
            guard = ErrNotPendingPayment
            return b
        }
        ts := now.UTC()
        b.Status = model.StatusConfirmed
        b.ConfirmedBy = ident.DisplayName
        b.PaymentTimestamp = &ts
        return b
    })
    if err != nil {
        return nil, model.Booking{}, err
    }
    if guard != nil {
        return nil, model.Booking{}, guard
    }
    return out, b, nil
}

// apply copies the collection, rewrites the booking with the given id
// through fn and returns the new collection plus the rewritten booking.
func apply(bookings []model.Booking, bookingID string, fn func(model.Booking) model.Booking) ([]model.Booking, model.Booking, error) {
    out := make([]model.Booking, len(bookings))
    copy(out, bookings)
    for i, b := range out {
        if b.ID == bookingID {
            updated := fn(cloneSeats(b))
            out[i] = updated
            return out, updated, nil
        }
    }
    return nil, model.Booking{}, ErrBookingNotFound
}

// cloneSeats detaches the seat slice so reducers can rewrite it without
// aliasing the caller's collection.
func cloneSeats(b model.Booking) model.Booking {
    seats := make([]string, len(b.Seats))
    copy(seats, b.Seats)
    b.Seats = seats
    return b
}

func sortedUnique(seats []string) []string {
    seen := map[string]bool{}
    out := make([]string, 0, len(seats))
    for _, seat := range seats {
        if !seen[seat] {
            seen[seat] = true
            out = append(out, seat)
        }
    }
    sort.Strings(out)
    return out
}
