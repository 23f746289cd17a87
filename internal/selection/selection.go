// Package selection maintains the transient set of seats a visitor has
// picked but not yet committed to a booking.  The controller enforces the
// per-seat and per-table toggle rules against the occupancy index and the
// table unlock policy; it performs no I/O and holds no reference to the
// booking collection itself.
package selection

import (
    "errors"
    "sort"

    "github.com/worapol/banquet-booking/internal/model"
    "github.com/worapol/banquet-booking/internal/venue"
)

// ErrTablePartiallyBooked is returned by ToggleTable when any seat of the
// table is already taken.  Handlers surface it to the user as a warning;
// the selection is left untouched.
var ErrTablePartiallyBooked = errors.New("table has booked seats and cannot be selected as a whole")

// Gate carries the read-only context a toggle is evaluated against.  The
// occupancy index must already exclude the booking under edit (see
// venue.BuildOccupancy), Unlocked is the current unlock set, and Privileged
// callers bypass the unlock policy.  A nil Unlocked map disables the unlock
// re-check, for callers that have already filtered by unlock state.
type Gate struct {
    Occupancy  map[string]string
    Unlocked   map[string]bool
    Privileged bool
}

// open reports whether the gate permits interaction with the table at all.
func (g Gate) open(tableID string) bool {
    if g.Privileged || g.Unlocked == nil {
        return true
    }
    return g.Unlocked[tableID]
}

// Selection is a mutable set of selected seat ids.  When a booking is being
// edited, the selection additionally remembers that booking's id and seats:
// those seats stay toggleable even though other visitors see them as booked.
type Selection struct {
    seats   map[string]bool
    editing map[string]bool
    editID  string
}

// New returns an empty selection for a fresh booking.
func New() *Selection {
    return &Selection{seats: map[string]bool{}, editing: map[string]bool{}}
}

// NewForEdit returns a selection that represents the full replacement seat
// list for the given booking.  The selection starts out holding the
// booking's current seats.
func NewForEdit(b model.Booking) *Selection {
    s := &Selection{seats: map[string]bool{}, editing: map[string]bool{}, editID: b.ID}
    for _, seat := range b.Seats {
        s.seats[seat] = true
        s.editing[seat] = true
    }
    return s
}

// EditingID returns the id of the booking being edited, or "" for a fresh
// selection.
func (s *Selection) EditingID() string { return s.editID }

// ToggleSeat flips the membership of a single seat.  Toggling a seat that
// is occupied by someone else, or that sits on a locked table for an
// unprivileged caller, is a silent no-op.
func (s *Selection) ToggleSeat(g Gate, seatID string) {
    if !g.open(venue.SeatTable(seatID)) {
        return
    }
    if _, busy := g.Occupancy[seatID]; busy && !s.editing[seatID] {
        return
    }
    if s.seats[seatID] {
        delete(s.seats, seatID)
    } else {
        s.seats[seatID] = true
    }
}

// ToggleTable selects or deselects a whole table.  When every seat of the
// table is already selected they are all removed; otherwise all of them are
// added (union, no duplicates).  The operation is rejected wholesale with
// ErrTablePartiallyBooked if any seat of the table is occupied — partial
// application would strand the visitor with a half-selected table.
func (s *Selection) ToggleTable(g Gate, tableID string) error {
    if !g.open(tableID) {
        return nil
    }
    tableSeats := venue.TableSeats(tableID)
    for _, seat := range tableSeats {
        if _, busy := g.Occupancy[seat]; busy && !s.editing[seat] {
            return ErrTablePartiallyBooked
        }
    }

    all := true
    for _, seat := range tableSeats {
        if !s.seats[seat] {
            all = false
            break
        }
    }
    for _, seat := range tableSeats {
        if all {
            delete(s.seats, seat)
        } else {
            s.seats[seat] = true
        }
    }
    return nil
}

// Clear empties the selection.  The editing context is kept so a visitor
// can restart picking seats for the same booking.
func (s *Selection) Clear() {
    s.seats = map[string]bool{}
}

// Contains reports whether the seat is currently selected.
func (s *Selection) Contains(seatID string) bool { return s.seats[seatID] }

// Len returns the number of selected seats.
func (s *Selection) Len() int { return len(s.seats) }

// Seats returns the selected seat ids sorted for display.
func (s *Selection) Seats() []string {
    out := make([]string, 0, len(s.seats))
    for seat := range s.seats {
        out = append(out, seat)
    }
    sort.Strings(out)
    return out
}
