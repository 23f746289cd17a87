package venue

import "github.com/worapol/banquet-booking/internal/model"

// BuildOccupancy folds the booking collection into a map from seat id to
// the occupant's display label.  Cancelled bookings contribute nothing, and
// the booking identified by excludeID (the one currently being edited, if
// any) is skipped so its own seats stay selectable while editing.  Pass the
// empty string when nothing is being edited.
//
// Bookings are walked in collection order and later entries overwrite
// earlier ones for the same seat.  Non-cancelled bookings hold pairwise
// disjoint seat sets, so an overwrite should never happen; if upstream data
// violates that, the last writer simply wins.
func BuildOccupancy(bookings []model.Booking, excludeID string) map[string]string {
    occ := make(map[string]string)
    for _, b := range bookings {
        if b.ID == excludeID || b.Status == model.StatusCancelled {
            continue
        }
        label := b.ParentLabel()
        for _, seat := range b.Seats {
            occ[seat] = label
        }
    }
    return occ
}

// TableFullyBooked reports whether every seat slot of the table appears in
// the occupancy index.
func TableFullyBooked(occ map[string]string, tableID string) bool {
    for i := 0; i < SeatsPerTable; i++ {
        if _, ok := occ[SeatID(tableID, i)]; !ok {
            return false
        }
    }
    return true
}
