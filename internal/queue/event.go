// Package queue defines message payloads exchanged over the message broker.
package queue

// Event actions published on the booking.events queue.
const (
    ActionBookingCreated   = "booking.created"
    ActionBookingUpdated   = "booking.updated"
    ActionBookingCancelled = "booking.cancelled"
    ActionPaymentConfirmed = "payment.confirmed"
)

// BookingEvent is published after every lifecycle transition.  It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without reading the spreadsheet: the booking id, the resulting
// seat list and total, the new status and who performed the action.
type BookingEvent struct {
    Action     string   `json:"action"`
    BookingID  string   `json:"booking_id"`
    Parent     string   `json:"parent"`
    Seats      []string `json:"seats"`
    Total      int      `json:"total"`
    Status     string   `json:"status"`
    Actor      string   `json:"actor,omitempty"`
    OccurredAt string   `json:"occurred_at"`
}
