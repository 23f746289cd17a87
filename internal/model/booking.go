package model

import (
    "fmt"
    "time"
)

// BookingStatus enumerates the lifecycle states of a booking.  A booking
// starts in PENDING_PAYMENT when created, moves to CONFIRMED once an
// administrator verifies the payment, and becomes CANCELLED when all of
// its seats are released.  The reducer in internal/lifecycle is the only
// code that transitions between these values.
type BookingStatus string

const (
    StatusPendingPayment BookingStatus = "pending_payment"
    StatusConfirmed      BookingStatus = "confirmed"
    StatusCancelled      BookingStatus = "cancelled"
)

// ParseStatus validates a raw status string, typically read back from the
// spreadsheet store, and returns it as a BookingStatus.
func ParseStatus(s string) (BookingStatus, error) {
    switch BookingStatus(s) {
    case StatusPendingPayment, StatusConfirmed, StatusCancelled:
        return BookingStatus(s), nil
    }
    return "", fmt.Errorf("unknown booking status: %q", s)
}

// ParentInfo holds the contact details of the parent who made the booking.
// The prefix is a Thai honorific (นาย, นาง, นางสาว, ...).
type ParentInfo struct {
    Prefix    string `json:"prefix"`
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
    Phone     string `json:"phone"`
}

// StudentInfo identifies the student the seats are booked for.
type StudentInfo struct {
    Prefix    string `json:"prefix"`
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
    Program   string `json:"program"`
    Class     string `json:"class"`
}

// Booking aggregates the seats reserved under a single transaction together
// with attendee details, the derived total and the lifecycle status.  The
// JSON shape matches the row layout of the spreadsheet store, so a Booking
// marshals directly into a CREATE/UPDATE payload.
//
// Invariants maintained by the lifecycle reducer:
//   - Seats is kept sorted and free of duplicates.
//   - Total always equals the flat per-seat price times len(Seats).
//   - An empty seat list implies StatusCancelled and Total == 0.
//
// Fields:
//  ID               – sequential identifier of the form BK0001.
//  Parent           – contact info of the booking parent.
//  Student          – the student attending the event.
//  Seats            – sorted seat ids such as "001-A".
//  Total            – total price in baht for all seats.
//  Status           – lifecycle state, see BookingStatus.
//  Timestamp        – when the booking was created (UTC).
//  BookedBy         – display name of the admin who entered the booking, if any.
//  ConfirmedBy      – display name of the admin who confirmed the payment.
//  PaymentTimestamp – when the payment was confirmed (UTC).
type Booking struct {
    ID               string        `json:"id"`
    Parent           ParentInfo    `json:"parent"`
    Student          StudentInfo   `json:"student"`
    Seats            []string      `json:"seats"`
    Total            int           `json:"total"`
    Status           BookingStatus `json:"status"`
    Timestamp        time.Time     `json:"timestamp"`
    BookedBy         string        `json:"bookedBy,omitempty"`
    ConfirmedBy      string        `json:"confirmedBy,omitempty"`
    PaymentTimestamp *time.Time    `json:"paymentTimestamp,omitempty"`
}

// ParentLabel returns the display label shown on occupied seats, e.g.
// "นาง สมศรี ใจดี".  The same label format is stored in the occupancy index.
func (b Booking) ParentLabel() string {
    return fmt.Sprintf("%s %s %s", b.Parent.Prefix, b.Parent.FirstName, b.Parent.LastName)
}

// Active reports whether the booking still holds seats, i.e. it has not
// been fully cancelled.
func (b Booking) Active() bool {
    return b.Status != StatusCancelled
}
