package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worapol/banquet-booking/internal/model"
	"github.com/worapol/banquet-booking/internal/venue"
)

var (
	now    = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	parent = model.ParentInfo{Prefix: "นาง", FirstName: "สมศรี", LastName: "ใจดี", Phone: "0812345678"}
	admin  = model.Identity{Privileged: true, DisplayName: "ครูสมชาย"}
)

func TestCreateAllocatesSequentialIDs(t *testing.T) {
	bookings, first, err := Create(nil, parent, model.StudentInfo{}, []string{"001-B", "001-A"}, model.Guest, now)
	require.NoError(t, err)
	assert.Equal(t, "BK0001", first.ID)
	assert.Equal(t, []string{"001-A", "001-B"}, first.Seats, "seats are stored sorted")
	assert.Equal(t, 2*venue.SeatPrice, first.Total)
	assert.Equal(t, model.StatusPendingPayment, first.Status)
	assert.Empty(t, first.BookedBy)

	bookings, second, err := Create(bookings, parent, model.StudentInfo{}, []string{"001-C"}, admin, now)
	require.NoError(t, err)
	assert.Equal(t, "BK0002", second.ID)
	assert.Equal(t, "ครูสมชาย", second.BookedBy)
	assert.Len(t, bookings, 2)
}

func TestCreateDeduplicatesSeats(t *testing.T) {
	_, b, err := Create(nil, parent, model.StudentInfo{}, []string{"002-A", "002-A", "002-B"}, model.Guest, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"002-A", "002-B"}, b.Seats)
	assert.Equal(t, 2*venue.SeatPrice, b.Total, "duplicate seat ids must not inflate the total")
}

func TestCreateRejectsEmptySelection(t *testing.T) {
	_, _, err := Create(nil, parent, model.StudentInfo{}, nil, model.Guest, now)
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestCreateDoesNotMutateInput(t *testing.T) {
	orig := []model.Booking{{ID: "BK0001", Seats: []string{"001-A"}, Status: model.StatusConfirmed}}
	out, _, err := Create(orig, parent, model.StudentInfo{}, []string{"002-A"}, model.Guest, now)
	require.NoError(t, err)
	assert.Len(t, orig, 1)
	assert.Len(t, out, 2)
}

func TestPartialCancelScenario(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A", "001-B"}, model.Guest, now)
	require.NoError(t, err)

	bookings, b, err = PartialCancel(bookings, b.ID, []string{"001-A"}, model.Guest)
	require.NoError(t, err)
	assert.Equal(t, []string{"001-B"}, b.Seats)
	assert.Equal(t, venue.SeatPrice, b.Total)
	assert.Equal(t, model.StatusPendingPayment, b.Status, "partial cancel keeps the status")
	assert.Len(t, bookings, 1, "bookings are never physically deleted")
}

func TestFullCancelTransitionsToCancelled(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A", "001-B"}, model.Guest, now)
	require.NoError(t, err)

	_, b, err = PartialCancel(bookings, b.ID, []string{"001-A", "001-B"}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, b.Status)
	assert.Empty(t, b.Seats)
	assert.Equal(t, 0, b.Total)
	assert.Equal(t, "ครูสมชาย", b.BookedBy, "acting admin takes over attribution")
}

func TestPartialCancelDisjointSeatsIsIdempotent(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"003-A", "003-B"}, model.Guest, now)
	require.NoError(t, err)

	_, after, err := PartialCancel(bookings, b.ID, []string{"007-D"}, model.Guest)
	require.NoError(t, err)
	assert.Equal(t, b.Seats, after.Seats)
	assert.Equal(t, b.Total, after.Total)
	assert.Equal(t, b.Status, after.Status)
}

func TestPartialCancelUnknownBooking(t *testing.T) {
	_, _, err := PartialCancel(nil, "BK0042", []string{"001-A"}, model.Guest)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReplaceSwapsSeatListWholesale(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A", "001-B"}, model.Guest, now)
	require.NoError(t, err)

	_, b, err = Replace(bookings, b.ID, []string{"005-D", "005-C"}, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"005-C", "005-D"}, b.Seats)
	assert.Equal(t, 2*venue.SeatPrice, b.Total)
	assert.Equal(t, model.StatusPendingPayment, b.Status)
	assert.Equal(t, "ครูสมชาย", b.BookedBy)
}

func TestReplaceWithEmptySelectionCancels(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A"}, model.Guest, now)
	require.NoError(t, err)

	_, b, err = Replace(bookings, b.ID, nil, model.Guest)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, b.Status)
	assert.Empty(t, b.Seats)
	assert.Equal(t, 0, b.Total)
}

func TestConfirmPayment(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A"}, model.Guest, now)
	require.NoError(t, err)

	confirmedAt := now.Add(2 * time.Hour)
	bookings, b, err = ConfirmPayment(bookings, b.ID, admin, confirmedAt)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, b.Status)
	assert.Equal(t, "ครูสมชาย", b.ConfirmedBy)
	require.NotNil(t, b.PaymentTimestamp)
	assert.Equal(t, confirmedAt, *b.PaymentTimestamp)

	// Confirming twice is an illegal transition, not a crash.
	_, _, err = ConfirmPayment(bookings, b.ID, admin, confirmedAt)
	assert.ErrorIs(t, err, ErrNotPendingPayment)
}

func TestConfirmPaymentOnCancelledBooking(t *testing.T) {
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, []string{"001-A"}, model.Guest, now)
	require.NoError(t, err)
	bookings, _, err = PartialCancel(bookings, b.ID, []string{"001-A"}, model.Guest)
	require.NoError(t, err)

	_, _, err = ConfirmPayment(bookings, b.ID, admin, now)
	assert.ErrorIs(t, err, ErrNotPendingPayment)
}

// Round trip: create then immediately cancel everything.
func TestCreateThenFullCancelRoundTrip(t *testing.T) {
	seats := []string{"010-A", "010-B", "010-C", "010-D"}
	bookings, b, err := Create(nil, parent, model.StudentInfo{}, seats, model.Guest, now)
	require.NoError(t, err)

	_, b, err = PartialCancel(bookings, b.ID, seats, model.Guest)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, b.Status)
	assert.Equal(t, []string{}, b.Seats)
	assert.Equal(t, 0, b.Total)
}
