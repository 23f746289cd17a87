package handler

import (
    "fmt"
    "net/http"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/worapol/banquet-booking/internal/model"
)

const validCreateBody = `{
    "parent": {"prefix": "นาง", "firstName": "สมศรี", "lastName": "ใจดี", "phone": "0812345678"},
    "student": {"prefix": "ด.ช.", "firstName": "สมชาย", "lastName": "ใจดี", "program": "วิทย์-คณิต", "class": "ม.6/1"},
    "seats": %s
}`

func createBody(seatsJSON string) string {
    return fmt.Sprintf(validCreateBody, seatsJSON)
}

func TestCreateBooking_Success(t *testing.T) {
    st, remote := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-B", "001-A"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusCreated, rec.Code)

    var resp struct {
        Booking model.Booking `json:"booking"`
        Warning string        `json:"warning"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, "BK0001", resp.Booking.ID)
    assert.Equal(t, []string{"001-A", "001-B"}, resp.Booking.Seats)
    assert.Equal(t, 1000, resp.Booking.Total)
    assert.Equal(t, model.StatusPendingPayment, resp.Booking.Status)
    assert.Empty(t, resp.Booking.BookedBy)
    assert.Empty(t, resp.Warning)

    require.Len(t, remote.submitted, 1)
    assert.Equal(t, "BK0001", remote.submitted[0].ID)
}

func TestCreateBooking_SequentialIDs(t *testing.T) {
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, _ := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-A"]`))
    require.NoError(t, h.Create(c))

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-B"]`))
    require.NoError(t, h.Create(c))

    var resp struct {
        Booking model.Booking `json:"booking"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, "BK0002", resp.Booking.ID)
}

func TestCreateBooking_DuplicateSeatIDs(t *testing.T) {
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    // Listing a free seat twice books it once instead of toggling it off.
    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-A", "001-A", "001-B"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusCreated, rec.Code)

    var resp struct {
        Booking model.Booking `json:"booking"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, []string{"001-A", "001-B"}, resp.Booking.Seats)
    assert.Equal(t, 1000, resp.Booking.Total)
}

func TestCreateBooking_InvalidSeatID(t *testing.T) {
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["999-Z"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_MissingContactFields(t *testing.T) {
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings",
        `{"parent": {"phone": "0812345678"}, "student": {"firstName": "a", "lastName": "b"}, "seats": ["001-A"]}`)
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_NoSeats(t *testing.T) {
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`[]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_SeatAlreadyTaken(t *testing.T) {
    st, _ := newStore(t, seedBooking("BK0001", model.StatusPendingPayment, "001-A"))
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-A", "001-B"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusConflict, rec.Code)

    var resp struct {
        Unavailable []string `json:"unavailable"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, []string{"001-A"}, resp.Unavailable)

    // Nothing was committed.
    assert.Len(t, st.Bookings(), 1)
}

func TestCreateBooking_LockedTableRejected(t *testing.T) {
    // On an empty hall only table 001 is open, so a seat on 002 is refused.
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["002-A"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusConflict, rec.Code)

    var resp struct {
        Unavailable []string `json:"unavailable"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, []string{"002-A"}, resp.Unavailable)
}

func TestCreateBooking_DeadlinePassed(t *testing.T) {
    cfg := testConfig()
    cfg.BookingDeadline = time.Now().Add(-time.Hour)
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: cfg, Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-A"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateBooking_AdminBypassesDeadlineAndLocks(t *testing.T) {
    cfg := testConfig()
    cfg.BookingDeadline = time.Now().Add(-time.Hour)
    st, _ := newStore(t)
    h := &BookingHandler{Cfg: cfg, Store: st}

    // An admin may book on a locked table after the deadline.
    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["030-C"]`))
    asAdmin(c, "ครูสมหญิง")
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusCreated, rec.Code)

    var resp struct {
        Booking model.Booking `json:"booking"`
    }
    decodeBody(t, rec, &resp)
    assert.Equal(t, "ครูสมหญิง", resp.Booking.BookedBy)
}

func TestCreateBooking_RemoteDownReturnsWarning(t *testing.T) {
    st, remote := newStore(t)
    remote.submitErr = fmt.Errorf("boom")
    h := &BookingHandler{Cfg: testConfig(), Store: st}

    c, rec := newCtx(http.MethodPost, "/v1/bookings", createBody(`["001-A"]`))
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusCreated, rec.Code)

    var resp struct {
        Booking model.Booking `json:"booking"`
        Warning string        `json:"warning"`
    }
    decodeBody(t, rec, &resp)
    assert.NotEmpty(t, resp.Warning)

    // The booking is still committed locally.
    got, ok := st.Find("BK0001")
    require.True(t, ok)
    assert.Equal(t, []string{"001-A"}, got.Seats)
}
