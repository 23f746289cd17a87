package handler

import (
    "context"
    "encoding/json"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/worapol/banquet-booking/internal/config"
    "github.com/worapol/banquet-booking/internal/model"
    "github.com/worapol/banquet-booking/internal/store"
)

// --- Stub Remote ---

type stubRemote struct {
    bookings  []model.Booking
    listErr   error
    submitErr error
    submitted []model.Booking
}

func (r *stubRemote) ListBookings(ctx context.Context) ([]model.Booking, error) {
    return r.bookings, r.listErr
}

func (r *stubRemote) Submit(ctx context.Context, action store.Action, b model.Booking) error {
    if r.submitErr != nil {
        return r.submitErr
    }
    r.submitted = append(r.submitted, b)
    return nil
}

// newStore builds a loaded Store seeded with the given bookings.
func newStore(t *testing.T, seed ...model.Booking) (*store.Store, *stubRemote) {
    t.Helper()
    remote := &stubRemote{bookings: seed}
    st := store.New(remote, nil)
    require.NoError(t, st.Load(context.Background()))
    return st, remote
}

// newCtx builds an echo context for a JSON request.
func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

// asAdmin injects the context values the JWT middleware would set.
func asAdmin(c echo.Context, displayName string) {
    c.Set("user_id", strings.ToLower(strings.ReplaceAll(displayName, " ", ".")))
    c.Set("role", "ADMIN")
    c.Set("name", displayName)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
    t.Helper()
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// seedBooking is a minimal valid booking for fixtures.
func seedBooking(id string, status model.BookingStatus, seats ...string) model.Booking {
    if seats == nil {
        seats = []string{}
    }
    return model.Booking{
        ID:     id,
        Parent: model.ParentInfo{Prefix: "นาง", FirstName: "สมศรี", LastName: "ใจดี", Phone: "0812345678"},
        Student: model.StudentInfo{
            Prefix: "ด.ช.", FirstName: "สมชาย", LastName: "ใจดี", Program: "วิทย์-คณิต", Class: "ม.6/1",
        },
        Seats:     seats,
        Total:     500 * len(seats),
        Status:    status,
        Timestamp: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
    }
}

func testConfig() config.Config {
    return config.Config{
        Env:          "test",
        Port:         "8080",
        JWTSecret:    "test-secret",
        AccessTTLMin: 15,
        BcryptCost:   4,
    }
}
