// Package store persists the booking collection.  The system of record is
// an external spreadsheet-backed web API; a Redis snapshot acts as the
// local fallback.  Writes are optimistic: the in-memory collection and the
// snapshot are updated first and a failed remote write only degrades to a
// user-facing warning.
package store

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/worapol/banquet-booking/internal/model"
)

// Action names the write operations the sheet API understands.
type Action string

const (
    ActionCreate Action = "CREATE"
    ActionUpdate Action = "UPDATE"
)

// ErrRemoteUnavailable wraps any transport or API-level failure talking to
// the sheet endpoint.  Callers treat it as non-fatal.
var ErrRemoteUnavailable = errors.New("booking sheet unreachable")

// sheetEnvelope is the response wrapper the Apps Script endpoint returns
// for both reads and writes.
type sheetEnvelope struct {
    Status  string          `json:"status"`
    Message string          `json:"message"`
    Data    json.RawMessage `json:"data"`
}

// SheetClient talks to the spreadsheet web API.  All calls carry a bounded
// timeout: a hung sheet endpoint must not pin request handlers.
type SheetClient struct {
    baseURL string
    http    *http.Client
}

// NewSheetClient returns a client for the given endpoint URL.  A
// non-positive timeout falls back to 10 seconds.
func NewSheetClient(baseURL string, timeout time.Duration) *SheetClient {
    if timeout <= 0 {
        timeout = 10 * time.Second
    }
    return &SheetClient{
        baseURL: baseURL,
        http:    &http.Client{Timeout: timeout},
    }
}

// ListBookings fetches the full booking collection (GET ?action=READ).
func (c *SheetClient) ListBookings(ctx context.Context) ([]model.Booking, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=READ", nil)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
    }
    defer func() { _ = resp.Body.Close() }()

    env, err := decodeEnvelope(resp)
    if err != nil {
        return nil, err
    }
    var bookings []model.Booking
    if err := json.Unmarshal(env.Data, &bookings); err != nil {
        return nil, fmt.Errorf("%w: malformed booking data: %v", ErrRemoteUnavailable, err)
    }
    return bookings, nil
}

// Submit posts a CREATE or UPDATE for a single booking.  The sheet API
// accepts the whole booking as payload and upserts the matching row.
func (c *SheetClient) Submit(ctx context.Context, action Action, b model.Booking) error {
    body, err := json.Marshal(struct {
        Action  Action        `json:"action"`
        Payload model.Booking `json:"payload"`
    }{Action: action, Payload: b})
    if err != nil {
        return err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
    if err != nil {
        return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
    }
    // The Apps Script endpoint only accepts simple requests; text/plain
    // avoids a CORS-style preflight on its side.
    req.Header.Set("Content-Type", "text/plain;charset=utf-8")

    resp, err := c.http.Do(req)
    if err != nil {
        return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
    }
    defer func() { _ = resp.Body.Close() }()

    _, err = decodeEnvelope(resp)
    return err
}

func decodeEnvelope(resp *http.Response) (*sheetEnvelope, error) {
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
    }
    var env sheetEnvelope
    if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
        return nil, fmt.Errorf("%w: bad response body: %v", ErrRemoteUnavailable, err)
    }
    if env.Status != "success" {
        msg := env.Message
        if msg == "" {
            msg = "API returned an error"
        }
        return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, msg)
    }
    return &env, nil
}
