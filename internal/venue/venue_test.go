package venue

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worapol/banquet-booking/internal/model"
)

func booking(id string, status model.BookingStatus, seats ...string) model.Booking {
	return model.Booking{
		ID:     id,
		Parent: model.ParentInfo{Prefix: "นาง", FirstName: "สมศรี", LastName: id},
		Seats:  seats,
		Total:  TotalPrice(seats),
		Status: status,
		Timestamp: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

// occupyTables marks every seat of the given tables as occupied.
func occupyTables(occ map[string]string, tableIDs ...string) {
	for _, id := range tableIDs {
		for _, seat := range TableSeats(id) {
			occ[seat] = "taken"
		}
	}
}

func TestSeatIDHelpers(t *testing.T) {
	assert.Equal(t, "001", TableID(0))
	assert.Equal(t, "060", TableID(TotalTables-1))
	assert.Equal(t, []string{"007-A", "007-B", "007-C", "007-D"}, TableSeats("007"))
	assert.Equal(t, "012", SeatTable("012-C"))
	assert.Equal(t, "", SeatTable("012C"))

	assert.True(t, ValidSeatID("001-A"))
	assert.True(t, ValidSeatID("060-D"))
	assert.False(t, ValidSeatID("000-A"))
	assert.False(t, ValidSeatID("061-A"))
	assert.False(t, ValidSeatID("001-E"))
	assert.False(t, ValidSeatID("01-A"))
	assert.False(t, ValidSeatID("001A"))
	assert.False(t, ValidSeatID("abc-A"))
}

func TestTotalPriceFlatRate(t *testing.T) {
	assert.Equal(t, 0, TotalPrice(nil))
	assert.Equal(t, SeatPrice, TotalPrice([]string{"001-A"}))
	assert.Equal(t, 3*SeatPrice, TotalPrice([]string{"001-A", "001-B", "002-C"}))
}

func TestBuildOccupancyLabelsAndSkips(t *testing.T) {
	bookings := []model.Booking{
		booking("BK0001", model.StatusConfirmed, "001-A", "001-B"),
		booking("BK0002", model.StatusPendingPayment, "001-C"),
		booking("BK0003", model.StatusCancelled, "002-A"),
	}
	occ := BuildOccupancy(bookings, "")

	require.Len(t, occ, 3)
	assert.Equal(t, "นาง สมศรี BK0001", occ["001-A"])
	assert.Equal(t, "นาง สมศรี BK0002", occ["001-C"])
	_, cancelled := occ["002-A"]
	assert.False(t, cancelled, "cancelled bookings must not occupy seats")
}

func TestBuildOccupancyExcludesEditedBooking(t *testing.T) {
	bookings := []model.Booking{
		booking("BK0001", model.StatusConfirmed, "001-A", "001-B"),
		booking("BK0002", model.StatusConfirmed, "001-C"),
	}
	occ := BuildOccupancy(bookings, "BK0001")

	for _, seat := range []string{"001-A", "001-B"} {
		_, ok := occ[seat]
		assert.False(t, ok, "seat %s of the edited booking must not appear", seat)
	}
	_, ok := occ["001-C"]
	assert.True(t, ok)
}

func TestBuildOccupancyLastWriterWins(t *testing.T) {
	bookings := []model.Booking{
		booking("BK0001", model.StatusConfirmed, "003-A"),
		booking("BK0002", model.StatusConfirmed, "003-A"),
	}
	// Disjointness is violated here; the fold must not fail and the later
	// booking's label must win.
	occ := BuildOccupancy(bookings, "")
	assert.Equal(t, "นาง สมศรี BK0002", occ["003-A"])
}

func TestUnlockedTablesEmptyHall(t *testing.T) {
	unlocked := UnlockedTables(map[string]string{})
	assert.Equal(t, map[string]bool{"001": true}, unlocked)
}

func TestUnlockedTablesWavefront(t *testing.T) {
	cases := []struct {
		name       string
		booked     []string
		wantOpen   []string
		wantClosed []string
	}{
		{
			name:       "first table filling opens the second",
			booked:     []string{"001"},
			wantOpen:   []string{"001", "002"},
			wantClosed: []string{"003", "011"},
		},
		{
			name:       "nine booked opens the whole first row",
			booked:     []string{"001", "002", "003", "004", "005", "006", "007", "008", "009"},
			wantOpen:   []string{"001", "009", "010"},
			wantClosed: []string{"011"},
		},
		{
			name:       "completed row seeds the next row",
			booked:     []string{"001", "002", "003", "004", "005", "006", "007", "008", "009", "010"},
			wantOpen:   []string{"001", "010", "011"},
			wantClosed: []string{"012", "021"},
		},
		{
			name:       "second row wavefront",
			booked:     []string{"001", "002", "003", "004", "005", "006", "007", "008", "009", "010", "011"},
			wantOpen:   []string{"011", "012"},
			wantClosed: []string{"013"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			occ := map[string]string{}
			occupyTables(occ, tc.booked...)
			unlocked := UnlockedTables(occ)
			for _, id := range tc.wantOpen {
				assert.True(t, unlocked[id], "table %s should be unlocked", id)
			}
			for _, id := range tc.wantClosed {
				assert.False(t, unlocked[id], "table %s should stay locked", id)
			}
		})
	}
}

func TestUnlockedTablesFullHall(t *testing.T) {
	occ := map[string]string{}
	occupyTables(occ, TableIDs()...)
	unlocked := UnlockedTables(occ)
	assert.Len(t, unlocked, TotalTables)
}

// TestUnlockMonotonicity fills the hall table by table in wavefront order
// and checks that a table, once fully booked, never drops out of the
// unlocked set on later calls.
func TestUnlockMonotonicity(t *testing.T) {
	occ := map[string]string{}
	everUnlocked := map[string]bool{}
	for i := 0; i < TotalTables; i++ {
		id := TableID(i)
		occupyTables(occ, id)
		unlocked := UnlockedTables(occ)
		for prev := range everUnlocked {
			if TableFullyBooked(occ, prev) {
				assert.True(t, unlocked[prev],
					fmt.Sprintf("table %s was unlocked and fully booked but got retracted", prev))
			}
		}
		for id := range unlocked {
			everUnlocked[id] = true
		}
	}
}

func TestTableFullyBooked(t *testing.T) {
	occ := map[string]string{}
	occupyTables(occ, "005")
	delete(occ, "005-C")
	assert.False(t, TableFullyBooked(occ, "005"))
	occ["005-C"] = "taken"
	assert.True(t, TableFullyBooked(occ, "005"))
}
