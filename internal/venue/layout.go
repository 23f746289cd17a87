// Package venue models the fixed table and seat grid of the event hall and
// the availability rules derived from it.  The layout never changes at
// runtime: tables are numbered 001..060 from the stage outwards, each table
// seats four guests labelled A..D, and tables are arranged in rows of ten
// for the progressive unlock policy.
package venue

import (
    "fmt"
    "strings"
)

const (
    // MainTables and ReserveTables partition the grid: reserve tables sit
    // behind the main block and are only reached once everything before
    // them has filled up, which the row unlock policy enforces for free.
    MainTables    = 50
    ReserveTables = 10
    TotalTables   = MainTables + ReserveTables

    SeatsPerTable = 4
    TablesPerRow  = 10

    // SeatPrice is the flat price per seat in baht.  Pricing is uniform
    // across the hall; TotalPrice is the only place that reads it.
    SeatPrice = 500
)

// TotalSeats is the capacity of the whole hall.
const TotalSeats = TotalTables * SeatsPerTable

// TableID formats a zero-based table index as the canonical 3-digit id,
// e.g. 0 -> "001".
func TableID(i int) string {
    return fmt.Sprintf("%03d", i+1)
}

// TableIDs returns all table ids in stage order.  The slice is freshly
// allocated on every call so callers may modify it.
func TableIDs() []string {
    ids := make([]string, TotalTables)
    for i := range ids {
        ids[i] = TableID(i)
    }
    return ids
}

// SeatID composes a table id and a zero-based seat index into a seat id,
// e.g. ("001", 0) -> "001-A".
func SeatID(tableID string, seat int) string {
    return fmt.Sprintf("%s-%c", tableID, 'A'+rune(seat))
}

// TableSeats returns the fixed seat ids belonging to a table.
func TableSeats(tableID string) []string {
    seats := make([]string, SeatsPerTable)
    for i := range seats {
        seats[i] = SeatID(tableID, i)
    }
    return seats
}

// SeatTable extracts the table id from a seat id ("001-A" -> "001").  It
// returns the empty string when the seat id has no table prefix.
func SeatTable(seatID string) string {
    table, _, ok := strings.Cut(seatID, "-")
    if !ok {
        return ""
    }
    return table
}

// ValidSeatID reports whether a seat id names an existing seat in the grid.
func ValidSeatID(seatID string) bool {
    table, letter, ok := strings.Cut(seatID, "-")
    if !ok || len(table) != 3 || len(letter) != 1 {
        return false
    }
    n := 0
    for _, r := range table {
        if r < '0' || r > '9' {
            return false
        }
        n = n*10 + int(r-'0')
    }
    if n < 1 || n > TotalTables {
        return false
    }
    c := letter[0]
    return c >= 'A' && c < 'A'+SeatsPerTable
}
