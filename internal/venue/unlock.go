package venue

// UnlockedTables computes the set of tables an ordinary guest may interact
// with, given the current occupancy index.  Tables are released row by row
// so demand fills the hall from the stage outwards instead of scattering:
//
//  1. Every table in a fully booked row stays unlocked.  The first row that
//     is not fully booked is the active row; everything after it is locked.
//  2. Within the active row, count the leading run of fully booked tables
//     (k) and unlock the first k+1 tables, bounded by the row length.  Each
//     table that fills therefore opens exactly one fresh table.
//  3. When nothing in the active row is booked yet (k == 0) only its first
//     table is unlocked, which seeds the row right after the previous row
//     completes.
//
// Administrators bypass this policy entirely; the handlers simply skip the
// check for privileged identities.  The row width and one-table lookahead
// are a product decision, not tunables.
func UnlockedTables(occ map[string]string) map[string]bool {
    tables := TableIDs()
    unlocked := make(map[string]bool)
    totalRows := (len(tables) + TablesPerRow - 1) / TablesPerRow

    activeRow := totalRows
    for row := 0; row < totalRows; row++ {
        rowTables := rowSlice(tables, row)
        full := true
        for _, id := range rowTables {
            if !TableFullyBooked(occ, id) {
                full = false
                break
            }
        }
        if !full {
            activeRow = row
            break
        }
        for _, id := range rowTables {
            unlocked[id] = true
        }
    }
    if activeRow >= totalRows {
        // Whole hall is booked out.
        return unlocked
    }

    rowTables := rowSlice(tables, activeRow)
    lead := 0
    for _, id := range rowTables {
        if !TableFullyBooked(occ, id) {
            break
        }
        lead++
    }
    open := lead + 1
    if open > len(rowTables) {
        open = len(rowTables)
    }
    for i := 0; i < open; i++ {
        unlocked[rowTables[i]] = true
    }
    return unlocked
}

// rowSlice returns the table ids making up the given zero-based row.
func rowSlice(tables []string, row int) []string {
    start := row * TablesPerRow
    end := start + TablesPerRow
    if end > len(tables) {
        end = len(tables)
    }
    return tables[start:end]
}
