package venue

// TotalPrice sums the per-seat price over the given seat list.  The hall
// uses a single flat rate, so the result is SeatPrice * len(seats); the
// function exists so a tiered price table can slot in without touching the
// lifecycle reducer.  Callers must pass a de-duplicated list — duplicate
// entries are counted twice.
func TotalPrice(seats []string) int {
    total := 0
    for range seats {
        total += SeatPrice
    }
    return total
}
