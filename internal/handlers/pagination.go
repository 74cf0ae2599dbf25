package handlers

// Page sizes are configuration constants, not derived: the payments listing
// shows 5 rows per page, the sheet listings 20.
const (
	RecordsPerPage       = 5
	RecordsPerPageSheets = 20
)

// paginate slices one page out of the already-filtered items and reports the
// total page count. Out-of-range pages yield an empty slice.
func paginate[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		return items, 1
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return nil, totalPages
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
