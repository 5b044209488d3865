package pagination

const (
	// DefaultLimit is used when the caller does not supply a page size.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// ClampLimit normalizes a requested page size into [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampPage normalizes a requested page number to be at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts a (page, limit) pair into a row offset.
func Offset(page, limit int) int {
	return (ClampPage(page) - 1) * ClampLimit(limit)
}

// TotalPages computes the page count for a total row count, never less than
// zero. A zero total yields zero pages.
func TotalPages(total int64, limit int) int {
	limit = ClampLimit(limit)
	if total <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
