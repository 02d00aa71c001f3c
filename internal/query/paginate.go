package query

// Page is one offset-based slice of a filtered result set.
type Page[R Record] struct {
	// Items is the slice for the requested page. Never nil.
	Items []R

	// TotalMatched counts every record that satisfied the filter, regardless
	// of the requested page.
	TotalMatched int

	Page     int
	PageSize int
}

// TotalPages returns ceil(TotalMatched / PageSize).
func (p Page[R]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalMatched == 0 {
		return 0
	}
	return (p.TotalMatched + p.PageSize - 1) / p.PageSize
}

// Empty reports whether the page holds no items. A page beyond the end of the
// result set is empty but TotalMatched still reflects the filter.
func (p Page[R]) Empty() bool {
	return len(p.Items) == 0
}

// Paginate returns the [(page-1)*pageSize, page*pageSize) slice of matches.
//
// Callers must pass page >= 1 and pageSize >= 1; the Service normalises
// both before calling. Out-of-range pages produce an empty, non-nil Items.
func Paginate[R Record](matches []R, page, pageSize int) Page[R] {
	total := len(matches)

	start := (page - 1) * pageSize
	if start < 0 || start > total {
		start = total
	}
	end := start + pageSize
	if end > total || end < start {
		end = total
	}

	items := make([]R, end-start)
	copy(items, matches[start:end])

	return Page[R]{
		Items:        items,
		TotalMatched: total,
		Page:         page,
		PageSize:     pageSize,
	}
}
