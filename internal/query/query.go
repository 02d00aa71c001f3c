// Package query is the selection core shared by every listing endpoint.
//
// It knows nothing about HTTP, SQL or the shape of a concrete record. Callers
// describe a request with a Query, tell the package which attributes of their
// record type are filterable through Fields, and hand it a Store to read from.
//
// Two operations come out of that:
//   - List: filter + paginate, always returning a Page (possibly empty).
//   - Draw: filter + exclude + pick one at random, returning an explicit
//     "none" marker when nothing is eligible.
//
// The package holds no state between calls and never mutates records.
package query

import "strconv"

// DefaultPageSize is used when a Query leaves PageSize at zero.
const DefaultPageSize = 10

// Record is anything the core can select. The identifier must be stable and
// unique within one Store.
type Record interface {
	RecordID() int64
}

type categoryState uint8

const (
	categoryUnset categoryState = iota
	categoryAll
	categorySpecific
)

// Category is a tagged optional with three distinct states:
//
//   - Unset: the caller supplied no category information at all.
//   - All: the caller explicitly asked for every category.
//   - Specific: the caller asked for exactly one category id.
//
// The zero value is Unset. CategoryID(0) is a specific category whose id is
// zero; it is NOT a wildcard. Translating legacy "0 means all" payloads is the
// job of the transport layer.
type Category struct {
	state categoryState
	id    int64
}

// AllCategories returns the explicit "no category restriction" selector.
func AllCategories() Category {
	return Category{state: categoryAll}
}

// CategoryID returns a selector for exactly one category.
func CategoryID(id int64) Category {
	return Category{state: categorySpecific, id: id}
}

// IsSet reports whether the caller supplied any category information.
func (c Category) IsSet() bool { return c.state != categoryUnset }

// IsAll reports whether the selector is the explicit wildcard.
func (c Category) IsAll() bool { return c.state == categoryAll }

// ID returns the specific category id. ok is false for Unset and All.
func (c Category) ID() (id int64, ok bool) {
	if c.state != categorySpecific {
		return 0, false
	}
	return c.id, true
}

func (c Category) String() string {
	switch c.state {
	case categoryAll:
		return "all"
	case categorySpecific:
		return "category:" + strconv.FormatInt(c.id, 10)
	default:
		return "unset"
	}
}

// Query describes one request against the core. It is a value type; the
// With* helpers return modified copies and never touch the receiver.
type Query struct {
	// Category restricts by the record's category attribute.
	Category Category

	// Tag restricts by the record's tag attribute. Empty means no restriction.
	Tag string

	// Search is a case-insensitive substring matched against the record's
	// text attribute. Whitespace-only terms are ignored.
	Search string

	// Excluded lists identifiers that must never be returned.
	Excluded []int64

	// Page is 1-based. Zero selects the first page.
	Page int

	// PageSize bounds the number of items per page. Zero selects the default.
	PageSize int
}

// WithCategory returns a copy of q restricted to c.
func (q Query) WithCategory(c Category) Query {
	q.Category = c
	return q
}

// WithSearch returns a copy of q with the given search term.
func (q Query) WithSearch(term string) Query {
	q.Search = term
	return q
}

// WithTag returns a copy of q with the given tag restriction.
func (q Query) WithTag(tag string) Query {
	q.Tag = tag
	return q
}

// WithPage returns a copy of q pointing at page/pageSize.
func (q Query) WithPage(page, pageSize int) Query {
	q.Page = page
	q.PageSize = pageSize
	return q
}

// WithExcluded returns a copy of q excluding ids. The slice is copied so later
// changes by the caller do not leak into the query.
func (q Query) WithExcluded(ids ...int64) Query {
	q.Excluded = append([]int64(nil), ids...)
	return q
}
