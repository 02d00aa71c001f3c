package query

import "strings"

// Predicate decides whether a record belongs to a result set.
type Predicate[R Record] func(R) bool

// MatchAll is the predicate used when no filter is active.
func MatchAll[R Record]() Predicate[R] {
	return func(R) bool { return true }
}

// matchNone is used when a filter can never be satisfied (e.g. a category
// restriction on a record type without a category attribute).
func matchNone[R Record]() Predicate[R] {
	return func(R) bool { return false }
}

// And combines predicates with logical AND. A nil predicate is ignored.
func And[R Record](preds ...Predicate[R]) Predicate[R] {
	active := make([]Predicate[R], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	switch len(active) {
	case 0:
		return MatchAll[R]()
	case 1:
		return active[0]
	}

	return func(r R) bool {
		for _, p := range active {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Fields names the filterable attributes of a record type. Leaving an
// accessor nil means the record type has no such attribute.
type Fields[R Record] struct {
	// Category returns the record's category id.
	Category func(R) int64

	// Tags returns the record's tags. A tag filter matches when any tag is
	// equal to the requested one.
	Tags func(R) []string

	// Text returns the attribute searched by Query.Search.
	Text func(R) string
}

// PredicateBuilder translates a Query into a Predicate for one record type.
type PredicateBuilder[R Record] struct {
	fields Fields[R]
}

// NewPredicateBuilder returns a builder bound to fields.
func NewPredicateBuilder[R Record](fields Fields[R]) *PredicateBuilder[R] {
	return &PredicateBuilder[R]{fields: fields}
}

// Build returns the conjunction of every filter active in q.
//
// Unknown category ids are not rejected; they simply match nothing.
func (b *PredicateBuilder[R]) Build(q Query) Predicate[R] {
	var preds []Predicate[R]

	if id, ok := q.Category.ID(); ok {
		preds = append(preds, b.category(id))
	}

	if tag := strings.TrimSpace(q.Tag); tag != "" {
		preds = append(preds, b.tag(tag))
	}

	if term := strings.TrimSpace(q.Search); term != "" {
		preds = append(preds, b.search(term))
	}

	if len(q.Excluded) > 0 {
		preds = append(preds, exclude[R](NewIDSet(q.Excluded...)))
	}

	return And(preds...)
}

func (b *PredicateBuilder[R]) category(id int64) Predicate[R] {
	get := b.fields.Category
	if get == nil {
		return matchNone[R]()
	}
	return func(r R) bool { return get(r) == id }
}

func (b *PredicateBuilder[R]) tag(tag string) Predicate[R] {
	get := b.fields.Tags
	if get == nil {
		return matchNone[R]()
	}
	return func(r R) bool {
		for _, t := range get(r) {
			if t == tag {
				return true
			}
		}
		return false
	}
}

func (b *PredicateBuilder[R]) search(term string) Predicate[R] {
	get := b.fields.Text
	if get == nil {
		return matchNone[R]()
	}
	needle := strings.ToLower(term)
	return func(r R) bool {
		return strings.Contains(strings.ToLower(get(r)), needle)
	}
}

func exclude[R Record](ids IDSet) Predicate[R] {
	return func(r R) bool { return !ids.Contains(r.RecordID()) }
}
