package query

import (
	"context"

	"github.com/rs/zerolog"
)

// Service composes the predicate builder, paginator and selector over one
// Store. It is safe for concurrent use as long as the Store is.
type Service[R Record] struct {
	store           Store[R]
	builder         *PredicateBuilder[R]
	selector        *Selector
	defaultPageSize int
	logger          *zerolog.Logger
}

// Option customises a Service.
type Option func(*options)

type options struct {
	selector        *Selector
	defaultPageSize int
	logger          *zerolog.Logger
}

// WithSelector overrides the random selector used by Draw.
func WithSelector(s *Selector) Option {
	return func(o *options) { o.selector = s }
}

// WithDefaultPageSize sets the page size used when a Query leaves it at zero.
// Values < 1 are ignored.
func WithDefaultPageSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.defaultPageSize = n
		}
	}
}

// WithLogger attaches a logger for debug-level tracing of each call.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewService returns a Service reading from store and filtering on fields.
func NewService[R Record](store Store[R], fields Fields[R], opts ...Option) *Service[R] {
	o := options{defaultPageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.selector == nil {
		o.selector = NewSelector(nil)
	}
	if o.logger == nil {
		nop := zerolog.Nop()
		o.logger = &nop
	}

	return &Service[R]{
		store:           store,
		builder:         NewPredicateBuilder(fields),
		selector:        o.selector,
		defaultPageSize: o.defaultPageSize,
		logger:          o.logger,
	}
}

// List filters the store and returns the requested page.
//
// Zero matches, or a page past the end, yield an empty Page and a nil error.
// Deciding whether that is a "not found" is left to the caller.
func (s *Service[R]) List(ctx context.Context, q Query) (Page[R], error) {
	page, size, err := s.normalizePage(q)
	if err != nil {
		return Page[R]{}, err
	}

	matches, err := s.store.Filter(ctx, s.builder.Build(q))
	if err != nil {
		return Page[R]{}, err
	}

	result := Paginate(matches, page, size)

	s.logger.Debug().
		Str("category", q.Category.String()).
		Str("tag", q.Tag).
		Str("search", q.Search).
		Int("page", page).
		Int("page_size", size).
		Int("total_matched", result.TotalMatched).
		Int("returned", len(result.Items)).
		Msg("query list")

	return result, nil
}

// Draw returns one random record matching q that is not in q.Excluded.
//
// A Query whose Category is Unset is rejected with a MalformedQueryError; use
// AllCategories() to draw from every category.
func (s *Service[R]) Draw(ctx context.Context, q Query) (Draw[R], error) {
	if !q.Category.IsSet() {
		return Draw[R]{}, malformed("category", "category is required; use all to disable the restriction")
	}

	eligible, err := s.store.Filter(ctx, s.builder.Build(q))
	if err != nil {
		return Draw[R]{}, err
	}

	d := SelectOne(s.selector, eligible)

	s.logger.Debug().
		Str("category", q.Category.String()).
		Int("excluded", len(q.Excluded)).
		Int("eligible", len(eligible)).
		Bool("found", d.Found).
		Msg("query draw")

	return d, nil
}

func (s *Service[R]) normalizePage(q Query) (page, size int, err error) {
	switch {
	case q.Page < 0:
		return 0, 0, malformed("page", "must be >= 1")
	case q.PageSize < 0:
		return 0, 0, malformed("page_size", "must be >= 1")
	}

	page, size = q.Page, q.PageSize
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = s.defaultPageSize
	}
	return page, size, nil
}
