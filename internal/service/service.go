// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Listing and drawing go through the generic
// selection core in internal/query; repositories only supply the
// records.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/metrics"
	"github.com/deppfellow/go-quizbank/internal/query"
)

// Record type labels used on metrics.
const (
	recordQuestion = "question"
	recordEvent    = "event"
)

// listWithMetrics runs one core List and records its outcome.
func listWithMetrics[R query.Record](ctx context.Context, collector *metrics.Collector, record string, core *query.Service[R], q query.Query) (query.Page[R], error) {
	start := time.Now()
	page, err := core.List(ctx, q)
	collector.ObserveList(record, start, page.TotalMatched, page.Empty(), err)
	return page, err
}

// drawWithMetrics runs one core Draw and records its outcome.
func drawWithMetrics[R query.Record](ctx context.Context, collector *metrics.Collector, record string, core *query.Service[R], q query.Query) (query.Draw[R], error) {
	start := time.Now()
	d, err := core.Draw(ctx, q)
	collector.ObserveDraw(record, start, d.Found, err)
	return d, err
}

// requestLogger prefers the request-scoped logger attached by the HTTP
// middleware and falls back to the service logger.
func requestLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
