package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/query"
)

func Test_Outcome(t *testing.T) {
	malformed := &query.MalformedQueryError{Field: "page", Reason: "must not be negative"}

	assert.Equal(t, OutcomeMalformed, Outcome(fmt.Errorf("wrap: %w", malformed), false))
	assert.Equal(t, OutcomeError, Outcome(errors.New("db down"), false))
	assert.Equal(t, OutcomeEmpty, Outcome(nil, true))
	assert.Equal(t, OutcomeOK, Outcome(nil, false))
}

func Test_Collector_ObserveList(t *testing.T) {
	c := NewCollector()
	start := time.Now()

	c.ObserveList("question", start, 12, false, nil)
	c.ObserveList("question", start, 0, true, nil)
	c.ObserveList("question", start, 0, true, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryOps.WithLabelValues("question", "list", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryOps.WithLabelValues("question", "list", OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryOps.WithLabelValues("question", "list", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.queryMatched))
}

func Test_Collector_ObserveDraw(t *testing.T) {
	c := NewCollector()

	c.ObserveDraw("question", time.Now(), true, nil)
	c.ObserveDraw("question", time.Now(), false, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryOps.WithLabelValues("question", "draw", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queryOps.WithLabelValues("question", "draw", OutcomeEmpty)))
}

func Test_Collector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveList("question", time.Now(), 1, false, nil)
		c.ObserveDraw("question", time.Now(), true, nil)
		c.ObserveHTTP(http.MethodGet, "/x", http.StatusOK)
		c.ObserveRateLimited()
	})
}

func Test_Collector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveHTTP(http.MethodGet, "/api/v1/questions", http.StatusNotFound)
	c.ObserveRateLimited()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "quizbank_http_requests_total")
	assert.Contains(t, body, `status="404"`)
	assert.Contains(t, body, "quizbank_http_rate_limited_total")
}
