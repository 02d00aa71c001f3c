package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/query"
)

type failingStore struct{ err error }

func (f failingStore) Filter(context.Context, query.Predicate[item]) ([]item, error) {
	return nil, f.err
}

type countingStore struct {
	*query.SliceStore[item]
	calls int
}

func (c *countingStore) Filter(ctx context.Context, p query.Predicate[item]) ([]item, error) {
	c.calls++
	return c.SliceStore.Filter(ctx, p)
}

func newService(records ...item) *query.Service[item] {
	return query.NewService[item](query.NewSliceStore(records...), itemFields)
}

func Test_Service_List_CategoryThirdPage(t *testing.T) {
	var records []item
	for i := 1; i <= 40; i++ {
		cat := int64(1)
		if i <= 23 {
			cat = 3
		}
		records = append(records, item{id: int64(i), cat: cat})
	}

	page, err := newService(records...).List(context.Background(),
		query.Query{Category: query.CategoryID(3), Page: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 23, page.TotalMatched)
	assert.Equal(t, []int64{21, 22, 23}, ids(page.Items))
}

func Test_Service_List_PageBeyondRangeIsEmpty(t *testing.T) {
	page, err := newService(makeItems(5)...).List(context.Background(),
		query.Query{Page: 1000, PageSize: 10})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 5, page.TotalMatched)
}

func Test_Service_List_Search(t *testing.T) {
	svc := newService(
		item{id: 1, text: "Which city is the capital of France?"},
		item{id: 2, text: "What year did the war end?"},
	)

	page, err := svc.List(context.Background(), query.Query{Search: "Which"})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(page.Items))
	assert.Equal(t, 1, page.TotalMatched)
}

func Test_Service_List_Defaults(t *testing.T) {
	page, err := newService(makeItems(15)...).List(context.Background(), query.Query{})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, query.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 10)

	custom := query.NewService[item](query.NewSliceStore(makeItems(15)...), itemFields, query.WithDefaultPageSize(4))
	page, err = custom.List(context.Background(), query.Query{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
}

func Test_Service_List_RejectsNegativePaging(t *testing.T) {
	svc := newService(makeItems(3)...)

	_, err := svc.List(context.Background(), query.Query{Page: -1})
	assert.ErrorIs(t, err, query.ErrMalformedQuery)

	_, err = svc.List(context.Background(), query.Query{PageSize: -5})
	var mq *query.MalformedQueryError
	require.ErrorAs(t, err, &mq)
	assert.Equal(t, "page_size", mq.Field)
}

func Test_Service_List_StablePagesPartitionFilteredSet(t *testing.T) {
	var records []item
	for i := 1; i <= 57; i++ {
		records = append(records, item{id: int64(i), cat: int64(i % 3)})
	}
	svc := newService(records...)
	q := query.Query{Category: query.CategoryID(1), PageSize: 7}

	first, err := svc.List(context.Background(), q)
	require.NoError(t, err)

	var collected []int64
	for p := 1; p <= first.TotalPages(); p++ {
		page, err := svc.List(context.Background(), q.WithPage(p, 7))
		require.NoError(t, err)
		assert.Equal(t, first.TotalMatched, page.TotalMatched)

		again, err := svc.List(context.Background(), q.WithPage(p, 7))
		require.NoError(t, err)
		assert.Equal(t, page, again, "identical inputs give identical pages")

		collected = append(collected, ids(page.Items)...)
	}

	var want []int64
	for _, r := range records {
		if r.cat == 1 {
			want = append(want, r.id)
		}
	}
	assert.Equal(t, want, collected)
}

func Test_Service_Draw_ExcludesPreviouslySeen(t *testing.T) {
	svc := newService(item{id: 13}, item{id: 14}, item{id: 15})
	q := query.Query{Category: query.AllCategories()}.WithExcluded(13, 15)

	for range 50 {
		d, err := svc.Draw(context.Background(), q)
		require.NoError(t, err)
		require.True(t, d.Found)
		assert.Equal(t, int64(14), d.Record.id)
	}
}

func Test_Service_Draw_ExhaustedReturnsNone(t *testing.T) {
	svc := newService(item{id: 13}, item{id: 14}, item{id: 15})

	d, err := svc.Draw(context.Background(),
		query.Query{Category: query.AllCategories()}.WithExcluded(13, 14, 15))

	require.NoError(t, err)
	assert.True(t, d.None())
}

func Test_Service_Draw_UnsetCategoryIsMalformed(t *testing.T) {
	store := &countingStore{SliceStore: query.NewSliceStore(item{id: 1})}
	svc := query.NewService[item](store, itemFields)

	_, err := svc.Draw(context.Background(), query.Query{})

	assert.ErrorIs(t, err, query.ErrMalformedQuery)
	assert.Zero(t, store.calls, "malformed queries never reach the store")
}

func Test_Service_Draw_CategoryZeroIsSpecific(t *testing.T) {
	svc := newService(item{id: 1, cat: 0}, item{id: 2, cat: 5})

	for range 20 {
		d, err := svc.Draw(context.Background(), query.Query{Category: query.CategoryID(0)})
		require.NoError(t, err)
		require.True(t, d.Found)
		assert.Equal(t, int64(1), d.Record.id)
	}
}

func Test_Service_Draw_RespectsCategoryAndExclusion(t *testing.T) {
	var records []item
	for i := 1; i <= 30; i++ {
		records = append(records, item{id: int64(i), cat: int64(i % 2)})
	}
	excluded := []int64{2, 4, 6, 8, 10}
	svc := query.NewService[item](query.NewSliceStore(records...), itemFields,
		query.WithSelector(query.NewSelector(nil)))
	q := query.Query{Category: query.CategoryID(0)}.WithExcluded(excluded...)

	for range 200 {
		d, err := svc.Draw(context.Background(), q)
		require.NoError(t, err)
		require.True(t, d.Found)
		assert.Equal(t, int64(0), d.Record.cat)
		assert.NotContains(t, excluded, d.Record.id)
	}
}

func Test_Service_PropagatesStoreErrorsUnmodified(t *testing.T) {
	storeErr := errors.New("store unavailable")
	svc := query.NewService[item](failingStore{err: storeErr}, itemFields)

	_, err := svc.List(context.Background(), query.Query{})
	assert.Same(t, storeErr, err)

	_, err = svc.Draw(context.Background(), query.Query{Category: query.AllCategories()})
	assert.Same(t, storeErr, err)
}

func Test_Service_OneStoreReadPerCall(t *testing.T) {
	store := &countingStore{SliceStore: query.NewSliceStore(makeItems(12)...)}
	svc := query.NewService[item](store, itemFields)

	_, err := svc.List(context.Background(), query.Query{Page: 2})
	require.NoError(t, err)
	_, err = svc.Draw(context.Background(), query.Query{Category: query.AllCategories()})
	require.NoError(t, err)

	assert.Equal(t, 2, store.calls)
}

func Test_SliceStore(t *testing.T) {
	store := query.NewSliceStore(makeItems(3)...)
	store.Add(item{id: 10})

	assert.Equal(t, []int64{1, 2, 3, 10}, ids(store.All()))
	assert.Equal(t, 2, store.CountMatching(func(i item) bool { return i.id > 2 }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Filter(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
