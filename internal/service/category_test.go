package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/model"
)

func Test_CategoryService_List(t *testing.T) {
	categories := []model.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	logger := zerolog.Nop()

	t.Run("miss_loads_and_fills_cache", func(t *testing.T) {
		repo := &fakeCategories{categories: categories}
		c := &fakeCache{}
		svc := NewCategoryService(repo, c, &logger)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, categories, got)
		assert.Equal(t, 1, repo.listCalls)
		assert.Equal(t, 1, c.setCall)
		assert.Equal(t, categories, c.stored)
	})

	t.Run("hit_skips_database", func(t *testing.T) {
		repo := &fakeCategories{categories: categories}
		c := &fakeCache{stored: categories[:1], hit: true}
		svc := NewCategoryService(repo, c, &logger)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, categories[:1], got)
		assert.Zero(t, repo.listCalls)
	})

	t.Run("cache_errors_are_ignored", func(t *testing.T) {
		repo := &fakeCategories{categories: categories}
		c := &fakeCache{getErr: errBoom, setErr: errBoom}
		svc := NewCategoryService(repo, c, &logger)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, categories, got)
	})

	t.Run("database_error", func(t *testing.T) {
		repo := &fakeCategories{err: errBoom}
		svc := NewCategoryService(repo, &fakeCache{}, &logger)

		_, err := svc.List(context.Background())
		assert.ErrorIs(t, err, errBoom)
	})
}

func Test_OrganisationService_Get(t *testing.T) {
	orgs := fakeOrganisations{{ID: 1, Name: "Green"}, {ID: 2, Name: "Kitchen"}}
	svc := NewOrganisationService(orgs, newFakeEvents(seedEvents()...))
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	detail, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Green", detail.Name)
	require.Len(t, detail.PastEvents, 1)
	assert.Equal(t, int64(1), detail.PastEvents[0].ID)
	assert.Len(t, detail.UpcomingEvents, 2)

	_, err = svc.Get(ctx, 99)
	assert.Contains(t, err.Error(), "table:organisations")
}
