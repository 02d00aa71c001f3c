package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
)

func Test_QuestionFields_WithQueryService(t *testing.T) {
	store := query.NewSliceStore(
		model.Question{ID: 1, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Category: 4},
		model.Question{ID: 2, Question: "What boxer's original name is Cassius Clay?", Category: 4},
		model.Question{ID: 5, Question: "Which is the only team to play in every soccer World Cup tournament?", Category: 6},
	)
	svc := query.NewService[model.Question](store, model.QuestionFields)

	page, err := svc.List(context.Background(), query.Query{Category: query.CategoryID(4), Search: "boxer"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)
}

func Test_EventFields_TypeAndText(t *testing.T) {
	store := query.NewSliceStore(
		model.Event{ID: 1, Name: "Beach cleanup", Type: "environment", Description: "Bring gloves"},
		model.Event{ID: 2, Name: "Cat adoption drive", Type: "animals", Description: "Meet the cats"},
		model.Event{ID: 3, Name: "Untyped", Description: "gloves provided"},
	)
	svc := query.NewService[model.Event](store, model.EventFields)

	page, err := svc.List(context.Background(), query.Query{Tag: "animals"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)

	page, err = svc.List(context.Background(), query.Query{Search: "GLOVES"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalMatched)
}

func Test_SplitEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, EndDatetime: now.Add(-time.Hour)},
		{ID: 2, EndDatetime: now.Add(time.Hour)},
		{ID: 3, EndDatetime: now},
	}

	past, upcoming := model.SplitEvents(events, now)

	require.Len(t, past, 2)
	assert.Equal(t, int64(1), past[0].ID)
	assert.Equal(t, int64(3), past[1].ID)
	require.Len(t, upcoming, 1)
	assert.Equal(t, int64(2), upcoming[0].ID)
}
