package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
)

func mustSQL(t *testing.T, b sqlBuilder) (string, []any) {
	t.Helper()
	sql, args, err := toSQL(b)
	require.NoError(t, err)
	return sql, args
}

func Test_buildQuestionFilter(t *testing.T) {
	tests := []struct {
		name     string
		q        query.Query
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:     "unrestricted_scan_in_id_order",
			q:        query.Query{},
			contains: []string{`FROM "questions"`, `ORDER BY "id" ASC`},
			absent:   []string{"WHERE"},
			args:     []any{},
		},
		{
			name:   "all_categories_adds_no_clause",
			q:      query.Query{}.WithCategory(query.AllCategories()),
			absent: []string{"WHERE"},
			args:   []any{},
		},
		{
			name:     "specific_category",
			q:        query.Query{}.WithCategory(query.CategoryID(3)),
			contains: []string{`"category" = $1`},
			args:     []any{int64(3)},
		},
		{
			name:     "category_zero_is_specific",
			q:        query.Query{}.WithCategory(query.CategoryID(0)),
			contains: []string{`"category" = $1`},
			args:     []any{int64(0)},
		},
		{
			name:     "category_and_exclusions",
			q:        query.Query{}.WithCategory(query.CategoryID(3)).WithExcluded(4, 7),
			contains: []string{`"category" = $1`, `"id" NOT IN ($2, $3)`},
			args:     []any{int64(3), int64(4), int64(7)},
		},
		{
			name:   "search_stays_in_memory",
			q:      query.Query{}.WithSearch("title"),
			absent: []string{"WHERE", "LIKE"},
			args:   []any{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, args := mustSQL(t, buildQuestionFilter(tc.q))
			for _, c := range tc.contains {
				assert.Contains(t, sql, c)
			}
			for _, a := range tc.absent {
				assert.NotContains(t, sql, a)
			}
			assert.ElementsMatch(t, tc.args, args)
		})
	}
}

func Test_buildQuestionInsert(t *testing.T) {
	sql, args := mustSQL(t, buildQuestionInsert(NewQuestion{
		Question:   "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?",
		Answer:     "Maya Angelou",
		Category:   4,
		Difficulty: 2,
	}))

	assert.Contains(t, sql, `INSERT INTO "questions"`)
	assert.Contains(t, sql, `RETURNING "id"`)
	assert.Len(t, args, 4)
	assert.Contains(t, args, "Maya Angelou")
	assert.Contains(t, args, int64(4))
}

func Test_buildQuestionDelete(t *testing.T) {
	sql, args := mustSQL(t, buildQuestionDelete(9))

	assert.Contains(t, sql, `DELETE FROM "questions"`)
	assert.Contains(t, sql, `"id" = $1`)
	assert.Equal(t, []any{int64(9)}, args)
}

func Test_buildCategoryQueries(t *testing.T) {
	sql, _ := mustSQL(t, buildCategoryList())
	assert.Contains(t, sql, `FROM "categories"`)
	assert.Contains(t, sql, `ORDER BY "id" ASC`)

	sql, args := mustSQL(t, buildCategoryExists(5))
	assert.Contains(t, sql, "COUNT(*)")
	assert.Equal(t, []any{int64(5)}, args)
}

func Test_buildEventFilter(t *testing.T) {
	sql, args := mustSQL(t, buildEventFilter(query.Query{}.WithTag("  Cleanup ").WithExcluded(2)))

	assert.Contains(t, sql, `FROM "events" AS "e"`)
	assert.Contains(t, sql, `JOIN "organisations" AS "o"`)
	assert.Contains(t, sql, `"o"."name" AS "organisation_name"`)
	assert.Contains(t, sql, `"e"."type" = $1`)
	assert.Contains(t, sql, `"e"."id" NOT IN ($2)`)
	assert.Contains(t, sql, `ORDER BY "e"."start_datetime" ASC, "e"."id" ASC`)
	assert.Equal(t, []any{"Cleanup", int64(2)}, args)
}

func Test_buildEventFilter_BlankTagIgnored(t *testing.T) {
	sql, _ := mustSQL(t, buildEventFilter(query.Query{}.WithTag("   ")))
	assert.NotContains(t, sql, "WHERE")
}

func Test_buildParticipantQueries(t *testing.T) {
	sql, args := mustSQL(t, buildParticipantList(3))
	assert.Contains(t, sql, `FROM "event_users" AS "eu"`)
	assert.Contains(t, sql, `"eu"."event_id" = $1`)
	assert.Equal(t, []any{int64(3)}, args)

	sql, args = mustSQL(t, buildParticipantInsert(3, 8))
	assert.Contains(t, sql, `INSERT INTO "event_users"`)
	assert.ElementsMatch(t, []any{int64(3), int64(8)}, args)

	sql, args = mustSQL(t, buildParticipantDelete(3, 8))
	assert.Contains(t, sql, `DELETE FROM "event_users"`)
	assert.Equal(t, []any{int64(3), int64(8)}, args)
}

func Test_buildUserByID(t *testing.T) {
	sql, args := mustSQL(t, buildUserByID(11))
	assert.Contains(t, sql, `FROM "users"`)
	assert.Equal(t, []any{int64(11)}, args)
}

func Test_filterRows(t *testing.T) {
	rows := []model.Question{{ID: 1, Category: 1}, {ID: 2, Category: 2}, {ID: 3, Category: 1}}

	got := filterRows(rows, func(q model.Question) bool { return q.Category == 1 })
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Len(t, filterRows([]model.Question{{ID: 1}}, nil), 1)
}
