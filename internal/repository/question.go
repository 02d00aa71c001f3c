package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

const questionsTable = "questions"

// QuestionRepository reads and writes trivia questions.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// NewQuestion is the input to Create.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

func selectQuestions() *goqu.SelectDataset {
	return dialect.From(questionsTable).
		Prepared(true).
		Select("id", "question", "answer", "category", "difficulty").
		Order(goqu.I("id").Asc())
}

// buildQuestionFilter narrows the natural-order scan by the exact parts of q.
func buildQuestionFilter(q query.Query) *goqu.SelectDataset {
	ds := selectQuestions()

	if id, ok := q.Category.ID(); ok {
		ds = ds.Where(goqu.C("category").Eq(id))
	}
	if len(q.Excluded) > 0 {
		ds = ds.Where(goqu.C("id").NotIn(q.Excluded))
	}
	return ds
}

func buildQuestionByID(id int64) *goqu.SelectDataset {
	return selectQuestions().Where(goqu.C("id").Eq(id))
}

func buildQuestionInsert(in NewQuestion) *goqu.InsertDataset {
	return dialect.Insert(questionsTable).
		Prepared(true).
		Rows(goqu.Record{
			"question":   in.Question,
			"answer":     in.Answer,
			"category":   in.Category,
			"difficulty": in.Difficulty,
		}).
		Returning("id")
}

func buildQuestionDelete(id int64) *goqu.DeleteDataset {
	return dialect.Delete(questionsTable).
		Prepared(true).
		Where(goqu.C("id").Eq(id))
}

// Filter implements query.Store by scanning every question in id order.
func (r *QuestionRepository) Filter(ctx context.Context, pred query.Predicate[model.Question]) ([]model.Question, error) {
	return r.Scoped(query.Query{}).Filter(ctx, pred)
}

// Scoped returns a query.Store whose scan is narrowed in SQL by q.
func (r *QuestionRepository) Scoped(q query.Query) query.Store[model.Question] {
	return &scopedQuestions{db: r.db, ds: buildQuestionFilter(q)}
}

type scopedQuestions struct {
	db DBTX
	ds *goqu.SelectDataset
}

func (s *scopedQuestions) Filter(ctx context.Context, pred query.Predicate[model.Question]) ([]model.Question, error) {
	rows, err := selectAll[model.Question](ctx, s.db, s.ds)
	if err != nil {
		return nil, err
	}
	return filterRows(rows, pred), nil
}

// GetByID returns one question or an error matching pgx.ErrNoRows.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (model.Question, error) {
	q, err := selectOne[model.Question](ctx, r.db, buildQuestionByID(id))
	if sqlerr.IsNoRows(err) {
		return model.Question{}, sqlerr.NoRows(questionsTable)
	}
	return q, err
}

// Create inserts a question and returns its id.
func (r *QuestionRepository) Create(ctx context.Context, in NewQuestion) (int64, error) {
	sql, args, err := toSQL(buildQuestionInsert(in))
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

// Delete removes a question. Deleting a missing id reports no rows.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := exec(ctx, r.db, buildQuestionDelete(id))
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n == 0 {
		return sqlerr.NoRows(questionsTable)
	}
	return nil
}

func filterRows[R query.Record](rows []R, pred query.Predicate[R]) []R {
	if pred == nil {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
