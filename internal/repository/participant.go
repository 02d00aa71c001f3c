package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

const participantsTable = "event_users"

// ParticipantRepository manages the event <-> user association. Add and
// Remove return the participant set as it is after the change, read in the
// same transaction.
type ParticipantRepository struct {
	db TxDB
}

func NewParticipantRepository(db TxDB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func buildParticipantList(eventID int64) *goqu.SelectDataset {
	return dialect.From(goqu.T(participantsTable).As("eu")).
		Prepared(true).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("eu.user_id").Eq(goqu.I("u.id")))).
		Select(goqu.I("eu.event_id"), goqu.I("eu.user_id"), goqu.I("u.name")).
		Where(goqu.I("eu.event_id").Eq(eventID)).
		Order(goqu.I("eu.joined_at").Asc(), goqu.I("eu.user_id").Asc())
}

func buildParticipantInsert(eventID, userID int64) *goqu.InsertDataset {
	return dialect.Insert(participantsTable).
		Prepared(true).
		Rows(goqu.Record{"event_id": eventID, "user_id": userID})
}

func buildParticipantDelete(eventID, userID int64) *goqu.DeleteDataset {
	return dialect.Delete(participantsTable).
		Prepared(true).
		Where(goqu.C("event_id").Eq(eventID), goqu.C("user_id").Eq(userID))
}

// List returns the participants of an event in join order.
func (r *ParticipantRepository) List(ctx context.Context, eventID int64) ([]model.Participant, error) {
	return selectAll[model.Participant](ctx, r.db, buildParticipantList(eventID))
}

// Add joins userID to eventID. Joining twice violates the primary key.
func (r *ParticipantRepository) Add(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	var out []model.Participant
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := exec(ctx, tx, buildParticipantInsert(eventID, userID)); err != nil {
			return fmt.Errorf("add participant: %w", err)
		}

		var err error
		out, err = selectAll[model.Participant](ctx, tx, buildParticipantList(eventID))
		return err
	})
	return out, err
}

// Remove drops userID from eventID. Removing a non-participant reports no rows.
func (r *ParticipantRepository) Remove(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	var out []model.Participant
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		n, err := exec(ctx, tx, buildParticipantDelete(eventID, userID))
		if err != nil {
			return fmt.Errorf("remove participant: %w", err)
		}
		if n == 0 {
			return sqlerr.NoRows("participants")
		}

		out, err = selectAll[model.Participant](ctx, tx, buildParticipantList(eventID))
		return err
	})
	return out, err
}
