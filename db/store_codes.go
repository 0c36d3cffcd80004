package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veitlor/libram/db/tables"
	"go.uber.org/zap"
)

// InsertLoginCode stores a freshly generated login code and invalidates
// any still-open codes of the user in the same transaction, so at most
// one code per user is redeemable at any point in time.
func (d *DataStore) InsertLoginCode(
	ctx context.Context,
	userID uuid.UUID,
	code string,
	expires time.Time,
) (int, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	ts := time.Now().UTC()
	inv := sq.Update("login_codes").
		Set("invalidated_at", ts).
		Where("user_id = ? AND used_at IS NULL AND invalidated_at IS NULL", userID)
	_, err = d.updateStatement(ctx, inv, tx)
	if err != nil {
		rollBack(tx, d)
		return 0, err
	}
	var id int
	ins := sq.Insert("login_codes").
		Columns("user_id", "code", "attempts", "expires_at", "created_at").
		Values(userID, code, 0, expires, ts).
		Suffix("RETURNING id")
	err = d.returningInsertStatement(ctx, &id, ins, tx)
	if err != nil {
		rollBack(tx, d)
		return 0, err
	}
	return id, tx.Commit()
}

// LatestValidCode returns the single open code of the user, if any
func (d *DataStore) LatestValidCode(
	ctx context.Context,
	userID uuid.UUID,
) (*LoginCodeData, error) {
	var entity tables.LoginCodeTable
	q := sq.Select("*").
		From("login_codes").
		Where("user_id = ? AND used_at IS NULL AND invalidated_at IS NULL", userID).
		OrderBy("created_at DESC").
		Limit(1)
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.log.Error("unable to query database", zap.Error(err))
		return nil, err
	}
	return &LoginCodeData{
		ID:        entity.ID,
		UserID:    entity.UserID,
		Code:      entity.Code,
		Attempts:  entity.Attempts,
		ExpiresAt: entity.ExpiresAt,
		IssuedAt:  entity.CreatedAt,
	}, nil
}

// IncrementCodeAttempts bumps the attempt counter inside the update
// expression itself and reads the new value back, concurrent wrong
// guesses therefore always count each attempt.
func (d *DataStore) IncrementCodeAttempts(ctx context.Context, codeID int) (int, error) {
	q := sq.Update("login_codes").
		Set("attempts", sq.Expr("attempts + 1")).
		Where("id = ? AND used_at IS NULL AND invalidated_at IS NULL", codeID)
	_, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return 0, err
	}
	var attempts int
	sel := sq.Select("attempts").From("login_codes").Where(sq.Eq{"id": codeID})
	err = d.getStatement(ctx, &attempts, sel, nil)
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

// MarkCodeUsed consumes the code, conditioned on it still being open.
// Exactly one of two racing redeemers sees rows affected.
func (d *DataStore) MarkCodeUsed(ctx context.Context, codeID int) (bool, error) {
	q := sq.Update("login_codes").
		Set("used_at", time.Now().UTC()).
		Where("id = ? AND used_at IS NULL AND invalidated_at IS NULL", codeID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func rollBack(tx *sqlx.Tx, d *DataStore) {
	if rerr := tx.Rollback(); rerr != nil {
		d.log.Error("couldnt rollback", zap.Error(rerr))
	}
}
