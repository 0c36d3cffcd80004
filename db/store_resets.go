package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// CreatePasswordReset replaces any outstanding reset rows of the user
// with the freshly issued token
func (d *DataStore) CreatePasswordReset(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	expires time.Time,
) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	del := sq.Delete("password_resets").Where(sq.Eq{"user_id": userID})
	_, err = d.deleteStatement(ctx, del, tx)
	if err != nil {
		rollBack(tx, d)
		return err
	}
	ins := sq.Insert("password_resets").
		Columns("user_id", "token", "expires_at", "created_at").
		Values(userID, token, expires, time.Now().UTC())
	_, err = d.insertStatement(ctx, ins, tx)
	if err != nil {
		rollBack(tx, d)
		return err
	}
	return tx.Commit()
}

// ConsumePasswordReset claims the token and writes the new password hash
// in one transaction. The claiming delete is conditioned on the token row
// still existing, the second of two racing resets gets ErrNotFound.
// Expired tokens yield ErrTokenExpired and stay in place until replaced.
func (d *DataStore) ConsumePasswordReset(
	ctx context.Context,
	token string,
	passwordHash string,
) (uuid.UUID, error) {
	var userID uuid.UUID
	var expires time.Time
	sel := sq.Select("user_id", "expires_at").
		From("password_resets").
		Where(sq.Eq{"token": token})
	row := sel.RunWith(d.db).QueryRowContext(ctx)
	err := row.Scan(&userID, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.UUID{}, ErrNotFound
		}
		return uuid.UUID{}, err
	}
	now := time.Now().UTC()
	if expires.Before(now) {
		return uuid.UUID{}, ErrTokenExpired
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	del := sq.Delete("password_resets").Where(sq.Eq{"token": token})
	rs, err := d.deleteStatement(ctx, del, tx)
	if err != nil {
		rollBack(tx, d)
		return uuid.UUID{}, err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		rollBack(tx, d)
		return uuid.UUID{}, err
	}
	if affected == 0 {
		rollBack(tx, d)
		return uuid.UUID{}, ErrNotFound
	}
	upd := sq.Update("users").
		Set("password", passwordHash).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID})
	_, err = d.updateStatement(ctx, upd, tx)
	if err != nil {
		rollBack(tx, d)
		return uuid.UUID{}, err
	}
	return userID, tx.Commit()
}
