package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/veitlor/libram/db/tables"
)

func (d *DataStore) InsertRememberToken(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	expires time.Time,
) (int, error) {
	var id int
	ins := sq.Insert("remember_tokens").
		Columns("user_id", "token", "expires_at", "created_at").
		Values(userID, token, expires, time.Now().UTC()).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, ins, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RedeemRememberToken marks the token redeemed and hands back its owner.
// Redemption is single use, the conditioned update lets exactly one
// caller through and every replay after that fails with ErrNotFound.
func (d *DataStore) RedeemRememberToken(
	ctx context.Context,
	token string,
) (uuid.UUID, error) {
	var entity tables.RememberTokenTable
	sel := sq.Select("*").From("remember_tokens").Where(sq.Eq{"token": token})
	err := d.getStatement(ctx, &entity, sel, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.UUID{}, ErrNotFound
		}
		return uuid.UUID{}, err
	}
	now := time.Now().UTC()
	if entity.RevokedAt != nil || entity.RedeemedAt != nil {
		return uuid.UUID{}, ErrNotFound
	}
	if entity.ExpiresAt.Before(now) {
		return uuid.UUID{}, ErrTokenExpired
	}
	upd := sq.Update("remember_tokens").
		Set("redeemed_at", now).
		Where("token = ? AND redeemed_at IS NULL AND revoked_at IS NULL", token)
	rs, err := d.updateStatement(ctx, upd, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return uuid.UUID{}, err
	}
	if affected == 0 {
		return uuid.UUID{}, ErrNotFound
	}
	return entity.UserID, nil
}

func (d *DataStore) RevokeRememberToken(ctx context.Context, token string) (bool, error) {
	upd := sq.Update("remember_tokens").
		Set("revoked_at", time.Now().UTC()).
		Where("token = ? AND revoked_at IS NULL", token)
	rs, err := d.updateStatement(ctx, upd, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// RevokeRememberTokensForUser drops every open token of the user,
// called after password changes
func (d *DataStore) RevokeRememberTokensForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	upd := sq.Update("remember_tokens").
		Set("revoked_at", time.Now().UTC()).
		Where("user_id = ? AND revoked_at IS NULL AND redeemed_at IS NULL", userID)
	rs, err := d.updateStatement(ctx, upd, nil)
	if err != nil {
		return 0, err
	}
	return rs.RowsAffected()
}
