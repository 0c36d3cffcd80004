package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/veitlor/libram/db/tables"
	"go.uber.org/zap"
)

// user lifecycle states as stored in the status column
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

func (d *DataStore) Users(ctx context.Context, opts ListOptions) ([]*tables.UserTable, int, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}

	var c int
	count := sq.Select("COUNT(*)").From("users")
	applyWhere, err := d.whereFromAdapater("users", opts.Query)
	if err != nil {
		return nil, 0, err
	}
	count = applyWhere(count)
	err = count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := (opts.Page - 1) * opts.PageSize
	if c < int(offset) {
		return []*tables.UserTable{}, c, nil
	}

	var entities []*tables.UserTable
	q := sq.
		Select(
			"id",
			"username",
			"email",
			"email_confirmed",
			"role",
			"library_id",
			"status",
			"current_failure_count",
			"lockout_till",
			"last_sign_in",
			"created_at",
			"updated_at",
		).
		From("users")
	q = applyWhere(q)
	q = d.orderByFromAdapater(q, "users", "created_at DESC", opts)
	q = q.Offset(uint64(offset)).Limit(uint64(opts.PageSize))
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	return entities, c, nil
}

func (d *DataStore) UserByID(ctx context.Context, id uuid.UUID) (*UserData, error) {
	userQuery := sq.Select("*").From("users").Where(sq.Eq{"id": id})
	return d.queryUserData(ctx, userQuery)
}

// UserByIdentifier matches a single user by username or email
func (d *DataStore) UserByIdentifier(ctx context.Context, identifier string) (*UserData, error) {
	userQuery := sq.Select("*").
		From("users").
		Where(sq.Or{sq.Eq{"username": identifier}, sq.Eq{"email": identifier}})
	return d.queryUserData(ctx, userQuery)
}

func (d *DataStore) queryUserData(
	ctx context.Context,
	userQuery sq.SelectBuilder,
) (*UserData, error) {
	var userEntity tables.UserTable
	err := d.getStatement(ctx, &userEntity, userQuery, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.log.Error("unable to query database", zap.Error(err))
		return nil, err
	}
	provider := &UserData{
		ID:                  userEntity.ID,
		Username:            userEntity.Username,
		Email:               userEntity.Email,
		EmailConfirmed:      userEntity.EmailConfirmed,
		Role:                userEntity.Role,
		LibraryID:           userEntity.LibraryID,
		Status:              userEntity.Status,
		DisplayName:         userEntity.DisplayName,
		AvatarPath:          userEntity.AvatarPath,
		Phone:               userEntity.Phone,
		PasswordHash:        []byte(userEntity.Password),
		CurrentFailureCount: userEntity.CurrentFailureCount,
		LockoutTill:         userEntity.LockoutTill,
		LastSignIn:          userEntity.LastSignIn,
		CreatedAt:           userEntity.CreatedAt,
	}
	return provider, nil
}

func (d *DataStore) IDFromEmail(ctx context.Context, email string) (bool, uuid.UUID, error) {
	q := sq.Select("id").From("users").Where(sq.Eq{"email": email})
	var id uuid.UUID
	err := d.getStatement(ctx, &id, q, nil)
	if err != nil && err != sql.ErrNoRows {
		return false, uuid.UUID{}, err
	} else if err == sql.ErrNoRows {
		return false, uuid.UUID{}, nil
	}
	return true, id, nil
}

func (d *DataStore) IsRegistered(ctx context.Context, username string, email string) (bool, error) {
	return d.exists(ctx, "users", sq.Or{sq.Eq{"username": username}, sq.Eq{"email": email}})
}

func (d *DataStore) ConfirmTokenExists(ctx context.Context, token string) (bool, error) {
	return d.exists(ctx, "users", sq.Eq{"confirm_token": token})
}

func (d *DataStore) InsertUser(
	ctx context.Context,
	username string,
	email string,
	passwordHash string,
	role string,
	libraryID *int,
	confirmToken *string,
) (uuid.UUID, error) {
	timestamp := time.Now().UTC()
	m := map[string]interface{}{
		"id":         uuid.New(),
		"username":   username,
		"email":      email,
		"password":   passwordHash,
		"role":       role,
		"library_id": libraryID,
		"created_at": timestamp,
	}
	if confirmToken != nil {
		m["confirm_token"] = confirmToken
		m["confirm_token_created"] = timestamp
		m["status"] = UserStatusPending
	} else {
		//no token = autoconfirm
		m["email_confirmed"] = timestamp
		m["status"] = UserStatusActive
	}
	insert := sq.Insert("users").SetMap(m)
	insert = insert.Suffix("RETURNING id")
	var id uuid.UUID
	err := d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert user", zap.Error(err))
		return uuid.UUID{}, err
	}
	return id, nil
}

// ConsumeConfirmToken activates the pending user holding the token.
// The update is conditioned on the token still being present so a replay
// after consumption changes zero rows and reports ErrNotFound.
// Returns ErrTokenExpired when the token sits outside the validity window.
func (d *DataStore) ConsumeConfirmToken(
	ctx context.Context,
	confirmToken string,
	window time.Duration,
) (*UserData, error) {
	if confirmToken == "" {
		return nil, ErrNotFound
	}
	var user tables.UserTable
	c := sq.Select("*").From("users").
		Where(sq.Eq{"confirm_token": confirmToken, "status": UserStatusPending})
	err := d.getStatement(ctx, &user, c, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := time.Now().UTC()
	if user.ConfirmTokenCreated != nil && now.Sub(*user.ConfirmTokenCreated) > window {
		return nil, ErrTokenExpired
	}

	i := sq.Update("users").
		Set("email_confirmed", now).
		Set("status", UserStatusActive).
		Set("confirm_token", nil).
		Set("confirm_token_created", nil).
		Set("updated_at", now).
		Where(sq.Eq{"confirm_token": confirmToken, "status": UserStatusPending})
	res, err := d.updateStatement(ctx, i, nil)
	if err != nil {
		return nil, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if aff == 0 {
		// a concurrent request already consumed the token
		return nil, ErrNotFound
	}
	return d.UserByID(ctx, user.ID)
}

func (d *DataStore) ManualConfirmUser(ctx context.Context, id uuid.UUID) error {
	timestamp := time.Now().UTC()
	i := sq.Update("users").
		Set("email_confirmed", timestamp).
		Set("status", UserStatusActive).
		Set("confirm_token", nil).
		Set("confirm_token_created", nil).
		Set("updated_at", timestamp).
		Where(sq.Eq{"id": id, "status": UserStatusPending})
	res, err := d.updateStatement(ctx, i, nil)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordFailedAttempt increments the failure counter as a single
// atomic update expression so rapid concurrent attempts never undercount.
// The returned count is read back afterwards and may run ahead under
// concurrency, which only errs towards locking earlier.
func (d *DataStore) RecordFailedAttempt(ctx context.Context, id uuid.UUID) (int, error) {
	ts := time.Now().UTC()
	q := sq.
		Update("users").
		Set("updated_at", ts).
		Set("current_failure_count", sq.Expr("current_failure_count + 1")).
		Where(sq.Eq{"id": id})
	_, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return 0, err
	}
	var count int
	sel := sq.Select("current_failure_count").From("users").Where(sq.Eq{"id": id})
	err = d.getStatement(ctx, &count, sel, nil)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (d *DataStore) LockUser(ctx context.Context, id uuid.UUID, lockTime time.Time) (bool, error) {
	ts := time.Now().UTC()
	q := sq.
		Update("users").
		Set("updated_at", ts).
		Set("lockout_till", lockTime).
		Where("id = ? AND (lockout_till IS NULL OR lockout_till < ?)", id, ts)

	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// ResetFailureState clears counter and lockout after a successful full login
func (d *DataStore) ResetFailureState(ctx context.Context, id uuid.UUID) error {
	ts := time.Now().UTC()
	q := sq.
		Update("users").
		Set("updated_at", ts).
		Set("current_failure_count", 0).
		Set("lockout_till", nil).
		Where(sq.Eq{"id": id})
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

func (d *DataStore) UnlockUser(ctx context.Context, id uuid.UUID) (bool, error) {
	ts := time.Now().UTC()
	q := sq.
		Update("users").
		Set("updated_at", ts).
		Set("lockout_till", nil).
		Set("current_failure_count", 0).
		Where("id = ? AND lockout_till IS NOT NULL", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetLastSignIn(ctx context.Context, id uuid.UUID) error {
	ts := time.Now().UTC()
	q := sq.
		Update("users").
		Set("updated_at", ts).
		Set("last_sign_in", ts).
		Where(sq.Eq{"id": id})
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

func (d *DataStore) SetPassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}
