package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/veitlor/libram/db/tables"
)

func (d *DataStore) LibraryByID(ctx context.Context, id int) (*LibraryData, error) {
	var entity tables.LibraryTable
	q := sq.Select("*").From("libraries").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &LibraryData{
		ID:                  entity.ID,
		Name:                entity.Name,
		Slug:                entity.Slug,
		SubscriptionExpires: entity.SubscriptionExpires,
		CreatedAt:           entity.CreatedAt,
	}, nil
}

func (d *DataStore) Libraries(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.LibraryTable, int, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	var c int
	count := sq.Select("COUNT(*)").From("libraries")
	applyWhere, err := d.whereFromAdapater("libraries", opts.Query)
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
		return []*tables.LibraryTable{}, c, nil
	}
	var entities []*tables.LibraryTable
	q := sq.Select("*").From("libraries")
	q = applyWhere(q)
	q = d.orderByFromAdapater(q, "libraries", "created_at DESC", opts)
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

func (d *DataStore) InsertLibrary(
	ctx context.Context,
	name string,
	slug string,
	subscriptionExpires *time.Time,
) (int, error) {
	exists, err := d.exists(ctx, "libraries", sq.Eq{"slug": slug})
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	var id int
	ins := sq.Insert("libraries").
		Columns("name", "slug", "subscription_expires", "created_at").
		Values(name, slug, subscriptionExpires, time.Now().UTC()).
		Suffix("RETURNING id")
	err = d.returningInsertStatement(ctx, &id, ins, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}
