// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/openphoto-utils/internal/logger"
	"github.com/MKhiriev/openphoto-utils/models"
)

const photoIndexTable = "photo_index"

var photoIndexColumns = []string{"hash", "path", "size", "modified_at", "indexed_at"}

// sqlite uses ? placeholders
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// photoIndex is the sqlite-backed implementation of [PhotoIndex].
type photoIndex struct {
	*DB
	logger *logger.Logger
}

// NewPhotoIndex wraps an already migrated database.
func NewPhotoIndex(db *DB, log *logger.Logger) PhotoIndex {
	return &photoIndex{
		DB:     db,
		logger: log,
	}
}

// OpenPhotoIndex opens the index database at path, creating it and applying
// the schema migrations when needed.
func OpenPhotoIndex(ctx context.Context, path string, log *logger.Logger) (PhotoIndex, error) {
	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		db.Close()
		log.Err(err).Str("func", "OpenPhotoIndex").Str("path", path).Msg("failed to migrate index database")
		return nil, err
	}
	return NewPhotoIndex(db, log), nil
}

func (p *photoIndex) Put(ctx context.Context, entry models.IndexEntry) error {
	if entry.Hash == "" || entry.Path == "" {
		return fmt.Errorf("%w: hash and path are required", ErrInvalidEntry)
	}
	if entry.IndexedAt.IsZero() {
		entry.IndexedAt = time.Now()
	}

	query, args, err := builder.
		Insert(photoIndexTable).
		Columns(photoIndexColumns...).
		Values(entry.Hash, entry.Path, entry.Size, entry.ModifiedAt.Unix(), entry.IndexedAt.Unix()).
		Suffix("ON CONFLICT (hash) DO UPDATE SET " +
			"path = excluded.path, size = excluded.size, " +
			"modified_at = excluded.modified_at, indexed_at = excluded.indexed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		p.logger.Err(err).
			Str("func", "photoIndex.Put").
			Str("hash", entry.Hash).
			Str("path", entry.Path).
			Msg("failed to save index entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (p *photoIndex) Lookup(ctx context.Context, hash string) (models.IndexEntry, error) {
	query, args, err := builder.
		Select(photoIndexColumns...).
		From(photoIndexTable).
		Where(sq.Eq{"hash": hash}).
		ToSql()
	if err != nil {
		return models.IndexEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entry, err := scanEntry(p.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.IndexEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, hash)
	}
	if err != nil {
		p.logger.Err(err).
			Str("func", "photoIndex.Lookup").
			Str("hash", hash).
			Msg("failed to scan index row")
		return models.IndexEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entry, nil
}

func (p *photoIndex) All(ctx context.Context) ([]models.IndexEntry, error) {
	query, args, err := builder.
		Select(photoIndexColumns...).
		From(photoIndexTable).
		OrderBy("path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		p.logger.Err(err).Str("func", "photoIndex.All").Msg("failed to list index entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.IndexEntry, 0, 64)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			p.logger.Err(scanErr).Str("func", "photoIndex.All").Msg("failed to scan index row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		p.logger.Err(rowsErr).Str("func", "photoIndex.All").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}
	return entries, nil
}

func (p *photoIndex) Delete(ctx context.Context, hashes ...string) error {
	if len(hashes) == 0 {
		return nil
	}

	query, args, err := builder.
		Delete(photoIndexTable).
		Where(sq.Eq{"hash": hashes}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		p.logger.Err(err).
			Str("func", "photoIndex.Delete").
			Int("count", len(hashes)).
			Msg("failed to delete index entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.IndexEntry, error) {
	var (
		entry               models.IndexEntry
		modified, indexedAt int64
	)
	if err := row.Scan(&entry.Hash, &entry.Path, &entry.Size, &modified, &indexedAt); err != nil {
		return models.IndexEntry{}, err
	}
	entry.ModifiedAt = time.Unix(modified, 0)
	entry.IndexedAt = time.Unix(indexedAt, 0)
	return entry, nil
}
