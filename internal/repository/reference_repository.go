package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ReferenceRepo maintains one of the reference tables (animes, mangas):
// a single-column table of catalog ids whose only job is to give the
// tracking tables a foreign-key target.  Rows are written exclusively by
// the catalog sync job.
type ReferenceRepo struct {
	db     *sql.DB
	upsert string
}

// newReferenceRepo builds the upsert statement for the given table and id
// column.  Table names cannot be bound as parameters, so they are baked in
// here from the two fixed constructors below.
func newReferenceRepo(db *sql.DB, table, idCol string) *ReferenceRepo {
	return &ReferenceRepo{
		db: db,
		// The self-assignment makes a replayed insert a no-op instead of a
		// duplicate-key error, keeping the sync job idempotent.
		upsert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (?) ON DUPLICATE KEY UPDATE %s=%s",
			table, idCol, idCol, idCol),
	}
}

// NewAnimeReferenceRepo returns the repo for the 'animes' table.
func NewAnimeReferenceRepo(db *sql.DB) *ReferenceRepo {
	return newReferenceRepo(db, "animes", "anime_id")
}

// NewMangaReferenceRepo returns the repo for the 'mangas' table.
func NewMangaReferenceRepo(db *sql.DB) *ReferenceRepo {
	return newReferenceRepo(db, "mangas", "manga_id")
}

// Upsert ensures a reference row exists for the catalog id.
func (r *ReferenceRepo) Upsert(ctx context.Context, catalogID string) error {
	_, err := r.db.ExecContext(ctx, r.upsert, catalogID)
	return err
}
