package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tsutsun/magicaltsutsunlist/internal/list"
)

// TrackingRepo persists one of the per-user tracking tables (mtlanime,
// mtlmanga).  It implements list.Store.  All statements are keyed by the
// UNIQUE (user_id, <kind>_id) index, which is what guarantees at most one
// row per pair even under concurrent set-status calls.
type TrackingRepo struct {
	db         *sql.DB
	upsertStmt string
	selectStmt string
	deleteStmt string
	listStmt   string
}

func newTrackingRepo(db *sql.DB, table, idCol string) *TrackingRepo {
	return &TrackingRepo{
		db: db,
		// ON DUPLICATE KEY only touches status; the snapshot columns keep
		// the values frozen at first insertion even when the client sends
		// newer catalog data.
		upsertStmt: fmt.Sprintf(`INSERT INTO %s (user_id, %s, title, synopsis, image, genres, status)
			VALUES (?,?,?,?,?,?,?)
			ON DUPLICATE KEY UPDATE status=VALUES(status)`, table, idCol),
		selectStmt: fmt.Sprintf(`SELECT id, user_id, %s, title, synopsis, image, genres, status
			FROM %s WHERE user_id=? AND %s=? LIMIT 1`, idCol, table, idCol),
		deleteStmt: fmt.Sprintf("DELETE FROM %s WHERE user_id=? AND %s=?", table, idCol),
		listStmt: fmt.Sprintf(`SELECT id, user_id, %s, title, synopsis, image, genres, status
			FROM %s WHERE user_id=?`, idCol, table),
	}
}

// NewAnimeTrackingRepo returns the repo for the 'mtlanime' table.
func NewAnimeTrackingRepo(db *sql.DB) *TrackingRepo {
	return newTrackingRepo(db, "mtlanime", "anime_id")
}

// NewMangaTrackingRepo returns the repo for the 'mtlmanga' table.
func NewMangaTrackingRepo(db *sql.DB) *TrackingRepo {
	return newTrackingRepo(db, "mtlmanga", "manga_id")
}

// Upsert inserts a new entry for (userID, item.ID) or, when the row
// already exists, updates only its status.  The created flag is derived
// from RowsAffected: MySQL reports 1 for an insert and 2 for an update
// (0 when the status is unchanged).  The row is read back afterwards so
// callers always receive the persisted state.
func (r *TrackingRepo) Upsert(ctx context.Context, userID uint64, item list.Item, status string) (list.Entry, bool, error) {
	res, err := r.db.ExecContext(ctx, r.upsertStmt,
		userID, item.ID, item.Title, item.Synopsis, item.Image,
		list.JoinGenres(item.Genres), status)
	if err != nil {
		return list.Entry{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return list.Entry{}, false, err
	}
	created := affected == 1

	var e list.Entry
	err = r.db.QueryRowContext(ctx, r.selectStmt, userID, item.ID).
		Scan(&e.ID, &e.UserID, &e.CatalogID, &e.Title, &e.Synopsis, &e.Image, &e.Genres, &e.Status)
	if err != nil {
		return list.Entry{}, false, err
	}
	return e, created, nil
}

// Remove deletes the entry for (userID, catalogID).  The bool reports
// whether a row existed; a miss is not an error.
func (r *TrackingRepo) Remove(ctx context.Context, userID uint64, catalogID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.deleteStmt, userID, catalogID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByUser returns all of the user's entries in storage order.  An empty
// slice, not nil, is returned when the user has no entries.
func (r *TrackingRepo) ListByUser(ctx context.Context, userID uint64) ([]list.Entry, error) {
	rows, err := r.db.QueryContext(ctx, r.listStmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]list.Entry, 0)
	for rows.Next() {
		var e list.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CatalogID, &e.Title, &e.Synopsis, &e.Image, &e.Genres, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
