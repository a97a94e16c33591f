package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL executed on startup.  Statements are idempotent so
// restarting the server against an existing database is safe.
//
// The reference tables (animes, mangas) hold only catalog identifiers; the
// catalog of record lives in MongoDB and the rows exist solely so the
// tracking tables can carry a foreign key.  The UNIQUE (user_id, <kind>_id)
// index on each tracking table is what makes the set-status upsert atomic.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		is_registered TINYINT(1) NOT NULL DEFAULT 0,
		username      VARCHAR(100) NOT NULL,
		email         VARCHAR(100) NOT NULL,
		pass          VARCHAR(100) NOT NULL,
		role          VARCHAR(32) NOT NULL DEFAULT 'otaku',
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS animes (
		anime_id VARCHAR(64) NOT NULL,
		PRIMARY KEY (anime_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS mangas (
		manga_id VARCHAR(64) NOT NULL,
		PRIMARY KEY (manga_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS mtlanime (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id  BIGINT UNSIGNED NOT NULL,
		anime_id VARCHAR(64) NOT NULL,
		title    VARCHAR(255) NOT NULL,
		synopsis TEXT NOT NULL,
		image    VARCHAR(255) NOT NULL,
		genres   VARCHAR(512) NOT NULL,
		status   VARCHAR(64) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_mtlanime_user_anime (user_id, anime_id),
		CONSTRAINT fk_mtlanime_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_mtlanime_anime FOREIGN KEY (anime_id) REFERENCES animes (anime_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS mtlmanga (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id  BIGINT UNSIGNED NOT NULL,
		manga_id VARCHAR(64) NOT NULL,
		title    VARCHAR(255) NOT NULL,
		synopsis TEXT NOT NULL,
		image    VARCHAR(255) NOT NULL,
		genres   VARCHAR(512) NOT NULL,
		status   VARCHAR(64) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_mtlmanga_user_manga (user_id, manga_id),
		CONSTRAINT fk_mtlmanga_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_mtlmanga_manga FOREIGN KEY (manga_id) REFERENCES mangas (manga_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS password_resets (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email      VARCHAR(100) NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		used_at    DATETIME NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_password_resets_hash (token_hash)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema, stopping at the first failing statement.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
