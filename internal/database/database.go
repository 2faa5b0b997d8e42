package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		date_joined DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT NOT NULL PRIMARY KEY,
		msg TEXT NOT NULL,
		msg_from TEXT NOT NULL,
		msg_date_time DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tags (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		text TEXT NOT NULL,
		asked_by TEXT NOT NULL,
		ask_date_time DATETIME NOT NULL,
		-- Store collection fields as JSON text
		views_json TEXT,
		up_votes_json TEXT,
		down_votes_json TEXT
	);

	CREATE TABLE IF NOT EXISTS question_tags (
		question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (question_id, tag_id)
	);

	CREATE TABLE IF NOT EXISTS answers (
		id TEXT NOT NULL PRIMARY KEY,
		question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		ans_by TEXT NOT NULL,
		ans_date_time DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT NOT NULL PRIMARY KEY,
		parent_type TEXT NOT NULL CHECK (parent_type IN ('question', 'answer')),
		parent_id TEXT NOT NULL,
		text TEXT NOT NULL,
		comment_by TEXT NOT NULL,
		comment_date_time DATETIME NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
