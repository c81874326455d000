package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT).
// Timestamps are fixed-width UTC text so that string order is time order.
const baseSchema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
  chat_id INTEGER PRIMARY KEY,
  state TEXT NOT NULL,
  file_id TEXT,
  file_name TEXT,
  source_language TEXT,
  target_language TEXT,
  prompt_message_id INTEGER,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_sessions_updated_at ON chat_sessions(updated_at);

CREATE TABLE IF NOT EXISTS translation_jobs (
  id INTEGER PRIMARY KEY,
  chat_id INTEGER NOT NULL,
  file_url TEXT NOT NULL,
  source_language TEXT NOT NULL,
  target_language TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_translation_jobs_chat_created ON translation_jobs(chat_id, created_at);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}
	return nil
}
