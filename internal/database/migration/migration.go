package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The stored_files table is the usage registry: one row per object the
// platform has accepted, partitioned by owner and visibility class. Rows are
// inserted by the post-upload registration flow; this service only reads.
var steps = []migrationStep{
	{
		Name: "create_table_stored_files",
		SQL: `CREATE TABLE IF NOT EXISTS stored_files (
  bucket     TEXT        NOT NULL,
  object_key TEXT        NOT NULL,
  visibility TEXT        NOT NULL,
  owner      TEXT        NOT NULL,
  owner_name TEXT        NOT NULL DEFAULT '',
  dataset    TEXT        NOT NULL DEFAULT '',
  flow_id    TEXT        NOT NULL DEFAULT '',
  size       BIGINT      NOT NULL CHECK (size >= 0),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (bucket, object_key, visibility)
);`,
	},
	{
		Name: "create_index_stored_files_owner_visibility",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stored_files_owner_visibility ON stored_files (owner, visibility);`,
	},
	{
		Name: "create_index_stored_files_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stored_files_created_at ON stored_files (created_at);`,
	},
}

// EnsureMigrated checks if the 'stored_files' table exists and runs the
// migration steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.stored_files') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(map[string]any{
			"component": "database",
			"event":     "db_migration_skip",
			"status":    "success",
			"db_host":   dbHost,
		})
		return nil
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(map[string]any{
				"component":      "database",
				"event":          "db_migration_failed",
				"status":         "error",
				"migration_step": step.Name,
				"error_message":  err.Error(),
				"db_host":        dbHost,
				"duration_ms":    time.Since(start).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
