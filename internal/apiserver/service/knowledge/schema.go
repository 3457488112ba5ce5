package knowledge

import (
	"database/sql"
	"fmt"
)

const (
	TableDocuments    = "documents"
	TableDocumentsFTS = "documents_fts"
)

// SchemaResult holds the outcome of schema initialization.
type SchemaResult struct {
	// FTSAvailable indicates whether the FTS5 index was created. Without
	// it search degrades to LIKE matching.
	FTSAvailable bool

	// FTSError is the error message if FTS5 creation failed.
	FTSError string
}

// EnsureSchema creates the document tables and indexes.
func EnsureSchema(db *sql.DB) (*SchemaResult, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + TableDocuments + ` (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			hash TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON ` + TableDocuments + `(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON ` + TableDocuments + `(updated_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("exec schema: %w", err)
		}
	}

	result := &SchemaResult{}
	ftsSQL := `CREATE VIRTUAL TABLE IF NOT EXISTS ` + TableDocumentsFTS + ` USING fts5(
		content,
		id UNINDEXED,
		collection UNINDEXED,
		source UNINDEXED
	)`
	if _, err := db.Exec(ftsSQL); err != nil {
		result.FTSError = err.Error()
	} else {
		result.FTSAvailable = true
	}

	return result, nil
}
