// Package knowledge implements the RAG document store backing the
// knowledge_search tool: a SQLite database of collection-scoped documents
// with FTS5 search and a plain LIKE fallback.
package knowledge

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// CollectionInfo summarizes one collection for API consumption.
type CollectionInfo struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
}

// Store is the SQLite-backed document store. It implements the retrieval
// interface the knowledge_search tool consumes.
type Store struct {
	db           *sql.DB
	ftsAvailable bool
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema, err := EnsureSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if !schema.FTSAvailable {
		logger.Warn("[Knowledge] FTS5 unavailable (%s), search degrades to LIKE matching", schema.FTSError)
	}

	return &Store{db: db, ftsAvailable: schema.FTSAvailable}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IndexDocument upserts one document into a collection. The document ID is
// derived from collection and source, so re-indexing the same source
// replaces its previous content.
func (s *Store) IndexDocument(ctx context.Context, collection, source, content string) error {
	if collection == "" || source == "" {
		return fmt.Errorf("collection and source are required")
	}

	id := documentID(collection, source)
	hash := contentHash(content)

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+TableDocuments+` (id, collection, source, content, hash, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, collection, source, content, hash, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to index document %q: %w", source, err)
	}

	if s.ftsAvailable {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM `+TableDocumentsFTS+` WHERE id = ?`, id)
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO `+TableDocumentsFTS+` (content, id, collection, source) VALUES (?, ?, ?, ?)`,
			content, id, collection, source); err != nil {
			logger.Warn("[Knowledge] failed to update FTS index for %q: %v", source, err)
		}
	}

	return nil
}

// DeleteDocument removes one document from a collection.
func (s *Store) DeleteDocument(ctx context.Context, collection, source string) error {
	id := documentID(collection, source)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+TableDocuments+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", source, err)
	}
	if s.ftsAvailable {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM `+TableDocumentsFTS+` WHERE id = ?`, id)
	}
	return nil
}

// Collections lists every collection with its document count.
func (s *Store) Collections(ctx context.Context) ([]CollectionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT collection, COUNT(*) FROM `+TableDocuments+` GROUP BY collection ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var infos []CollectionInfo
	for rows.Next() {
		var info CollectionInfo
		if err := rows.Scan(&info.Name, &info.Documents); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Search returns up to limit documents from a collection ranked best first.
// Scores are rank-derived so downstream ordering checks stay deterministic
// across the FTS and LIKE paths.
func (s *Store) Search(ctx context.Context, collection, query string, limit int) ([]entity.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	var (
		rows *sql.Rows
		err  error
	)
	if s.ftsAvailable {
		rows, err = s.db.QueryContext(ctx,
			`SELECT source, content FROM `+TableDocumentsFTS+` WHERE `+TableDocumentsFTS+` MATCH ? AND collection = ? ORDER BY rank LIMIT ?`,
			matchExpression(query), collection, limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT source, content FROM `+TableDocuments+` WHERE collection = ? AND content LIKE ? ORDER BY updated_at DESC LIMIT ?`,
			collection, "%"+query+"%", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var sources []entity.Source
	for rows.Next() {
		var src entity.Source
		if err := rows.Scan(&src.Source, &src.Content); err != nil {
			return nil, err
		}
		src.Score = 1.0 / float64(len(sources)+1)
		src.Metadata = map[string]interface{}{"collection": collection}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// matchExpression quotes each query term so user input cannot inject FTS5
// query syntax.
func matchExpression(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	if len(quoted) == 0 {
		return `""`
	}
	return strings.Join(quoted, " OR ")
}

func documentID(collection, source string) string {
	sum := sha256.Sum256([]byte(collection + "\x00" + source))
	return hex.EncodeToString(sum[:16])
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
