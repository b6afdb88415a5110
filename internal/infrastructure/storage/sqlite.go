package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

// Storage provides SQLite-backed access to the pattern dictionary.
// It implements the MappingRepository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements MappingRepository
var _ MappingRepository = (*Storage)(nil)

// NewStorage creates a new storage instance backed by a SQLite database.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) runMigrations() error {
	schema := `
	CREATE TABLE IF NOT EXISTS category_mappings (
		id TEXT PRIMARY KEY,
		category_id TEXT NOT NULL,
		category_name TEXT NOT NULL,
		category_group TEXT,
		category_type TEXT NOT NULL,
		tokens_json TEXT NOT NULL,
		confidence REAL NOT NULL,
		occurrences INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_category_mappings_category
		ON category_mappings(category_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Save inserts or updates a mapping.
func (s *Storage) Save(m mapping.CategoryMapping) (mapping.CategoryMapping, error) {
	tokensJSON, err := json.Marshal(m.Pattern.Tokens())
	if err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("failed to marshal pattern tokens: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO category_mappings
	(id, category_id, category_name, category_group, category_type,
	 tokens_json, confidence, occurrences, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		m.ID.String(),
		m.Category.ID,
		m.Category.Name,
		m.Category.GroupName,
		string(m.Category.Type),
		string(tokensJSON),
		m.Confidence,
		m.Occurrences,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
		m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return mapping.CategoryMapping{}, err
	}

	return m, nil
}

// FindOverlapping returns mappings sharing at least one pattern token with
// the given pattern. The dictionary is small enough that filtering in memory
// beats building a token index table.
func (s *Storage) FindOverlapping(p pattern.Pattern) ([]mapping.CategoryMapping, error) {
	all, err := s.ListMappings()
	if err != nil {
		return nil, err
	}

	var overlapping []mapping.CategoryMapping
	for _, m := range all {
		if m.Pattern.Overlaps(p) {
			overlapping = append(overlapping, m)
		}
	}
	return overlapping, nil
}

// ListMappings returns the full dictionary, oldest first.
func (s *Storage) ListMappings() ([]mapping.CategoryMapping, error) {
	query := `
	SELECT id, category_id, category_name, category_group, category_type,
	       tokens_json, confidence, occurrences, created_at, updated_at
	FROM category_mappings
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var mappings []mapping.CategoryMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func scanMapping(rows *sql.Rows) (mapping.CategoryMapping, error) {
	var (
		m             mapping.CategoryMapping
		id            string
		categoryGroup sql.NullString
		categoryType  string
		tokensJSON    string
		createdAt     string
		updatedAt     string
	)

	err := rows.Scan(
		&id,
		&m.Category.ID,
		&m.Category.Name,
		&categoryGroup,
		&categoryType,
		&tokensJSON,
		&m.Confidence,
		&m.Occurrences,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return mapping.CategoryMapping{}, err
	}

	m.ID, err = uuid.Parse(id)
	if err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("invalid mapping id %q: %w", id, err)
	}

	if categoryGroup.Valid {
		m.Category.GroupName = categoryGroup.String
	}
	m.Category.Type = transaction.CategoryType(categoryType)

	var tokens []string
	if err := json.Unmarshal([]byte(tokensJSON), &tokens); err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("invalid pattern tokens for mapping %s: %w", id, err)
	}
	m.Pattern, err = pattern.FromTokens(tokens)
	if err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("empty pattern for mapping %s: %w", id, err)
	}

	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("invalid created_at for mapping %s: %w", id, err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return mapping.CategoryMapping{}, fmt.Errorf("invalid updated_at for mapping %s: %w", id, err)
	}

	return m, nil
}
