// Package storage persists the learned pattern dictionary.
//
// The dictionary is exposed through MappingRepository so the SQLite
// implementation can be swapped for any other engine, and so tests run
// against the in-memory mock.
package storage

import (
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
)

// MappingRepository is the read/write contract for the pattern dictionary.
type MappingRepository interface {
	// FindOverlapping returns every stored mapping whose pattern shares at
	// least one token with the given pattern.
	FindOverlapping(p pattern.Pattern) ([]mapping.CategoryMapping, error)

	// Save inserts or updates a mapping and returns the persisted value.
	Save(m mapping.CategoryMapping) (mapping.CategoryMapping, error)

	// ListMappings returns the full dictionary, oldest first.
	ListMappings() ([]mapping.CategoryMapping, error)

	// Close releases underlying resources.
	Close() error
}
