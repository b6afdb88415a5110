package storage

import (
	"github.com/google/uuid"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
)

// MockRepository is an in-memory implementation of MappingRepository for
// testing. It preserves insertion order so test expectations stay stable.
type MockRepository struct {
	mappings []mapping.CategoryMapping
	index    map[uuid.UUID]int

	// Hooks for test assertions
	SaveCalled            bool
	LastSaved             *mapping.CategoryMapping
	FindOverlappingCalled bool

	// Error injection for testing error paths
	SaveErr            error
	FindOverlappingErr error
	ListErr            error
}

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		index: make(map[uuid.UUID]int),
	}
}

// Compile-time check that MockRepository implements MappingRepository
var _ MappingRepository = (*MockRepository)(nil)

// Close does nothing for mock.
func (m *MockRepository) Close() error {
	return nil
}

// Save stores the mapping in memory, replacing any entry with the same ID.
func (m *MockRepository) Save(cm mapping.CategoryMapping) (mapping.CategoryMapping, error) {
	m.SaveCalled = true
	m.LastSaved = &cm
	if m.SaveErr != nil {
		return mapping.CategoryMapping{}, m.SaveErr
	}

	if i, ok := m.index[cm.ID]; ok {
		m.mappings[i] = cm
	} else {
		m.index[cm.ID] = len(m.mappings)
		m.mappings = append(m.mappings, cm)
	}
	return cm, nil
}

// FindOverlapping returns stored mappings sharing a token with the pattern.
func (m *MockRepository) FindOverlapping(p pattern.Pattern) ([]mapping.CategoryMapping, error) {
	m.FindOverlappingCalled = true
	if m.FindOverlappingErr != nil {
		return nil, m.FindOverlappingErr
	}

	var overlapping []mapping.CategoryMapping
	for _, cm := range m.mappings {
		if cm.Pattern.Overlaps(p) {
			overlapping = append(overlapping, cm)
		}
	}
	return overlapping, nil
}

// ListMappings returns all stored mappings in insertion order.
func (m *MockRepository) ListMappings() ([]mapping.CategoryMapping, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]mapping.CategoryMapping, len(m.mappings))
	copy(out, m.mappings)
	return out, nil
}
