package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-sync-backend/internal/domain/mapping"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/pattern"
	"github.com/eshaffer321/ynab-sync-backend/internal/domain/transaction"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testMapping(t *testing.T, text string, confidence float64) mapping.CategoryMapping {
	t.Helper()
	p, err := pattern.New(text)
	require.NoError(t, err)
	m, err := mapping.New(transaction.Category{
		ID:        "cat-dining",
		Name:      "Dining Out",
		GroupName: "Food",
		Type:      transaction.CategoryTypeLedger,
	}, p, confidence)
	require.NoError(t, err)
	return m
}

func TestStorage_SaveAndList(t *testing.T) {
	s := newTestStorage(t)

	saved, err := s.Save(testMapping(t, "starbucks coffee", 0.9))
	require.NoError(t, err)

	all, err := s.ListMappings()
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "cat-dining", got.Category.ID)
	assert.Equal(t, "Dining Out", got.Category.Name)
	assert.Equal(t, "Food", got.Category.GroupName)
	assert.Equal(t, transaction.CategoryTypeLedger, got.Category.Type)
	assert.Equal(t, []string{"coffee", "starbucks"}, got.Pattern.Tokens())
	assert.InDelta(t, 0.9, got.Confidence, 0.0001)
	assert.Equal(t, 1, got.Occurrences)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStorage_SaveReplacesSameID(t *testing.T) {
	s := newTestStorage(t)

	m := testMapping(t, "starbucks", 0.9)
	_, err := s.Save(m)
	require.NoError(t, err)

	updated := m.ConsolidatedWith(testMapping(t, "starbucks seattle", 0.7))
	_, err = s.Save(updated)
	require.NoError(t, err)

	all, err := s.ListMappings()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].Occurrences)
	assert.Equal(t, []string{"seattle", "starbucks"}, all[0].Pattern.Tokens())
}

func TestStorage_FindOverlapping(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Save(testMapping(t, "starbucks coffee", 0.9))
	require.NoError(t, err)
	_, err = s.Save(testMapping(t, "grocery store", 0.8))
	require.NoError(t, err)

	p, err := pattern.New("STARBUCKS #1234")
	require.NoError(t, err)

	found, err := s.FindOverlapping(p)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].Pattern.Contains("starbucks"))
}

func TestStorage_FindOverlapping_NoneFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Save(testMapping(t, "starbucks coffee", 0.9))
	require.NoError(t, err)

	p, err := pattern.New("hardware depot")
	require.NoError(t, err)

	found, err := s.FindOverlapping(p)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestStorage_ListEmpty(t *testing.T) {
	s := newTestStorage(t)

	all, err := s.ListMappings()
	require.NoError(t, err)
	assert.Empty(t, all)
}
