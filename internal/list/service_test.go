package list

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same upsert contract as the
// MySQL tables: at most one entry per (user, catalog id), snapshot
// columns written once, status overwritten.
type memStore struct {
	nextID  uint64
	entries map[uint64]map[string]*Entry
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, entries: map[uint64]map[string]*Entry{}}
}

func (m *memStore) Upsert(_ context.Context, userID uint64, item Item, status string) (Entry, bool, error) {
	byUser := m.entries[userID]
	if byUser == nil {
		byUser = map[string]*Entry{}
		m.entries[userID] = byUser
	}
	if e, ok := byUser[item.ID]; ok {
		e.Status = status
		return *e, false, nil
	}
	e := &Entry{
		ID:        m.nextID,
		UserID:    userID,
		CatalogID: item.ID,
		Title:     item.Title,
		Synopsis:  item.Synopsis,
		Image:     item.Image,
		Genres:    JoinGenres(item.Genres),
		Status:    status,
	}
	m.nextID++
	byUser[item.ID] = e
	return *e, true, nil
}

func (m *memStore) Remove(_ context.Context, userID uint64, catalogID string) (bool, error) {
	byUser := m.entries[userID]
	if _, ok := byUser[catalogID]; !ok {
		return false, nil
	}
	delete(byUser, catalogID)
	return true, nil
}

func (m *memStore) ListByUser(_ context.Context, userID uint64) ([]Entry, error) {
	out := make([]Entry, 0, len(m.entries[userID]))
	for _, e := range m.entries[userID] {
		out = append(out, *e)
	}
	return out, nil
}

func testItem() Item {
	return Item{
		ID:       "abc123",
		Title:    "Ojamajo Doremi",
		Synopsis: "A girl becomes a witch apprentice.",
		Image:    "/uploads/animes/doremi.jpg",
		Genres:   []string{"Comedy", "Magic"},
	}
}

func TestSetStatus_CreatesEntry(t *testing.T) {
	svc := NewService(newMemStore())

	entry, removed, err := svc.SetStatus(context.Background(), 1, testItem(), "Watching")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.False(t, removed)
	assert.Equal(t, uint64(1), entry.UserID)
	assert.Equal(t, "abc123", entry.CatalogID)
	assert.Equal(t, "Watching", entry.Status)
	assert.Equal(t, "Comedy, Magic", entry.Genres)
}

func TestSetStatus_IdempotentCreate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	first, _, err := svc.SetStatus(ctx, 1, testItem(), "Watching")
	require.NoError(t, err)
	second, _, err := svc.SetStatus(ctx, 1, testItem(), "Watching")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	entries, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Watching", entries[0].Status)
}

func TestSetStatus_UpdatePreservesSnapshot(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	first, _, err := svc.SetStatus(ctx, 1, testItem(), "Watching")
	require.NoError(t, err)

	// second call carries newer catalog data; only status may change
	changed := testItem()
	changed.Title = "Ojamajo Doremi Dokkaan!"
	changed.Synopsis = "Different synopsis."
	second, _, err := svc.SetStatus(ctx, 1, changed, "Completed")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Completed", second.Status)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Synopsis, second.Synopsis)
	assert.Equal(t, first.Genres, second.Genres)
}

func TestSetStatus_DropRemoves(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	_, _, err := svc.SetStatus(ctx, 1, testItem(), "Watching")
	require.NoError(t, err)

	entry, removed, err := svc.SetStatus(ctx, 1, testItem(), StatusDrop)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.True(t, removed)

	entries, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetStatus_DropOnAbsentReportsMiss(t *testing.T) {
	svc := NewService(newMemStore())

	entry, removed, err := svc.SetStatus(context.Background(), 1, testItem(), StatusDrop)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.False(t, removed)
}

func TestSetStatus_Validation(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	_, _, err := svc.SetStatus(ctx, 1, testItem(), "")
	assert.ErrorIs(t, err, ErrValidation)

	noID := testItem()
	noID.ID = ""
	_, _, err = svc.SetStatus(ctx, 1, noID, "Watching")
	assert.ErrorIs(t, err, ErrValidation)

	noGenres := testItem()
	noGenres.Genres = nil
	_, _, err = svc.SetStatus(ctx, 1, noGenres, "Watching")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetStatus_EmptyGenreSliceAllowed(t *testing.T) {
	svc := NewService(newMemStore())

	item := testItem()
	item.Genres = []string{}
	entry, _, err := svc.SetStatus(context.Background(), 1, item, "Planning")
	require.NoError(t, err)
	assert.Equal(t, "", entry.Genres)
}

func TestRemove_ScopedToUser(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	_, _, err := svc.SetStatus(ctx, 1, testItem(), "Watching")
	require.NoError(t, err)
	_, _, err = svc.SetStatus(ctx, 2, testItem(), "Completed")
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, 1, "abc123")
	require.NoError(t, err)
	assert.True(t, removed)

	// user 2's entry survives user 1's removal
	entries, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Completed", entries[0].Status)
}

func TestList_EmptyForUnknownUser(t *testing.T) {
	svc := NewService(newMemStore())

	entries, err := svc.List(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
