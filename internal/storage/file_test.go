package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackreg/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "students.json"))
	require.NoError(t, err)
	return store
}

func student(id, email, roll, dept, year string, at time.Time) *models.Student {
	return &models.Student{
		ID:           id,
		Name:         "Student " + id,
		Email:        email,
		Phone:        "9876543210",
		Department:   dept,
		Year:         year,
		RollNumber:   roll,
		TeamSize:     1,
		TeamMembers:  []models.TeamMember{},
		Event:        "General",
		RegisteredAt: at,
	}
}

func TestFileStore_InitializesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	_, err := NewFileStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileStore_InsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s := student("id1", "a@x.com", "R1", "CSE", "2", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, s))

	got, err := store.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_InsertRejectsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, student("id1", "a@x.com", "R1", "CSE", "2", base)))

	assert.ErrorIs(t, store.Insert(ctx, student("id1", "b@x.com", "R2", "CSE", "2", base)), ErrDuplicate)
	assert.ErrorIs(t, store.Insert(ctx, student("id2", "a@x.com", "R2", "CSE", "2", base)), ErrDuplicate)
	// Email uniqueness is case-insensitive.
	assert.ErrorIs(t, store.Insert(ctx, student("id3", "A@X.COM", "R3", "CSE", "2", base)), ErrDuplicate)
	assert.ErrorIs(t, store.Insert(ctx, student("id4", "c@x.com", "R1", "CSE", "2", base)), ErrDuplicate)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFileStore_ListSortsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, student("old", "old@x.com", "R1", "CSE", "2", base)))
	require.NoError(t, store.Insert(ctx, student("new", "new@x.com", "R2", "ECE", "3", base.Add(time.Hour))))
	require.NoError(t, store.Insert(ctx, student("mid", "mid@x.com", "R3", "CSE", "2", base.Add(time.Minute))))

	students, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "new", students[0].ID)
	assert.Equal(t, "mid", students[1].ID)
	assert.Equal(t, "old", students[2].ID)
}

func TestFileStore_FindByEmailAndRollNumber(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, student("id1", "a@x.com", "R1", "CSE", "2", time.Now().UTC())))

	got, err := store.FindByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, "id1", got.ID)

	got, err = store.FindByRollNumber(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "id1", got.ID)

	_, err = store.FindByEmail(ctx, "b@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindByRollNumber(ctx, "R2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_DeleteByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, student("id1", "a@x.com", "R1", "CSE", "2", time.Now().UTC())))
	require.NoError(t, store.Insert(ctx, student("id2", "b@x.com", "R2", "CSE", "2", time.Now().UTC())))

	require.NoError(t, store.DeleteByID(ctx, "id1"))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Second delete is a clean not-found, store size unchanged.
	assert.ErrorIs(t, store.DeleteByID(ctx, "id1"), ErrNotFound)
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFileStore_CountByField(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, student("id1", "a@x.com", "R1", "CSE", "2", base)))
	require.NoError(t, store.Insert(ctx, student("id2", "b@x.com", "R2", "CSE", "3", base)))
	require.NoError(t, store.Insert(ctx, student("id3", "c@x.com", "R3", "ECE", "2", base)))

	byDept, err := store.CountByField(ctx, "department")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"CSE": 2, "ECE": 1}, byDept)

	byYear, err := store.CountByField(ctx, "year")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2": 2, "3": 1}, byYear)

	// Group counts sum to the total.
	total := 0
	for _, n := range byDept {
		total += n
	}
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, total)

	_, err = store.CountByField(ctx, "email")
	assert.Error(t, err)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	ctx := context.Background()

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, student("id1", "a@x.com", "R1", "CSE", "2", time.Now().UTC())))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}
