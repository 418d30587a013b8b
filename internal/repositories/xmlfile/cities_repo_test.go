package xmlfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-xml/internal/util"
)

func newRepo(t *testing.T) *CitiesRepo {
	t.Helper()
	return NewCitiesRepo(filepath.Join(t.TempDir(), "cities.xml"))
}

func TestEnsureInitializedCreatesEmptyDocument(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.EnsureInitialized(ctx))
	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "<cities></cities>")

	// second call leaves existing content alone
	_, err = r.Create(ctx, "London")
	require.NoError(t, err)
	require.NoError(t, r.EnsureInitialized(ctx))
	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListOnMissingFileIsEmpty(t *testing.T) {
	r := newRepo(t)
	list, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = os.Stat(r.Path())
	assert.NoError(t, err)
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	paris, err := r.Create(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, 1, paris.ID)

	lyon, err := r.Create(ctx, "Lyon")
	require.NoError(t, err)
	assert.Equal(t, 2, lyon.ID)
}

func TestDeleteMaxThenCreateReusesID(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	for _, n := range []string{"A", "B", "C"} {
		_, err := r.Create(ctx, n)
		require.NoError(t, err)
	}
	require.NoError(t, r.Delete(ctx, 3))

	d, err := r.Create(ctx, "D")
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID)

	// deleting a middle id does not move the max
	require.NoError(t, r.Delete(ctx, 1))
	e, err := r.Create(ctx, "E")
	require.NoError(t, err)
	assert.Equal(t, 4, e.ID)
}

func TestUpdate(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	c, err := r.Create(ctx, "Pari")
	require.NoError(t, err)

	got, err := r.Update(ctx, c.ID, "Paris")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "Paris", got.Name)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paris", list[0].Name)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	_, err := r.Create(ctx, "Oslo")
	require.NoError(t, err)

	_, err = r.Update(ctx, 999, "Nowhere")
	assert.True(t, errors.Is(err, util.ErrNotFound))

	err = r.Delete(ctx, 999)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPersistenceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.xml")
	ctx := context.Background()

	first := NewCitiesRepo(path)
	names := []string{"London", "Paris", "Tokyo"}
	for _, n := range names {
		_, err := first.Create(ctx, n)
		require.NoError(t, err)
	}

	second := NewCitiesRepo(path)
	list, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(names))
	for i, n := range names {
		assert.Equal(t, i+1, list[i].ID)
		assert.Equal(t, n, list[i].Name)
	}
}

func TestCorruptFileIsStorageUnavailable(t *testing.T) {
	r := newRepo(t)
	require.NoError(t, os.WriteFile(r.Path(), []byte("not xml at all"), 0o644))

	_, err := r.List(context.Background())
	assert.True(t, errors.Is(err, util.ErrStorageUnavailable))

	_, err = r.Create(context.Background(), "Paris")
	assert.True(t, errors.Is(err, util.ErrStorageUnavailable))
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.Create(ctx, "city")
			if err == nil {
				ids <- c.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	r := NewCitiesRepo(filepath.Join(dir, "cities.xml"))
	ctx := context.Background()
	_, err := r.Create(ctx, "Paris")
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, 1))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cities.xml", entries[0].Name())
}

func TestCanceledContext(t *testing.T) {
	r := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
