package store

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitclub/internal/common"
)

type widget struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Tags  []string          `json:"tags"`
	Attrs map[string]string `json:"attrs"`
}

func (w widget) GetID() string { return w.ID }

// failingStore reads normally and fails every write once armed.
type failingStore struct {
	*MemoryStore
	failWrites bool
}

func (s *failingStore) Write(ctx context.Context, name string, data []byte) error {
	if s.failWrites {
		return errors.New("disk full")
	}
	return s.MemoryStore.Write(ctx, name, data)
}

func newWidgetRepo(t *testing.T) (*Repository[widget], *MemoryStore) {
	docs := NewMemoryStore()
	repo := NewRepository[widget]("widgets", docs)
	require.NoError(t, repo.Load(context.Background()))
	return repo, docs
}

func TestRepository_AddThenGet(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	w := widget{ID: "w1", Name: "dumbbell", Tags: []string{"free-weights"}}
	added, err := repo.Add(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, w, added)

	got, ok := repo.Get(ctx, "w1")
	require.True(t, ok)
	assert.Equal(t, w, got)
	assert.Len(t, repo.All(ctx), 1)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_AddRejectsDuplicateID(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, widget{ID: "w1"})
	require.NoError(t, err)

	_, err = repo.Add(ctx, widget{ID: "w1"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_GetMissing(t *testing.T) {
	repo, _ := newWidgetRepo(t)

	_, ok := repo.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestRepository_Update(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, widget{ID: "w1", Name: "bench"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, widget{ID: "w2", Name: "rack"})
	require.NoError(t, err)

	found, err := repo.Update(ctx, widget{ID: "w1", Name: "incline bench"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, repo.Len())

	all := repo.All(ctx)
	assert.Equal(t, "incline bench", all[0].Name)
	assert.Equal(t, "rack", all[1].Name)
}

func TestRepository_UpdateMissing(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, widget{ID: "w1", Name: "bench"})
	require.NoError(t, err)

	found, err := repo.Update(ctx, widget{ID: "ghost", Name: "x"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []widget{{ID: "w1", Name: "bench"}}, repo.All(ctx))
}

func TestRepository_Delete(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Add(ctx, widget{ID: id})
		require.NoError(t, err)
	}

	found, err := repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []widget{{ID: "a"}, {ID: "c"}}, repo.All(ctx))

	found, err = repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, repo.Len())
}

func TestRepository_AllIsDefensiveCopy(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, widget{ID: "a"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, widget{ID: "b"})
	require.NoError(t, err)

	all := repo.All(ctx)
	all[0] = widget{ID: "zzz"}
	slices.Reverse(all)

	assert.Equal(t, []widget{{ID: "a"}, {ID: "b"}}, repo.All(ctx))
}

func TestRepository_Find(t *testing.T) {
	repo, _ := newWidgetRepo(t)
	ctx := context.Background()

	_, _ = repo.Add(ctx, widget{ID: "a", Name: "bench"})
	_, _ = repo.Add(ctx, widget{ID: "b", Name: "rack"})

	got := repo.Find(ctx, func(w widget) bool { return w.Name == "rack" })
	assert.Equal(t, []widget{{ID: "b", Name: "rack"}}, got)
}

func TestRepository_RoundTrip(t *testing.T) {
	repo, docs := newWidgetRepo(t)
	ctx := context.Background()

	items := []widget{
		{ID: "a", Name: "bench", Tags: []string{"x", "y"}, Attrs: map[string]string{"color": "red"}},
		{ID: "b", Name: "rack"},
	}
	for _, w := range items {
		_, err := repo.Add(ctx, w)
		require.NoError(t, err)
	}

	reloaded := NewRepository[widget]("widgets", docs)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, items, reloaded.All(ctx))
}

func TestRepository_EmptyCollectionPersistsAsArray(t *testing.T) {
	repo, docs := newWidgetRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, widget{ID: "a"})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, "a")
	require.NoError(t, err)

	data, err := docs.Read(ctx, "widgets")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestRepository_LoadMalformedStartsEmpty(t *testing.T) {
	docs := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, docs.Write(ctx, "widgets", []byte(`{not json`)))

	repo := NewRepository[widget]("widgets", docs)
	err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 0, repo.Len())

	// still usable after a failed load
	_, err = repo.Add(ctx, widget{ID: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_WriteFailureKeepsMemoryState(t *testing.T) {
	docs := &failingStore{MemoryStore: NewMemoryStore()}
	repo := NewRepository[widget]("widgets", docs)
	ctx := context.Background()
	require.NoError(t, repo.Load(ctx))

	_, err := repo.Add(ctx, widget{ID: "a", Name: "bench"})
	require.NoError(t, err)

	docs.failWrites = true

	_, err = repo.Add(ctx, widget{ID: "b"})
	assert.ErrorIs(t, err, ErrStorage)

	found, err := repo.Update(ctx, widget{ID: "a", Name: "changed"})
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrStorage)

	found, err = repo.Delete(ctx, "a")
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrStorage)

	assert.Equal(t, []widget{{ID: "a", Name: "bench"}}, repo.All(ctx))
}

func TestRepository_FileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docs, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	repo := NewRepository[widget]("widgets", docs)
	require.NoError(t, repo.Load(ctx))

	_, err = repo.Add(ctx, widget{ID: "a", Name: "bench", Tags: []string{"flat"}})
	require.NoError(t, err)

	raw, err := os.ReadFile(docs.Path("widgets"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    {")

	reloaded := NewRepository[widget]("widgets", docs)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, repo.All(ctx), reloaded.All(ctx))
}

type gadget struct {
	common.Base
	Name string `json:"name"`
}

func TestRepository_LoadAssignsMissingIDs(t *testing.T) {
	docs := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, docs.Write(ctx, "gadgets", []byte(`[{"name":"a"},{"name":"b"}]`)))

	repo := NewRepository[gadget]("gadgets", docs)
	require.NoError(t, repo.Load(ctx))

	all := repo.All(ctx)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].ID)
	assert.NotEmpty(t, all[1].ID)
	assert.NotEqual(t, all[0].ID, all[1].ID)

	for _, g := range all {
		g.Name += "-renamed"
		found, err := repo.Update(ctx, g)
		require.NoError(t, err)
		assert.True(t, found)
	}

	reloaded := NewRepository[gadget]("gadgets", docs)
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.All(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, all[0].ID, got[0].ID)
	assert.Equal(t, "a-renamed", got[0].Name)
	assert.Equal(t, all[1].ID, got[1].ID)
}

func TestRepository_LoadKeepsAssignedIDsWhenRewriteFails(t *testing.T) {
	docs := &failingStore{MemoryStore: NewMemoryStore()}
	ctx := context.Background()
	require.NoError(t, docs.Write(ctx, "gadgets", []byte(`[{"id":"g1","name":"a"},{"name":"b"}]`)))
	docs.failWrites = true

	repo := NewRepository[gadget]("gadgets", docs)
	require.NoError(t, repo.Load(ctx))

	all := repo.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "g1", all[0].ID)
	assert.NotEmpty(t, all[1].ID)

	_, ok := repo.Get(ctx, all[1].ID)
	assert.True(t, ok)
}
