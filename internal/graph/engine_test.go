package graph

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trailhead/internal/adapters/sqlite"
	"trailhead/internal/adapters/sqlstore"
	"trailhead/internal/application"
	"trailhead/internal/domain"
)

// stepClock advances one second on every read so LastAccessed ordering is deterministic
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type testEnv struct {
	engine   *Engine
	contexts *sqlstore.ContextStore
	store    *sqlstore.Store
	clock    *stepClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	log := zaptest.NewLogger(t)

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "graph.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &stepClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	contexts := sqlstore.NewContextStore(store)

	return &testEnv{
		engine:   New(store, contexts, WithLogger(log), WithClock(clock.Now)),
		contexts: contexts,
		store:    store,
		clock:    clock,
	}
}

func (env *testEnv) create(t *testing.T, name string, parents ...string) string {
	t.Helper()
	id, err := env.engine.CreateNode(context.Background(), name, parents, false)
	require.NoError(t, err)
	return id
}

func names(nodes []domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestEnsureAnchors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.engine.EnsureAnchors(ctx))
	require.NoError(t, env.engine.EnsureAnchors(ctx))

	for _, a := range domain.Anchors {
		n, err := env.engine.GetNode(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, a.Name, n.Name)
	}

	all, err := env.engine.FindNodes(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, len(domain.Anchors))
}

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("closed store", func(t *testing.T) {
		log := zaptest.NewLogger(t)
		path := filepath.Join(t.TempDir(), "closed.db")
		store, err := sqlite.Open(ctx, path, log)
		require.NoError(t, err)
		engine := New(store, sqlstore.NewContextStore(store), WithLogger(log))
		require.NoError(t, store.Close())

		_, err = engine.CreateNode(ctx, "Ghost", nil, false)
		require.ErrorIs(t, err, application.ErrStorage)
		var se *application.StorageError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "create node", se.Op)

		_, err = engine.FindNodes(ctx, "")
		require.ErrorIs(t, err, application.ErrStorage)

		reopened, err := sqlite.Open(ctx, path, log)
		require.NoError(t, err)
		t.Cleanup(func() { reopened.Close() })
		found, err := New(reopened, sqlstore.NewContextStore(reopened)).FindNodes(ctx, "Ghost")
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("failure mid transaction rolls back", func(t *testing.T) {
		env := newTestEnv(t)
		parent := env.create(t, "Parent")

		_, err := env.store.DB().ExecContext(ctx, `DROP TABLE node_relationships`)
		require.NoError(t, err)

		// The node row is inserted before the edge insert fails
		_, err = env.engine.CreateNode(ctx, "Orphan", []string{parent}, false)
		require.ErrorIs(t, err, application.ErrStorage)

		all, err := env.engine.FindNodes(ctx, "")
		require.NoError(t, err)
		require.Equal(t, []string{"Parent"}, names(all))
	})
}

func TestDedupe(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "", "c", "b"}))
	require.Empty(t, dedupe(nil))
}
