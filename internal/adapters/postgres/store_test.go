package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"

	"trailhead/internal/adapters/sqlstore"
	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/graph"
)

// openContainer starts a throwaway PostgreSQL and opens the store on it.
// Skipped under -short or when no container runtime is available.
func openContainer(t *testing.T) *sqlstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("trailhead"),
		tcpostgres.WithUsername("trailhead"),
		tcpostgres.WithPassword("trailhead"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := Open(ctx, dsn, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresEngine(t *testing.T) {
	store := openContainer(t)
	ctx := context.Background()
	contexts := sqlstore.NewContextStore(store)
	engine := graph.New(store, contexts, graph.WithLogger(zaptest.NewLogger(t)))

	require.NoError(t, engine.EnsureAnchors(ctx))

	root, err := engine.CreateNode(ctx, "Root", nil, false)
	require.NoError(t, err)
	c1, err := engine.CreateNode(ctx, "Child1", []string{root}, false)
	require.NoError(t, err)
	_, err = engine.CreateNode(ctx, "Child2", []string{root}, false)
	require.NoError(t, err)
	gc, err := engine.CreateNode(ctx, "Grandchild", []string{c1}, false)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.AddNodeRelationship(ctx, gc, root), application.ErrCycleDetected)
	assert.ErrorIs(t, engine.AddNodeRelationship(ctx, root, c1), application.ErrAlreadyExists)

	tree, err := engine.NodeTree(ctx, domain.FilterAll)
	require.NoError(t, err)
	depths := map[string]int{}
	for _, e := range tree {
		depths[e.Node.Name] = e.Depth
	}
	assert.Equal(t, 2, depths["Grandchild"])

	n, err := engine.GetNode(ctx, gc)
	require.NoError(t, err)
	path, err := engine.FormatNodeWithHierarchy(ctx, *n)
	require.NoError(t, err)
	assert.Equal(t, "Root → Child1 → Grandchild", path)

	require.NoError(t, engine.Visit(ctx, root))
	require.NoError(t, engine.Visit(ctx, gc))
	prev, err := engine.GetPreviousNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, root, prev.ID)

	focus, err := contexts.CreateContext(ctx, "focus")
	require.NoError(t, err)
	require.NoError(t, contexts.AddMember(ctx, focus.ID, c1))
	require.NoError(t, contexts.UseContext(ctx, focus.ID))
	members, err := engine.FilteredNodeTree(ctx, domain.FilterContext)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, c1, members[0].Node.ID)

	_, err = engine.DeleteNode(ctx, root, false)
	assert.ErrorIs(t, err, application.ErrHasChildren)
	deleted, err := engine.DeleteNode(ctx, root, true)
	require.NoError(t, err)
	assert.Len(t, deleted, 4)
}

func TestPostgresConcurrentLinksStayAcyclic(t *testing.T) {
	store := openContainer(t)
	ctx := context.Background()
	engine := graph.New(store, nil)

	a, err := engine.CreateNode(ctx, "A", nil, false)
	require.NoError(t, err)
	b, err := engine.CreateNode(ctx, "B", nil, false)
	require.NoError(t, err)

	// A->B and B->A raced: the advisory lock lets exactly one through
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, pair := range [][2]string{{a, b}, {b, a}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = engine.AddNodeRelationship(ctx, pair[0], pair[1])
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			require.True(t, errors.Is(err, application.ErrCycleDetected), "unexpected error: %v", err)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}
