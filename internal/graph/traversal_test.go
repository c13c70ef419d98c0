package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailhead/internal/domain"
)

type depthOf map[string]int

func treeDepths(entries []domain.TreeEntry) depthOf {
	out := make(depthOf, len(entries))
	for _, e := range entries {
		out[e.Node.Name] = e.Depth
	}
	return out
}

func TestNodeTree_All(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.create(t, "Root")
	c1 := env.create(t, "Child1", root)
	env.create(t, "Child2", root)
	env.create(t, "Grandchild", c1)

	tree, err := env.engine.NodeTree(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tree, 4)

	assert.Equal(t, "Root", tree[0].Node.Name)
	assert.Equal(t, depthOf{"Root": 0, "Child1": 1, "Child2": 1, "Grandchild": 2}, treeDepths(tree))

	// Depth ascending, most recently accessed first within a depth
	assert.Equal(t, "Child2", tree[1].Node.Name)
	assert.Equal(t, "Child1", tree[2].Node.Name)
}

func TestNodeTree_DepthBound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	prev := env.create(t, "L0")
	for i := 1; i <= 5; i++ {
		prev = env.create(t, fmt.Sprintf("L%d", i), prev)
	}

	tree, err := env.engine.NodeTree(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, depthOf{"L0": 0, "L1": 1, "L2": 2, "L3": 3}, treeDepths(tree))
	for _, e := range tree {
		assert.LessOrEqual(t, e.Depth, domain.MaxTreeDepth)
	}
}

func TestNodeTree_MinimumDepthOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Shared is reachable at depth 2 via Mid and depth 1 via Root directly
	root := env.create(t, "Root")
	mid := env.create(t, "Mid", root)
	shared := env.create(t, "Shared", mid)
	require.NoError(t, env.engine.AddNodeRelationship(ctx, root, shared))
	env.create(t, "Leaf", shared)

	tree, err := env.engine.NodeTree(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tree, 4)
	assert.Equal(t, depthOf{"Root": 0, "Mid": 1, "Shared": 1, "Leaf": 2}, treeDepths(tree))
}

func TestNodeTree_RootFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "Fresh")
	stale := env.create(t, "Stale")
	scratch, err := env.engine.CreateNode(ctx, "Scratch", nil, true)
	require.NoError(t, err)
	env.create(t, "Under Scratch", scratch)

	old := env.clock.t.Add(-30 * 24 * time.Hour)
	require.NoError(t, env.engine.UpdateNode(ctx, stale, domain.NodePatch{LastAccessed: &old}))

	recent, err := env.engine.NodeTree(ctx, domain.FilterRecent)
	require.NoError(t, err)
	assert.NotContains(t, treeDepths(recent), "Stale")
	assert.Contains(t, treeDepths(recent), "Fresh")

	temp, err := env.engine.NodeTree(ctx, domain.FilterTemp)
	require.NoError(t, err)
	assert.Equal(t, depthOf{"Scratch": 0, "Under Scratch": 1}, treeDepths(temp))
}

func TestNodeTree_AnchorFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	none, err := env.engine.NodeTree(ctx, domain.FilterProjects)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, env.engine.EnsureAnchors(ctx))
	p := env.create(t, "Website", domain.AnchorProjects)
	env.create(t, "Launch", p)
	env.create(t, "Go", domain.AnchorTopics)

	projects, err := env.engine.NodeTree(ctx, domain.FilterProjects)
	require.NoError(t, err)
	assert.Equal(t, depthOf{"Projects": 0, "Website": 1, "Launch": 2}, treeDepths(projects))

	topics, err := env.engine.NodeTree(ctx, domain.FilterTopics)
	require.NoError(t, err)
	assert.Equal(t, depthOf{"Topics": 0, "Go": 1}, treeDepths(topics))
}

func TestWalkTree_CorruptedCycle(t *testing.T) {
	nodes := map[string]domain.Node{
		"a": {ID: "a", Name: "a"},
		"b": {ID: "b", Name: "b"},
		"c": {ID: "c", Name: "c"},
	}
	edges := map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a", "b"}}

	loader := func(_ context.Context, id string) ([]domain.Node, error) {
		var out []domain.Node
		for _, c := range edges[id] {
			out = append(out, nodes[c])
		}
		return out, nil
	}

	entries, err := walkTree(context.Background(), []domain.Node{nodes["a"]}, loader, 10)
	require.NoError(t, err)
	assert.Equal(t, depthOf{"a": 0, "b": 1, "c": 2}, treeDepths(entries))
}

func TestFilteredNodeTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	x := env.create(t, "X")
	env.create(t, "Y")
	z := env.create(t, "Z")

	t.Run("no current context", func(t *testing.T) {
		all, err := env.engine.FilteredNodeTree(ctx, domain.FilterAll)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for _, e := range all {
			assert.False(t, e.Selected)
		}

		members, err := env.engine.FilteredNodeTree(ctx, domain.FilterContext)
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	c, err := env.contexts.CreateContext(ctx, "focus")
	require.NoError(t, err)
	require.NoError(t, env.contexts.AddMember(ctx, c.ID, x))
	require.NoError(t, env.contexts.AddMember(ctx, c.ID, z))
	require.NoError(t, env.contexts.UseContext(ctx, c.ID))

	t.Run("overlay marks members", func(t *testing.T) {
		all, err := env.engine.FilteredNodeTree(ctx, domain.FilterAll)
		require.NoError(t, err)

		selected := map[string]bool{}
		for _, e := range all {
			selected[e.Node.Name] = e.Selected
		}
		assert.Equal(t, map[string]bool{"X": true, "Y": false, "Z": true}, selected)
	})

	t.Run("context filter returns members only", func(t *testing.T) {
		members, err := env.engine.FilteredNodeTree(ctx, domain.FilterContext)
		require.NoError(t, err)
		require.Len(t, members, 2)

		got := map[string]bool{}
		for _, e := range members {
			got[e.Node.Name] = e.Selected
		}
		assert.Equal(t, map[string]bool{"X": true, "Z": true}, got)
	})

	t.Run("members keep their tree depth", func(t *testing.T) {
		child := env.create(t, "Deep", x)
		require.NoError(t, env.contexts.AddMember(ctx, c.ID, child))

		members, err := env.engine.FilteredNodeTree(ctx, domain.FilterContext)
		require.NoError(t, err)
		for _, e := range members {
			if e.Node.ID == child {
				assert.Equal(t, 1, e.Depth)
			}
		}
	})
}

func TestFormatNodeWithHierarchy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.create(t, "Work")
	personal := env.create(t, "Personal")
	proj := env.create(t, "Website", work)
	task := env.create(t, "Deploy", proj)
	require.NoError(t, env.engine.AddNodeRelationship(ctx, personal, proj))

	node, err := env.engine.GetNode(ctx, task)
	require.NoError(t, err)

	got, err := env.engine.FormatNodeWithHierarchy(ctx, *node)
	require.NoError(t, err)
	assert.Equal(t, "Work → Website → Deploy", got)

	// Re-parenting changes which edge is first
	require.NoError(t, env.engine.SetNodeParents(ctx, proj, []string{personal, work}))
	got, err = env.engine.FormatNodeWithHierarchy(ctx, *node)
	require.NoError(t, err)
	assert.Equal(t, "Personal → Website → Deploy", got)

	root, err := env.engine.GetNode(ctx, work)
	require.NoError(t, err)
	got, err = env.engine.FormatNodeWithHierarchy(ctx, *root)
	require.NoError(t, err)
	assert.Equal(t, "Work", got)
}
