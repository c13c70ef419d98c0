package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailhead/internal/application"
)

func TestUpdateNodeHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cur, err := env.engine.GetCurrentNode(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	a := env.create(t, "A")
	b := env.create(t, "B")
	c := env.create(t, "C")

	require.NoError(t, env.engine.UpdateNodeHistory(ctx, a, ""))
	require.NoError(t, env.engine.UpdateNodeHistory(ctx, b, a))
	require.NoError(t, env.engine.UpdateNodeHistory(ctx, c, b))

	cur, err = env.engine.GetCurrentNode(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "C", cur.Name)

	prev, err := env.engine.GetPreviousNode(ctx)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "B", prev.Name)

	records, err := env.engine.RecentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, c, records[0].CurrentNodeID)
	assert.Equal(t, a, records[2].CurrentNodeID)
	assert.Empty(t, records[2].PreviousNodeID)
}

func TestUpdateNodeHistory_TouchesCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.create(t, "A")
	before, err := env.engine.GetNode(ctx, a)
	require.NoError(t, err)

	require.NoError(t, env.engine.UpdateNodeHistory(ctx, a, ""))

	after, err := env.engine.GetNode(ctx, a)
	require.NoError(t, err)
	assert.True(t, after.LastAccessed.After(before.LastAccessed))
}

func TestUpdateNodeHistory_InvalidIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.create(t, "A")

	assert.ErrorIs(t, env.engine.UpdateNodeHistory(ctx, "", a), application.ErrInvalidRequest)
	assert.ErrorIs(t, env.engine.UpdateNodeHistory(ctx, "ghost", a), application.ErrNotFound)

	require.NoError(t, env.engine.UpdateNodeHistory(ctx, a, "ghost"))
	prev, err := env.engine.GetPreviousNode(ctx)
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestVisit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.create(t, "A")
	b := env.create(t, "B")

	require.NoError(t, env.engine.Visit(ctx, a))
	require.NoError(t, env.engine.Visit(ctx, b))

	cur, err := env.engine.GetCurrentNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, b, cur.ID)
	prev, err := env.engine.GetPreviousNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, prev.ID)

	// Revisiting the current node keeps the previous one
	require.NoError(t, env.engine.Visit(ctx, b))
	prev, err = env.engine.GetPreviousNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, prev.ID)
}

func TestGetCurrentNode_Deleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.create(t, "A")
	require.NoError(t, env.engine.Visit(ctx, a))
	_, err := env.engine.DeleteNode(ctx, a, false)
	require.NoError(t, err)

	cur, err := env.engine.GetCurrentNode(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}
