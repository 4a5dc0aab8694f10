package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "careconnect.sqlite")

	repo, err := Open(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	_, found, err := repo.Load(ctx, "careconnect_tasks_v1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, "careconnect_tasks_v1", `[{"id":1}]`))
	require.NoError(t, repo.Save(ctx, "careconnect_tasks_v1", `[]`))

	value, found, err := repo.Load(ctx, "careconnect_tasks_v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)

	require.NoError(t, repo.Clear(ctx, "careconnect_tasks_v1"))
	_, found, err = repo.Load(ctx, "careconnect_tasks_v1")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, repo.Ping(ctx))
}

func TestSlotRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "careconnect.sqlite")

	repo, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "careconnect_activities_v1", `{"not":"a list"}`))
	require.NoError(t, repo.Close())

	repo, err = Open(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	value, found, err := repo.Load(ctx, "careconnect_activities_v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"not":"a list"}`, value)
}
