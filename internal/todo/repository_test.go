package todo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/backend/internal/todo"
)

// runRepositoryContract はRepository実装に共通する振る舞いを検証します。
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) todo.Repository) {
	ctx := context.Background()

	t.Run("FindAll on empty store returns empty slice", func(t *testing.T) {
		repo := newRepo(t)
		todos, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("Create assigns distinct ids and completed=false", func(t *testing.T) {
		repo := newRepo(t)
		first, err := repo.Create(ctx, "buy milk")
		require.NoError(t, err)
		second, err := repo.Create(ctx, "walk dog")
		require.NoError(t, err)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, "buy milk", first.Task)
		assert.False(t, first.Completed)

		todos, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, first.ID, todos[0].ID)
		assert.Equal(t, second.ID, todos[1].ID)
	})

	t.Run("Complete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, "write report")
		require.NoError(t, err)

		updated, err := repo.Complete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.Task, updated.Task)

		again, err := repo.Complete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, again)
	})

	t.Run("Delete returns removed record", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, "call mom")
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		todos, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)

		_, err = repo.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, todo.ErrTodoNotFound)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []string{"", "not-an-id", "65f0c0ffee0000000000abcd"} {
			_, err := repo.Complete(ctx, id)
			assert.ErrorIs(t, err, todo.ErrTodoNotFound, "Complete(%q)", id)
			_, err = repo.Delete(ctx, id)
			assert.ErrorIs(t, err, todo.ErrTodoNotFound, "Delete(%q)", id)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
