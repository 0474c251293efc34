package todo_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/backend/internal/todo"
)

func newSQLiteRepository(t *testing.T) *todo.SQLRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := todo.NewSQLRepository(db, "sqlite3")
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestSQLRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) todo.Repository {
		return newSQLiteRepository(t)
	})
}

func TestSQLRepository_EnsureSchemaIsRepeatable(t *testing.T) {
	repo := newSQLiteRepository(t)
	assert.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestSQLRepository_UnsupportedDialect(t *testing.T) {
	repo := todo.NewSQLRepository(nil, "postgres")
	assert.Error(t, repo.EnsureSchema(context.Background()))
}

func TestSQLRepository_StoreErrorIsWrapped(t *testing.T) {
	repo := newSQLiteRepository(t)
	require.NoError(t, repo.DB.Close())

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, todo.ErrTodoNotFound)

	_, err = repo.Create(context.Background(), "after close")
	assert.Error(t, err)
}

func TestSQLRepository_DeleteLosingRaceIsNotFound(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "contested")
	require.NoError(t, err)

	// DELETE が行を消さない状況 (別トランザクションが先に削除した場合と同じ結果) を作る
	_, err = repo.DB.ExecContext(ctx, `
		CREATE TRIGGER skip_delete BEFORE DELETE ON todos
		BEGIN
			SELECT RAISE(IGNORE);
		END;`)
	require.NoError(t, err)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, todo.ErrTodoNotFound)
}
