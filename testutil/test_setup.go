// Package testutil はHTTPレベルのテストで共有するセットアップを提供します。
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/backend/internal/config"
	"go-mongo-todo/backend/internal/routes"
	"go-mongo-todo/backend/internal/todo"
)

// IndexHTML はテスト用の公開ディレクトリに置くエントリドキュメントです。
const IndexHTML = "<!DOCTYPE html><title>Todo</title><ul id=\"todo-list\"></ul>"

// SetupTestDB は一時ファイルのSQLiteストアとルーターをセットアップします。
// 毎回新しいファイルを使うため、テストごとにクリーンな状態になります。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *todo.SQLRepository) {
	t.Helper()

	dir := t.TempDir()
	db, err := sql.Open("sqlite3", filepath.Join(dir, "todo.db"))
	require.NoError(t, err, "Failed to open database connection")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	todoRepo := todo.NewSQLRepository(db, config.DriverSQLite)
	require.NoError(t, todoRepo.EnsureSchema(context.Background()), "Failed to create todos table")

	router := SetupTestRouter(t, todoRepo)
	return db, router, todoRepo
}

// SetupTestRouter は任意のRepositoryでテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, todoRepo todo.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte(IndexHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "script.js"), []byte("// script"), 0o644))

	cfg := &config.Config{
		PublicDir:    publicDir,
		AllowOrigins: []string{"http://localhost:3000"},
	}
	return routes.SetupRouter(todoRepo, cfg)
}

// Do はリクエストを実行し、レスポンスを返します。
func Do(t *testing.T, router http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body.WriteString(p)
		default:
			require.NoError(t, json.NewEncoder(&body).Encode(p))
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodo はAPI経由でTODOを作成します。
func CreateTestTodo(t *testing.T, router http.Handler, task string) *todo.Todo {
	t.Helper()

	resp := Do(t, router, http.MethodPost, "/todos", map[string]string{"task": task})
	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo todo.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &createdTodo))
	return &createdTodo
}
