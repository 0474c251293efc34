package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// 方言ごとのtodosテーブル定義
var createTableSQL = map[string]string{
	"mysql": `
		CREATE TABLE IF NOT EXISTS todos (
			id CHAR(36) PRIMARY KEY,
			task TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL
		);`,
	"sqlite3": `
		CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			task TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);`,
}

// SQLRepository はMySQLまたはSQLiteをストアとするRepositoryです。
// IDはUUID文字列で採番されます。
type SQLRepository struct {
	DB      *sql.DB
	Dialect string
}

// NewSQLRepository は新しいSQLRepositoryインスタンスを作成します。
func NewSQLRepository(db *sql.DB, dialect string) *SQLRepository {
	return &SQLRepository{DB: db, Dialect: dialect}
}

// EnsureSchema はtodosテーブルが無ければ作成します。
func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	ddl, ok := createTableSQL[r.Dialect]
	if !ok {
		return fmt.Errorf("unsupported sql dialect %q", r.Dialect)
	}
	if _, err := r.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("could not create todos table: %w", err)
	}
	return nil
}

// FindAll はすべてのTodoを作成順に取得します。
func (r *SQLRepository) FindAll(ctx context.Context) ([]*Todo, error) {
	query := "SELECT id, task, completed FROM todos ORDER BY created_at, id"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []*Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.Completed); err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Create は新しいTodoをテーブルに挿入します。
func (r *SQLRepository) Create(ctx context.Context, task string) (*Todo, error) {
	t := &Todo{ID: uuid.NewString(), Task: task}

	query := "INSERT INTO todos (id, task, completed, created_at) VALUES (?, ?, ?, ?)"
	if _, err := r.DB.ExecContext(ctx, query, t.ID, t.Task, t.Completed, time.Now().UnixNano()); err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}
	return t, nil
}

// Complete は指定IDのTodoを完了状態にします。
// MySQLは値が変わらない行をRowsAffectedに数えないため、
// 同一トランザクション内で再取得して存在を判定します。
func (r *SQLRepository) Complete(ctx context.Context, id string) (*Todo, error) {
	var updated *Todo
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE todos SET completed = ? WHERE id = ?", true, id); err != nil {
			log.Printf("Failed to update todo: %v", err)
			return fmt.Errorf("could not update todo: %w", err)
		}
		t, err := findByID(ctx, tx, id, false)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDのTodoを削除し、削除されたTodoを返します。
func (r *SQLRepository) Delete(ctx context.Context, id string) (*Todo, error) {
	var deleted *Todo
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		t, err := findByID(ctx, tx, id, r.Dialect == "mysql")
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
		if err != nil {
			log.Printf("Failed to delete todo: %v", err)
			return fmt.Errorf("could not delete todo: %w", err)
		}

		// 並行する削除に先を越された場合は見つからない扱い
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrTodoNotFound
		}

		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Ping はデータベース接続を確認します。
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *SQLRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// findByID は指定IDのTodoを取得します。forUpdate が真なら行ロックを取ります (MySQLのみ)。
func findByID(ctx context.Context, tx *sql.Tx, id string, forUpdate bool) (*Todo, error) {
	query := "SELECT id, task, completed FROM todos WHERE id = ?"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var t Todo
	err := tx.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Task, &t.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return &t, nil
}
