// Package todo はTodoレコードとその永続化を提供します。
package todo

import (
	"context"
	"errors"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// Repository はTodoストアに対する操作を定義します。
// 各操作はストア側で1ドキュメント単位にアトミックであることを前提とします。
type Repository interface {
	// FindAll はすべてのTodoをストアの順序で返します。
	FindAll(ctx context.Context) ([]*Todo, error)
	// Create は completed=false のTodoを保存し、採番されたIDとともに返します。
	Create(ctx context.Context, task string) (*Todo, error)
	// Complete は completed=true に更新し、更新後のTodoを返します。
	Complete(ctx context.Context, id string) (*Todo, error)
	// Delete はTodoを削除し、削除されたTodoを返します。
	Delete(ctx context.Context, id string) (*Todo, error)
	// Ping はストアへの接続を確認します。
	Ping(ctx context.Context) error
}
