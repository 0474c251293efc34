package services

import (
	"context"
	"errors"

	"go-mongo-todo/backend/internal/todo"
)

// ErrTaskRequired はタスク内容が空の場合のエラーです。
var ErrTaskRequired = errors.New("task is required")

// TodoService はTodo関連のビジネスロジックを扱います。
// リクエスト間で状態を持たず、リポジトリのみを保持します。
type TodoService struct {
	todoRepo todo.Repository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo todo.Repository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// List はすべてのTodoを取得します。
func (s *TodoService) List(ctx context.Context) ([]*todo.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// Create は新しいTodoを作成します。空のタスクはストアに渡しません。
func (s *TodoService) Create(ctx context.Context, task string) (*todo.Todo, error) {
	if task == "" {
		return nil, ErrTaskRequired
	}
	return s.todoRepo.Create(ctx, task)
}

// Complete はTodoを完了状態にします。
func (s *TodoService) Complete(ctx context.Context, id string) (*todo.Todo, error) {
	return s.todoRepo.Complete(ctx, id)
}

// Delete はTodoを削除し、削除されたTodoを返します。
func (s *TodoService) Delete(ctx context.Context, id string) (*todo.Todo, error) {
	return s.todoRepo.Delete(ctx, id)
}

// Ping はストアの疎通を確認します。
func (s *TodoService) Ping(ctx context.Context) error {
	return s.todoRepo.Ping(ctx)
}
