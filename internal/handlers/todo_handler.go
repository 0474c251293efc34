// Package handlers はHTTPハンドラーを提供します。
package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-mongo-todo/backend/internal/services"
	"go-mongo-todo/backend/internal/todo"
)

// createTodoRequest はPOST /todos のリクエストボディです。
// task の欠落と空文字を区別せずに検出するためポインタで受けます。
type createTodoRequest struct {
	Task *string `json:"task"`
}

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// GetTodosHandler はTodoリストを取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.List(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task := ""
	if req.Task != nil {
		task = *req.Task
	}

	createdTodo, err := h.todoService.Create(c.Request.Context(), task)
	if err != nil {
		if errors.Is(err, services.ErrTaskRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Task is required"})
			return
		}
		log.Printf("Error saving todo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// CompleteTodoHandler はTodoを完了状態に更新します。
func (h *TodoHandler) CompleteTodoHandler(c *gin.Context) {
	updatedTodo, err := h.todoService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "updating", err)
		return
	}
	c.JSON(http.StatusOK, updatedTodo)
}

// DeleteTodoHandler はTodoを削除し、削除されたTodoを返します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	deletedTodo, err := h.todoService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "deleting", err)
		return
	}
	c.JSON(http.StatusOK, deletedTodo)
}

// DBCheckHandler はストア接続の健全性を確認します。
func (h *TodoHandler) DBCheckHandler(c *gin.Context) {
	if err := h.todoService.Ping(c.Request.Context()); err != nil {
		log.Printf("DB Ping failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
}

func (h *TodoHandler) respondError(c *gin.Context, action string, err error) {
	if errors.Is(err, todo.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	log.Printf("Error %s todo: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
