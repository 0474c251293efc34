// Package routesはroutingを行います。
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-mongo-todo/backend/internal/config"
	"go-mongo-todo/backend/internal/handlers"
	"go-mongo-todo/backend/internal/services"
	"go-mongo-todo/backend/internal/todo"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(todoRepo todo.Repository, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS対策
	if len(cfg.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(corsConfig))
	}

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)
	staticHandler := handlers.NewStaticHandler(cfg.PublicDir)

	// ルーティング
	r.GET("/api/dbcheck", todoHandler.DBCheckHandler)
	r.GET("/todos", todoHandler.GetTodosHandler)
	r.HEAD("/todos", todoHandler.GetTodosHandler)
	r.POST("/todos", todoHandler.CreateTodoHandler)
	r.PUT("/todos/:id", todoHandler.CompleteTodoHandler)
	r.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)

	// 未知のパスはSPAのエントリドキュメントへ
	r.NoRoute(staticHandler.FallbackHandler)

	return r
}
