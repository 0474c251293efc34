package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-mongo-todo/backend/internal/config"
	"go-mongo-todo/backend/internal/database"
	"go-mongo-todo/backend/internal/routes"
	"go-mongo-todo/backend/internal/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. ストアに接続 (失敗してもログを出して起動を続ける)
	todoRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	defer closeStore()

	// 2. リッスン
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes.SetupRouter(todoRepo, cfg),
	}

	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

// openStore は設定されたドライバでRepositoryを構築します。
// 接続確認の失敗は致命的ではなく、構築自体ができない場合のみエラーを返します。
func openStore(ctx context.Context, cfg *config.Config) (todo.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL, config.DriverSQLite:
		dsn := cfg.SQLitePath
		if cfg.StoreDriver == config.DriverMySQL {
			dsn = database.MySQLDSN(cfg)
		}
		db, err := database.OpenSQL(ctx, cfg.StoreDriver, dsn, cfg.ConnectTimeout)
		if db == nil {
			return nil, nil, err
		}
		repo := todo.NewSQLRepository(db, cfg.StoreDriver)
		if err == nil {
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Printf("Failed to ensure schema: %v", err)
			}
		}
		return repo, func() { db.Close() }, nil

	default:
		client, err := database.OpenMongo(ctx, cfg)
		if client == nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Printf("Failed to disconnect from MongoDB: %v", err)
			}
		}
		return todo.NewMongoRepository(coll), closeFn, nil
	}
}
