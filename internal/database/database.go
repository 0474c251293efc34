// Package database はストアへの接続を初期化します。
//
// 接続は「接続してからリッスン、失敗しても縮退して起動」の二段階で行います。
// Ping に失敗してもハンドルは返すため、サーバーは起動し、
// ストアにアクセスするリクエストが500で失敗します。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go-mongo-todo/backend/internal/config"
)

// MySQLDSN は設定からMySQL接続文字列 (DSN) を構築します。
func MySQLDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// OpenMongo はMongoDBクライアントを作成し、疎通を確認します。
// 返されるエラーが非nilでも client が非nilなら縮退運転が可能です。
func OpenMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		// URIが不正な場合など、クライアント自体を作れない
		return nil, fmt.Errorf("could not create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Printf("Failed to connect to MongoDB: %v", err)
		return client, fmt.Errorf("could not ping mongo: %w", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

// OpenSQL はSQLデータベース接続を初期化します。
// OpenMongo と同様に、Ping失敗時もハンドルを返します。
func OpenSQL(ctx context.Context, driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open %s connection: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// SQLiteは書き込みが直列化されるため接続を1本に絞る
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Printf("Failed to ping %s database: %v", driver, err)
		return db, fmt.Errorf("could not ping %s: %w", driver, err)
	}

	log.Printf("Successfully connected to %s database!", driver)
	return db, nil
}
