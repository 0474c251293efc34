package todo

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// todoDocument はコレクションに保存されるドキュメントの形です。
type todoDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Task      string             `bson:"task"`
	Completed bool               `bson:"completed"`
}

func (d *todoDocument) toTodo() *Todo {
	return &Todo{ID: d.ID.Hex(), Task: d.Task, Completed: d.Completed}
}

// MongoRepository はMongoDBのコレクションをストアとするRepositoryです。
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository は新しいMongoRepositoryインスタンスを作成します。
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{Collection: coll}
}

// FindAll はすべてのTodoを自然順序で取得します。
func (r *MongoRepository) FindAll(ctx context.Context) ([]*Todo, error) {
	cursor, err := r.Collection.Find(ctx, bson.D{})
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("Failed to decode todos: %v", err)
		return nil, fmt.Errorf("could not decode todos: %w", err)
	}

	todos := make([]*Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, docs[i].toTodo())
	}
	return todos, nil
}

// Create は新しいTodoドキュメントを挿入します。
func (r *MongoRepository) Create(ctx context.Context, task string) (*Todo, error) {
	doc := todoDocument{ID: primitive.NewObjectID(), Task: task}
	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}
	return doc.toTodo(), nil
}

// Complete は指定IDのTodoを完了状態にし、更新後のドキュメントを返します。
func (r *MongoRepository) Complete(ctx context.Context, id string) (*Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// ObjectIDとして不正なIDは存在し得ない
		return nil, ErrTodoNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"completed": true}}

	var doc todoDocument
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to update todo: %v", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}
	return doc.toTodo(), nil
}

// Delete は指定IDのTodoを削除し、削除前のドキュメントを返します。
func (r *MongoRepository) Delete(ctx context.Context, id string) (*Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	var doc todoDocument
	err = r.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to delete todo: %v", err)
		return nil, fmt.Errorf("could not delete todo: %w", err)
	}
	return doc.toTodo(), nil
}

// Ping はプライマリへの疎通を確認します。
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.Collection.Database().Client().Ping(ctx, readpref.Primary())
}
