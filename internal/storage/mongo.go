package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"hackreg/internal/models"
)

// MongoStore maps each operation onto one collection call. Unique indexes on
// email and rollNumber close the check-then-insert race that two sequential
// lookups alone would leave open.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	col := client.Database(database).Collection(collection)
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rollNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	return &MongoStore{client: client, col: col}, nil
}

func (m *MongoStore) List(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var students []models.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return students, nil
}

func (m *MongoStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *MongoStore) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	return m.findOne(ctx, bson.M{"rollNumber": rollNumber})
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Student, error) {
	var s models.Student
	err := m.col.FindOne(ctx, filter).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find one: %w", err)
	}
	return &s, nil
}

func (m *MongoStore) Insert(ctx context.Context, student *models.Student) error {
	_, err := m.col.InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (m *MongoStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoStore) DeleteByID(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := m.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo count: %w", err)
	}
	return int(n), nil
}

func (m *MongoStore) CountByField(ctx context.Context, field string) (map[string]int, error) {
	if field != "department" && field != "year" {
		return nil, fmt.Errorf("unsupported group field %q", field)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo aggregate: %w", err)
	}
	var groups []struct {
		Value string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("mongo decode groups: %w", err)
	}
	counts := map[string]int{}
	for _, g := range groups {
		counts[g.Value] = g.Count
	}
	return counts, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
