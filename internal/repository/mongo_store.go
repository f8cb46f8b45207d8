package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// MongoStore is the MongoDB-backed DocumentStore, the primary backend.
// BSON-native values are converted to plain JSON-friendly shapes on read,
// so ObjectID identifiers always cross the boundary as hex strings.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *MongoStore) FindAll(ctx context.Context, collection string) ([]domain.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	out := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, sanitizeDocument(m))
	}
	return out, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter domain.Document) (domain.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, mongoFilter(filter)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return sanitizeDocument(raw), nil
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	insert := make(bson.M, len(doc))
	for k, v := range doc {
		insert[k] = v
	}
	// Restored documents carry their previous identifier as a hex string;
	// converting it back keeps lookups by ObjectID working.
	if id, ok := insert["_id"].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			insert["_id"] = oid
		}
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, insert)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (s *MongoStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongoFilter rewrites a string "_id" filter to an ObjectID when the
// value parses as one; documents inserted with string identifiers keep
// matching through the string form.
func mongoFilter(filter domain.Document) bson.M {
	out := make(bson.M, len(filter))
	for k, v := range filter {
		out[k] = v
	}
	if id, ok := out["_id"].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out["_id"] = oid
		}
	}
	return out
}

// sanitizeDocument converts a decoded BSON document into the plain shapes
// the rest of the service works with.
func sanitizeDocument(m bson.M) domain.Document {
	out := make(domain.Document, len(m))
	for k, v := range m {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch tv := v.(type) {
	case primitive.ObjectID:
		return tv.Hex()
	case primitive.DateTime:
		return tv.Time().UTC().Format(time.RFC3339)
	case primitive.M:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = sanitizeValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = sanitizeValue(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(tv))
		for _, e := range tv {
			out[e.Key] = sanitizeValue(e.Value)
		}
		return out
	case primitive.A:
		arr := make([]any, len(tv))
		for i, e := range tv {
			arr[i] = sanitizeValue(e)
		}
		return arr
	case []any:
		arr := make([]any, len(tv))
		for i, e := range tv {
			arr[i] = sanitizeValue(e)
		}
		return arr
	default:
		return v
	}
}
