package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the domain invariants rely on:
// one credential per email, one role assignment per (user, business), one
// enrollment per (user, batch), and unique batch code names. Store-level
// uniqueness is what turns concurrent duplicate writes into exactly one
// success and one conflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{userCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{businessUserCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "business_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{batchCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "code_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{batchUserCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "batch_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// nextID returns the next value of a named integer sequence, backed by a
// counters collection. The identity model uses small integer ids with -1
// as the "no business" sentinel, so ObjectIDs are not an option.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	res := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return doc.Seq, nil
}
