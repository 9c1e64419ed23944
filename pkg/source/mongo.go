package source

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

// MongoConfig is the env surface for the Mongo collaborator.
type MongoConfig struct {
	ConnectionURL  string        `env:"MONGODB_URL,required"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectMongo establishes a client with retries and returns the named
// database.
func ConnectMongo(ctx context.Context, cfg MongoConfig, database string) (*mongo.Database, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client.Database(database), nil
			}
		}
		time.Sleep(cfg.RetryInterval)
	}
	return nil, ErrFailedToConnectMongo
}

// MongoSource fetches raw record batches from one collection.
type MongoSource struct {
	coll *mongo.Collection
}

// NewMongoSource wraps a collection handle.
func NewMongoSource(coll *mongo.Collection) *MongoSource {
	return &MongoSource{coll: coll}
}

// Fetch runs the filter and decodes every document into a raw record.
func (s *MongoSource) Fetch(ctx context.Context, filter any) ([]rawrecord.Record, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var recs []rawrecord.Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		rec, err := RecordFromBSON(doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate cursor: %w", err)
	}
	return recs, nil
}

// RecordFromBSON classifies one decoded document into a raw record,
// mapping the BSON-specific scalar types onto the closed primitive set.
// Nested documents and arrays are outside the flat record contract and
// fail classification.
func RecordFromBSON(doc bson.M) (rawrecord.Record, error) {
	m := make(map[string]any, len(doc))
	for name, v := range doc {
		switch bv := v.(type) {
		case bson.ObjectID:
			m[name] = bv.Hex()
		case bson.DateTime:
			m[name] = bv.Time()
		case bson.Null:
			m[name] = nil
		default:
			m[name] = v
		}
	}
	return rawrecord.FromMap(m)
}
