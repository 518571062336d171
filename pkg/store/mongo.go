package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mazegen/pkg/buildinfo"
	mazeio "github.com/matzehuels/mazegen/pkg/io"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// MongoStore persists records in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoStore connects to uri and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName(buildinfo.UserAgent()))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		timeout:    2 * time.Second,
	}, nil
}

// document is the BSON shape of a record. The seed is stored as a decimal
// string because BSON has no unsigned 64-bit integer.
type document struct {
	ID        string    `bson:"_id"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	Algorithm string    `bson:"algorithm"`
	Seed      string    `bson:"seed"`
	Walls     string    `bson:"walls"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toDocument(r *Record) document {
	return document{
		ID:        r.ID.String(),
		Width:     r.Width,
		Height:    r.Height,
		Algorithm: r.Algorithm.String(),
		Seed:      strconv.FormatUint(r.Seed, 10),
		Walls:     mazeio.EncodeWalls(r.Walls),
		CreatedAt: r.CreatedAt,
	}
}

func (d document) record() (*Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("record id: %w", err)
	}
	alg, err := maze.ParseAlgorithm(d.Algorithm)
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(d.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("record seed: %w", err)
	}
	walls, err := mazeio.DecodeWalls(d.Walls)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        id,
		Width:     d.Width,
		Height:    d.Height,
		Algorithm: alg,
		Seed:      seed,
		Walls:     walls,
		CreatedAt: d.CreatedAt,
	}, nil
}

// Save upserts the record by ID.
func (s *MongoStore) Save(ctx context.Context, r *Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prepare(r)
	doc := toDocument(r)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("save maze %s: %w", doc.ID, err)
	}
	return nil
}

// ByID retrieves a record by its ID.
func (s *MongoStore) ByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc document
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find maze %s: %w", id, err)
	}
	return doc.record()
}

// List returns up to limit records, newest first. A limit of zero or less
// returns all records.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list mazes: %w", err)
	}
	defer cur.Close(ctx)

	var out []Record
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode maze: %w", err)
		}
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, cur.Err()
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
