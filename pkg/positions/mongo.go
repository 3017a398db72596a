package positions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/rosview/pkg/graph"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "rosview"
	DefaultMongoCollection = "layouts"
)

// MongoStore keeps one document per scope:
//
//	{_id: <scope>, nodes: [{name, x, y}], updated_at}
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoNode struct {
	Name string  `bson:"name"`
	X    float64 `bson:"x"`
	Y    float64 `bson:"y"`
}

type mongoLayout struct {
	Scope     string      `bson:"_id"`
	Nodes     []mongoNode `bson:"nodes"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses the default database and collection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStoreFromClient(client, DefaultMongoDatabase, DefaultMongoCollection), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
}

func (s *MongoStore) Load(ctx context.Context, scope string) (Layout, error) {
	var doc mongoLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": scope}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	l := make(Layout, len(doc.Nodes))
	for _, n := range doc.Nodes {
		l[n.Name] = graph.Point{X: n.X, Y: n.Y}
	}
	return l, nil
}

func (s *MongoStore) Save(ctx context.Context, scope string, l Layout) error {
	doc := mongoLayout{Scope: scope, UpdatedAt: time.Now().UTC()}
	for name, p := range l {
		doc.Nodes = append(doc.Nodes, mongoNode{Name: name, X: p.X, Y: p.Y})
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": scope}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, scope string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": scope})
	return err
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
