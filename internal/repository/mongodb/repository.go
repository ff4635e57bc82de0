package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/repository"
)

const (
	farmlandsColl    = "farmlands"
	employeesColl    = "employees"
	transactionsColl = "transactions"
	cropsColl        = "crops"
	tasksColl        = "tasks"
	usersColl        = "users"
	snapshotsColl    = "summary_snapshots"
)

var _ repository.Store = (*Store)(nil)

// Store implements every entity repository on top of a single MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// NewStore connects to MongoDB, verifies the connection and prepares indexes.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := newStore(client.Database(dbName))
	store.client = client
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newStore(db *mongo.Database) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureIndexes creates the indexes the owner-scoped queries rely on. It is safe to call repeatedly.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ownerIndex := mongo.IndexModel{Keys: bson.D{{Key: "ownerId", Value: 1}}}
	indexes := map[string][]mongo.IndexModel{
		usersColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		farmlandsColl:    {ownerIndex},
		employeesColl:    {ownerIndex},
		tasksColl:        {{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "dueDate", Value: 1}}}},
		transactionsColl: {{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}}}},
		snapshotsColl:    {{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "takenAt", Value: -1}}}},
	}
	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// searchPattern matches search as a case-insensitive substring, never as a regex.
func searchPattern(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func searchAny(search string, fields ...string) bson.A {
	clauses := make(bson.A, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: searchPattern(search)})
	}
	return clauses
}

func (s *Store) find(ctx context.Context, coll string, filter any, out any, opts ...*options.FindOptions) error {
	cursor, err := s.db.Collection(coll).Find(ctx, filter, opts...)
	if err != nil {
		return fmt.Errorf("find %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll, err)
	}
	return nil
}

// findOne decodes one document; found is false when nothing matched.
func (s *Store) findOne(ctx context.Context, coll string, filter any, out any) (bool, error) {
	err := s.db.Collection(coll).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find one in %s: %w", coll, err)
	}
	return true, nil
}

// update applies $set (always including updatedAt) and $unset, returning the
// updated document in out. found is false when nothing matched.
func (s *Store) update(ctx context.Context, coll string, filter bson.M, set, unset bson.M, out any) (bool, error) {
	set["updatedAt"] = s.now()
	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.db.Collection(coll).FindOneAndUpdate(ctx, filter, doc, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update %s: %w", coll, err)
	}
	return true, nil
}

func (s *Store) deleteOwned(ctx context.Context, coll string, ownerID, id primitive.ObjectID) (bool, error) {
	result, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", coll, err)
	}
	return result.DeletedCount > 0, nil
}

func (s *Store) insert(ctx context.Context, coll string, doc any) error {
	if _, err := s.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", coll, err)
	}
	return nil
}

func (s *Store) stamp(id *primitive.ObjectID, createdAt, updatedAt *time.Time) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func ownedBy(ownerID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "ownerId": ownerID}
}
