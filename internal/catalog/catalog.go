// Package catalog reads and writes the anime/manga catalog of record,
// which lives in MongoDB.  Documents carry arbitrary metadata; only the
// identifier is ever copied into MySQL (see the reference tables), so the
// store returns raw documents rather than a fixed struct.
package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps a single catalog collection (animes or mangas).
type Store struct {
	coll *mongo.Collection
}

// NewStore returns a Store bound to the given collection.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// All returns every document in the collection with _id rendered as a hex
// string, matching the identifier format the clients and the tracking
// tables use.  Catalog sizes are small enough that a full scan is fine.
func (s *Store) All(ctx context.Context) ([]bson.M, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]bson.M, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if oid, ok := doc["_id"].(primitive.ObjectID); ok {
			doc["_id"] = oid.Hex()
		}
		items = append(items, doc)
	}
	return items, cur.Err()
}

// IDs returns only the catalog identifiers, as hex strings.  This is what
// the sync job consumes: the relational side needs nothing but the key.
func (s *Store) IDs(ctx context.Context) ([]string, error) {
	proj := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

// Insert stores a new catalog document and returns its assigned id.  The
// document shape is deliberately open: admins upload whatever metadata the
// frontend collects.
func (s *Store) Insert(ctx context.Context, doc bson.M) (string, error) {
	delete(doc, "_id") // the store assigns identifiers
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}
