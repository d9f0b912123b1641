package table

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTable struct {
	coll *mongo.Collection
}

// NewMongoTable returns a Table backed by a single MongoDB collection.
func NewMongoTable(client *mongo.Client, database, collection string) Table {
	return &mongoTable{coll: client.Database(database).Collection(collection)}
}

// EnsureIndexes creates the composite primary key index, the secondary
// index for reverse lookups and the TTL index driving automatic record
// expiry.
func EnsureIndexes(ctx context.Context, client *mongo.Client, database, collection string) error {
	coll := client.Database(database).Collection(collection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pk", Value: 1}, {Key: "sk", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "gsi1pk", Value: 1}, {Key: "gsi1sk", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetSparse(true),
		},
	})
	return err
}

func (t *mongoTable) Get(ctx context.Context, key Key, out any) error {
	err := t.coll.FindOne(ctx, bson.M{"pk": key.PK, "sk": key.SK}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrItemNotFound
	}
	return err
}

func (t *mongoTable) Put(ctx context.Context, doc any) error {
	key, err := keyOf(doc)
	if err != nil {
		return err
	}
	_, err = t.coll.ReplaceOne(ctx,
		bson.M{"pk": key.PK, "sk": key.SK},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (t *mongoTable) Delete(ctx context.Context, key Key) error {
	_, err := t.coll.DeleteOne(ctx, bson.M{"pk": key.PK, "sk": key.SK})
	return err
}

func (t *mongoTable) Query(ctx context.Context, pk string, out any) error {
	return t.find(ctx, bson.M{"pk": pk}, 0, out)
}

func (t *mongoTable) QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error {
	filter := bson.M{
		"pk": pk,
		"sk": bson.M{"$regex": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(skPrefix)}},
	}
	return t.find(ctx, filter, 0, out)
}

func (t *mongoTable) QueryIndex(ctx context.Context, gsi1pk string, limit int64, out any) error {
	return t.find(ctx, bson.M{"gsi1pk": gsi1pk}, limit, out)
}

func (t *mongoTable) BatchWrite(ctx context.Context, puts []any, deletes []Key) error {
	ops := make([]mongo.WriteModel, 0, len(puts)+len(deletes))
	for _, doc := range puts {
		key, err := keyOf(doc)
		if err != nil {
			return err
		}
		ops = append(ops, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"pk": key.PK, "sk": key.SK}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	for _, key := range deletes {
		ops = append(ops, mongo.NewDeleteOneModel().
			SetFilter(bson.M{"pk": key.PK, "sk": key.SK}))
	}
	for _, batch := range chunk(ops, MaxBatchOps) {
		if _, err := t.coll.BulkWrite(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

func (t *mongoTable) find(ctx context.Context, filter bson.M, limit int64, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: "sk", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := t.coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// keyOf extracts the composite key from a document's bson fields.
func keyOf(doc any) (Key, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return Key{}, fmt.Errorf("failed to marshal record: %w", err)
	}
	var key Key
	if err := bson.Unmarshal(raw, &key); err != nil {
		return Key{}, fmt.Errorf("failed to read record key: %w", err)
	}
	if key.PK == "" || key.SK == "" {
		return Key{}, fmt.Errorf("record is missing pk/sk fields")
	}
	return key, nil
}
