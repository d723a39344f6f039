package mongodb

import (
	"context"
	"strings"

	"animal-shelter/internal/domain/animals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnimalsRepo implementa animals.Repository sobre una colección de Mongo.
type AnimalsRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewAnimalsRepo(client *mongo.Client, database, collection string) *AnimalsRepo {
	if strings.TrimSpace(database) == "" {
		database = DefaultDatabase
	}
	if strings.TrimSpace(collection) == "" {
		collection = DefaultCollection
	}
	return &AnimalsRepo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (r *AnimalsRepo) Insert(ctx context.Context, rec animals.Record) error {
	_, err := r.coll.InsertOne(ctx, bson.M(rec))
	return err
}

func (r *AnimalsRepo) Find(ctx context.Context, filter animals.Filter) (animals.Cursor, error) {
	opts := options.Find().SetProjection(bson.M{animals.FieldID: 0})

	cur, err := r.coll.Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, err
	}
	return &cursor{cur: cur}, nil
}

func (r *AnimalsRepo) UpdateMany(ctx context.Context, filter animals.Filter, changes animals.Changes) (animals.UpdateResult, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M(filter), bson.M(changes))
	if err != nil {
		return animals.UpdateResult{}, err
	}
	return animals.UpdateResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}, nil
}

func (r *AnimalsRepo) DeleteMany(ctx context.Context, filter animals.Filter) (animals.DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M(filter))
	if err != nil {
		return animals.DeleteResult{}, err
	}
	return animals.DeleteResult{Deleted: res.DeletedCount}, nil
}

func (r *AnimalsRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// cursor adapta *mongo.Cursor: decodifica cada documento a bson.M y lo normaliza.
type cursor struct {
	cur *mongo.Cursor
	rec animals.Record
	err error
}

func (c *cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if !c.cur.Next(ctx) {
		c.rec = nil
		return false
	}

	var m bson.M
	if err := c.cur.Decode(&m); err != nil {
		c.err = err
		c.rec = nil
		return false
	}
	c.rec = animals.Record(normalizeDoc(m))
	return true
}

func (c *cursor) Record() animals.Record { return c.rec }

func (c *cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.cur.Err()
}

func (c *cursor) Close(ctx context.Context) error {
	return c.cur.Close(ctx)
}

// normalizeDoc convierte tipos BSON a tipos Go planos (JSON-friendly) para el resto del sistema.
func normalizeDoc(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalizeDoc(t)
	case bson.D:
		return normalizeDoc(t.Map())
	case bson.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}
