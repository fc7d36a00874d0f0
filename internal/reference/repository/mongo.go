package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"orderdesk/internal/domain"
)

const (
	retailersCollection = "retailers"
	productsCollection  = "products"
)

type retailerDocument struct {
	Name     string `bson:"name"`
	Address  string `bson:"address"`
	Address2 string `bson:"address2"`
	Mobile   string `bson:"mobile"`
}

type productDocument struct {
	Name string `bson:"name"`
}

type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

func (r *MongoRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	cursor, err := r.db.Collection(retailersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("querying retailers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []retailerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding retailers: %w", err)
	}

	retailers := make([]domain.Retailer, len(docs))
	for i, d := range docs {
		retailers[i] = domain.Retailer{Name: d.Name, Address: d.Address, Address2: d.Address2, Mobile: d.Mobile}
	}
	return retailers, nil
}

func (r *MongoRepository) ListProducts(ctx context.Context) ([]string, error) {
	cursor, err := r.db.Collection(productsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]string, len(docs))
	for i, d := range docs {
		products[i] = d.Name
	}
	return products, nil
}

func (r *MongoRepository) ReplaceRetailers(ctx context.Context, retailers []domain.Retailer) error {
	// A repeated name keeps its last row, matching the unique key the SQL store uses.
	docs := make([]interface{}, 0, len(retailers))
	index := make(map[string]int, len(retailers))
	for _, rt := range retailers {
		s := rt.Snapshot()
		doc := retailerDocument{Name: s.Name, Address: s.Address, Address2: s.Address2, Mobile: s.Mobile}
		if i, ok := index[s.Name]; ok {
			docs[i] = doc
			continue
		}
		index[s.Name] = len(docs)
		docs = append(docs, doc)
	}
	return r.replace(ctx, retailersCollection, docs)
}

func (r *MongoRepository) ReplaceProducts(ctx context.Context, products []string) error {
	docs := make([]interface{}, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, name := range products {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		docs = append(docs, productDocument{Name: name})
	}
	return r.replace(ctx, productsCollection, docs)
}

func (r *MongoRepository) replace(ctx context.Context, collection string, docs []interface{}) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll := r.db.Collection(collection)
		if _, err := coll.DeleteMany(sc, bson.M{}); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", collection, err)
		}
		if len(docs) == 0 {
			return nil, nil
		}
		if _, err := coll.InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("inserting %s: %w", collection, err)
		}
		return nil, nil
	})
	return err
}
