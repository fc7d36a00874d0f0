package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

const (
	ordersCollection   = "orders"
	countersCollection = "counters"

	orderSequence  = "order_id"
	recordSequence = "record_id"
)

type orderDocument struct {
	ID           int64     `bson:"_id"`
	OrderID      int64     `bson:"order_id"`
	LineNo       int       `bson:"line_no"`
	OrderDate    string    `bson:"order_date"`
	OrderTime    string    `bson:"order_time"`
	CreatedAt    time.Time `bson:"created_at"`
	Employee     string    `bson:"employee"`
	Retailer     string    `bson:"retailer"`
	Address      string    `bson:"address"`
	Address2     string    `bson:"address2"`
	Mobile       string    `bson:"mobile"`
	Product      string    `bson:"product"`
	Quantity     int       `bson:"quantity"`
	Unit         string    `bson:"unit"`
	SpecialPrice string    `bson:"special_price"`
	Remarks      string    `bson:"remarks"`
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// MongoOrderRepository stores one document per line. Ids come from the
// counters collection; writes run in a session transaction, which needs a
// replica set.
type MongoOrderRepository struct {
	db *mongo.Database
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{db: db}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order domain.Order) (uint64, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return 0, fmt.Errorf("starting session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		orderID, err := r.next(sc, orderSequence, 1)
		if err != nil {
			return nil, err
		}
		order.ID = uint64(orderID)

		records := order.Records()
		lastRecord, err := r.next(sc, recordSequence, int64(len(records)))
		if err != nil {
			return nil, err
		}
		firstRecord := lastRecord - int64(len(records)) + 1

		docs := make([]interface{}, len(records))
		for i, rec := range records {
			docs[i] = orderDocument{
				ID:           firstRecord + int64(i),
				OrderID:      orderID,
				LineNo:       rec.LineNo,
				OrderDate:    rec.Day(),
				OrderTime:    rec.CreatedAt.Format("15:04:05"),
				CreatedAt:    rec.CreatedAt,
				Employee:     rec.Employee,
				Retailer:     rec.Retailer.Name,
				Address:      rec.Retailer.Address,
				Address2:     rec.Retailer.Address2,
				Mobile:       rec.Retailer.Mobile,
				Product:      rec.Line.Product,
				Quantity:     rec.Line.Quantity,
				Unit:         rec.Line.Unit,
				SpecialPrice: rec.Line.SpecialPrice,
				Remarks:      rec.Remarks,
			}
		}

		if _, err := r.db.Collection(ordersCollection).InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("inserting order lines: %w", err)
		}
		return order.ID, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(uint64), nil
}

// next advances the named sequence by n and returns its new value.
func (r *MongoOrderRepository) next(ctx context.Context, name string, n int64) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter counterDocument
	err := r.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"value": n}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("advancing %s sequence: %w", name, err)
	}
	return counter.Value, nil
}

func (r *MongoOrderRepository) FindByDay(ctx context.Context, day time.Time) ([]domain.OrderRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "order_id", Value: -1},
		{Key: "line_no", Value: 1},
	})

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, bson.M{"order_date": day.Format(domain.DayLayout)}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying orders by day: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}

	records := make([]domain.OrderRecord, len(docs))
	for i, d := range docs {
		records[i] = domain.OrderRecord{
			ID:       uint64(d.ID),
			OrderID:  uint64(d.OrderID),
			LineNo:   d.LineNo,
			Employee: d.Employee,
			Retailer: domain.Retailer{
				Name:     d.Retailer,
				Address:  d.Address,
				Address2: d.Address2,
				Mobile:   d.Mobile,
			},
			Line: domain.OrderLine{
				Product:      d.Product,
				Quantity:     d.Quantity,
				Unit:         d.Unit,
				SpecialPrice: d.SpecialPrice,
			},
			Remarks:   d.Remarks,
			CreatedAt: d.CreatedAt.In(day.Location()),
		}
	}
	return records, nil
}

func (r *MongoOrderRepository) DeleteOrder(ctx context.Context, orderID uint64) error {
	return r.delete(ctx, bson.M{"order_id": int64(orderID)}, orderID, "order")
}

func (r *MongoOrderRepository) DeleteRecord(ctx context.Context, recordID uint64) error {
	return r.delete(ctx, bson.M{"_id": int64(recordID)}, recordID, "order record")
}

func (r *MongoOrderRepository) delete(ctx context.Context, filter bson.M, id uint64, kind string) error {
	result, err := r.db.Collection(ordersCollection).DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}
	if result.DeletedCount == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", kind, id))
	}
	return nil
}
