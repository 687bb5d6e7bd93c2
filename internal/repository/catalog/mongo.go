package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain"
)

// CollectionName is the MongoDB collection holding catalog documents.
const CollectionName = "items"

type mongoItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	StoreID         string             `bson:"storeID"`
	ItemName        string             `bson:"itemName"`
	ItemDescription string             `bson:"itemDescription"`
	ItemPrice       float64            `bson:"itemPrice"`
	CompareAtPrice  float64            `bson:"compareAtPrice"`
	CostPerItem     float64            `bson:"costPerItem"`
	Quantity        int                `bson:"quantity"`
	ItemImages      []string           `bson:"itemImages"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (m mongoItem) toDomain() domain.CatalogItem {
	images := m.ItemImages
	if images == nil {
		images = []string{}
	}
	return domain.CatalogItem{
		ID:              m.ID.Hex(),
		StoreID:         m.StoreID,
		ItemName:        m.ItemName,
		ItemDescription: m.ItemDescription,
		ItemPrice:       m.ItemPrice,
		CompareAtPrice:  m.CompareAtPrice,
		CostPerItem:     m.CostPerItem,
		Quantity:        m.Quantity,
		ItemImages:      images,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type mongoRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
	now    func() time.Time
}

func NewMongo(db *mongo.Database, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &mongoRepo{coll: db.Collection(CollectionName), logger: logger, now: time.Now}
}

func (r *mongoRepo) Insert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	// Mongo keeps millisecond precision; truncate so the returned item matches what is stored.
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := mongoItem{
		StoreID:         item.StoreID,
		ItemName:        item.ItemName,
		ItemDescription: item.ItemDescription,
		ItemPrice:       item.ItemPrice,
		CompareAtPrice:  item.CompareAtPrice,
		CostPerItem:     item.CostPerItem,
		Quantity:        item.Quantity,
		ItemImages:      item.ItemImages,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if doc.ItemImages == nil {
		doc.ItemImages = []string{}
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Printf("catalog repo: insert store_id=%s name=%q error=%v", item.StoreID, item.ItemName, err)
		return nil, err
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	out := doc.toDomain()
	r.logger.Printf("catalog repo: inserted store_id=%s id=%s images=%d", out.StoreID, out.ID, len(out.ItemImages))
	return &out, nil
}

func (r *mongoRepo) ListByStore(ctx context.Context, storeID string) ([]domain.CatalogItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"storeID": storeID}, opts)
	if err != nil {
		r.logger.Printf("catalog repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	var docs []mongoItem
	if err := cur.All(ctx, &docs); err != nil {
		r.logger.Printf("catalog repo: list decode store_id=%s error=%v", storeID, err)
		return nil, err
	}
	result := make([]domain.CatalogItem, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	r.logger.Printf("catalog repo: list store_id=%s count=%d", storeID, len(result))
	return result, nil
}

func (r *mongoRepo) GetByID(ctx context.Context, storeID, id string) (*domain.CatalogItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc mongoItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "storeID": storeID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Printf("catalog repo: get store_id=%s id=%s not found", storeID, id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *mongoRepo) Update(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	set := bson.M{
		"itemName":        item.ItemName,
		"itemDescription": item.ItemDescription,
		"itemPrice":       item.ItemPrice,
		"compareAtPrice":  item.CompareAtPrice,
		"costPerItem":     item.CostPerItem,
		"quantity":        item.Quantity,
		"updatedAt":       r.now().UTC().Truncate(time.Millisecond),
	}
	if item.ItemImages != nil {
		set["itemImages"] = item.ItemImages
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoItem
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "storeID": item.StoreID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Printf("catalog repo: update store_id=%s id=%s not found", item.StoreID, item.ID)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: update store_id=%s id=%s error=%v", item.StoreID, item.ID, err)
		return nil, err
	}
	out := doc.toDomain()
	r.logger.Printf("catalog repo: updated store_id=%s id=%s", out.StoreID, out.ID)
	return &out, nil
}

func (r *mongoRepo) DeleteMany(ctx context.Context, storeID string, ids []string) ([]string, error) {
	byHex := make(map[string]string, len(ids))
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, seen := byHex[oid.Hex()]; !seen {
			byHex[oid.Hex()] = id
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []string{}, nil
	}

	// DeleteMany only reports a count, so look up which ids exist first.
	// Not atomic: a concurrent delete between the two calls is reported as deleted.
	filter := bson.M{"storeID": storeID, "_id": bson.M{"$in": oids}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		r.logger.Printf("catalog repo: delete lookup store_id=%s error=%v", storeID, err)
		return nil, err
	}
	var found []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return []string{}, nil
	}

	matched := make([]primitive.ObjectID, 0, len(found))
	deleted := make([]string, 0, len(found))
	for _, f := range found {
		matched = append(matched, f.ID)
		deleted = append(deleted, byHex[f.ID.Hex()])
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"storeID": storeID, "_id": bson.M{"$in": matched}})
	if err != nil {
		r.logger.Printf("catalog repo: delete store_id=%s ids=%d error=%v", storeID, len(matched), err)
		return nil, err
	}
	r.logger.Printf("catalog repo: delete store_id=%s requested=%d deleted=%d", storeID, len(ids), res.DeletedCount)
	return deleted, nil
}

// EnsureMongoIndexes creates the store listing index used by ListByStore.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "storeID", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
