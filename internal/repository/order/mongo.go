package order

import (
	"context"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/domain"
)

// CollectionName is the MongoDB collection orders are written to.
const CollectionName = "orders"

type mongoCartItem struct {
	Title    string  `bson:"title"`
	Image    string  `bson:"image"`
	Price    float64 `bson:"price"`
	Quantity int     `bson:"quantity"`
	StoreID  string  `bson:"storeID,omitempty"`
}

type mongoOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Address       string             `bson:"address"`
	City          string             `bson:"city"`
	Phone         string             `bson:"phone"`
	UID           string             `bson:"uid,omitempty"`
	ProofImage    string             `bson:"proofImage,omitempty"`
	CartItems     []mongoCartItem    `bson:"cartItems"`
	Total         float64            `bson:"total"`
	PaymentMethod string             `bson:"paymentMethod"`
	Date          time.Time          `bson:"date"`
}

func toMongoOrder(o domain.Order) mongoOrder {
	items := make([]mongoCartItem, 0, len(o.CartItems))
	for _, it := range o.CartItems {
		items = append(items, mongoCartItem(it))
	}
	return mongoOrder{
		Email:         o.Email,
		FirstName:     o.FirstName,
		LastName:      o.LastName,
		Address:       o.Address,
		City:          o.City,
		Phone:         o.Phone,
		UID:           o.UID,
		ProofImage:    o.ProofImage,
		CartItems:     items,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		Date:          o.Date,
	}
}

type mongoRepo struct {
	coll   *mongo.Collection
	logger *log.Logger
}

func NewMongo(db *mongo.Database, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &mongoRepo{coll: db.Collection(CollectionName), logger: logger}
}

func (r *mongoRepo) Insert(ctx context.Context, order domain.Order) (string, error) {
	res, err := r.coll.InsertOne(ctx, toMongoOrder(order))
	if err != nil {
		r.logger.Printf("order repo: insert email=%s items=%d error=%v", order.Email, len(order.CartItems), err)
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	r.logger.Printf("order repo: inserted id=%s items=%d total=%.2f", oid.Hex(), len(order.CartItems), order.Total)
	return oid.Hex(), nil
}
