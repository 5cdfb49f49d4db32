package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/domain"
)

const opTimeout = 5 * time.Second

type ContactRepo struct {
	col *mongo.Collection
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{col: db.Collection("contacts")}
}

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	Message   string             `bson:"message,omitempty"`
	Tags      []string           `bson:"tags,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *contactDoc) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Message:   d.Message,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ContactRepo) Get(email string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var d contactDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *ContactRepo) Upsert(email string, f domain.UpsertFields) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"email": email, "updated_at": now}
	if f.Name != nil {
		set["name"] = *f.Name
	}
	if f.Message != nil {
		set["message"] = *f.Message
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	if len(f.Tags) > 0 {
		update["$addToSet"] = bson.M{"tags": bson.M{"$each": f.Tags}}
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var d contactDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}
