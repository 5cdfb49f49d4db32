package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/domain"
)

const opTimeout = 5 * time.Second

type WaitlistRepo struct {
	col *mongo.Collection
}

func NewWaitlistRepo(db *mongo.Database) *WaitlistRepo {
	return &WaitlistRepo{col: db.Collection("waitlist")}
}

func (r *WaitlistRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type entryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *WaitlistRepo) Add(email string) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	d := entryDoc{Email: email, CreatedAt: time.Now().UTC()}
	res, err := r.col.InsertOne(ctx, &d)
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return &domain.Entry{ID: d.ID.Hex(), Email: d.Email, CreatedAt: d.CreatedAt}, nil
}

func (r *WaitlistRepo) Emails() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"email": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []string
	for cur.Next(ctx) {
		var d entryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.Email)
	}
	return out, cur.Err()
}
