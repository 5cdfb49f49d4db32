package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
)

const opTimeout = 5 * time.Second

type AccountRepo struct {
	col *mongo.Collection
}

func NewAccountRepo(db *mongo.Database) *AccountRepo {
	return &AccountRepo{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index; call once at startup.
func (r *AccountRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// accountDoc mirrors the old Mongoose schema field for field.
type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Role         string             `bson:"role,omitempty"`
	Verified     bool               `bson:"verified"`

	VerificationCode    string    `bson:"verification_code,omitempty"`
	VerificationExpires time.Time `bson:"verification_expires,omitempty"`

	ResetCode    string    `bson:"reset_code,omitempty"`
	ResetExpires time.Time `bson:"reset_expires,omitempty"`

	TempName     string `bson:"temp_name,omitempty"`
	TempPassword string `bson:"temp_password,omitempty"`
	TempRole     string `bson:"temp_role,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:                  d.ID.Hex(),
		Email:               d.Email,
		Name:                d.Name,
		PasswordHash:        d.PasswordHash,
		Role:                domain.Role(d.Role),
		Verified:            d.Verified,
		VerificationCode:    d.VerificationCode,
		VerificationExpires: d.VerificationExpires,
		ResetCode:           d.ResetCode,
		ResetExpires:        d.ResetExpires,
		TempName:            d.TempName,
		TempPassword:        d.TempPassword,
		TempRole:            domain.Role(d.TempRole),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (r *AccountRepo) GetByEmail(email string) (*domain.Account, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var d accountDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *AccountRepo) ExistsByEmail(email string) (bool, error) {
	ctx, cancel := opCtx()
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AccountRepo) UpsertPendingSignup(email string, p domain.PendingSignup) (*domain.Account, error) {
	ctx, cancel := opCtx()
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"verification_code":    p.Code,
			"verification_expires": p.Expires,
			"temp_name":            p.Name,
			"temp_password":        p.Password,
			"temp_role":            string(p.Role),
			"verified":             false,
			"updated_at":           now,
		},
		"$setOnInsert": bson.M{
			"email":      email,
			"role":       string(domain.RoleStudent),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var d accountDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *AccountRepo) PromoteSignup(id string, promo domain.Promotion) error {
	ctx, cancel := opCtx()
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	update := bson.M{
		"$set": bson.M{
			"name":          promo.Name,
			"password_hash": promo.PasswordHash,
			"role":          string(promo.Role),
			"verified":      true,
			"updated_at":    time.Now().UTC(),
		},
		"$unset": bson.M{
			"verification_code":    "",
			"verification_expires": "",
			"temp_name":            "",
			"temp_password":        "",
			"temp_role":            "",
		},
	}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) SetResetCode(id, code string, expires time.Time) error {
	ctx, cancel := opCtx()
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"reset_code":    code,
		"reset_expires": expires,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) UpdatePassword(id, newHash string) error {
	ctx, cancel := opCtx()
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": newHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_code": "", "reset_expires": ""},
	}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) CreateAdmin(email, name, passwordHash string) (*domain.Account, error) {
	ctx, cancel := opCtx()
	defer cancel()

	now := time.Now().UTC()
	d := accountDoc{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         string(domain.RoleAdmin),
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res, err := r.col.InsertOne(ctx, &d)
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return d.toDomain(), nil
}
