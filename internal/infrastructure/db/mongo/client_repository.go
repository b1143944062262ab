package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

const clientsCollection = "clients"

// ClientRepository persists client accounts in MongoDB. Email uniqueness is
// enforced by a unique index, so concurrent sign-ups with the same address
// are settled by the store, not by a pre-check.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

type clientDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"first_name"`
	LastName   string             `bson:"last_name"`
	MiddleName string             `bson:"middle_name"`
	Email      string             `bson:"email"`
	Role       string             `bson:"role"`
	Password   string             `bson:"password"`
	Score      float64            `bson:"score"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		MiddleName: d.MiddleName,
		Email:      d.Email,
		Role:       domain.Role(d.Role),
		Password:   d.Password,
		Score:      d.Score,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := clientDoc{
		FirstName:  client.FirstName,
		LastName:   client.LastName,
		MiddleName: client.MiddleName,
		Email:      client.Email,
		Role:       string(client.Role),
		Password:   client.Password,
		Score:      client.Score,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return r.findByObjectID(ctx, id)
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	return r.findByObjectID(ctx, oid)
}

func (r *ClientRepository) findByObjectID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	var doc clientDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Exists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count clients: %w", err)
	}
	return n > 0, nil
}

func (r *ClientRepository) UpdateEmail(ctx context.Context, id, email string) (int64, error) {
	return r.updateFields(ctx, id, bson.M{"email": email})
}

func (r *ClientRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) (int64, error) {
	return r.updateFields(ctx, id, bson.M{"password": hashedPassword})
}

func (r *ClientRepository) UpdateCredentials(ctx context.Context, id, firstName, lastName, middleName string) (int64, error) {
	return r.updateFields(ctx, id, bson.M{
		"first_name":  firstName,
		"last_name":   lastName,
		"middle_name": middleName,
	})
}

func (r *ClientRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error) {
	return r.updateFields(ctx, id, bson.M{"role": string(role)})
}

func (r *ClientRepository) UpdateScore(ctx context.Context, id string, score float64) (int64, error) {
	return r.updateFields(ctx, id, bson.M{"score": score})
}

// updateFields performs a single-statement targeted update and reports how
// many documents matched. An unknown id yields zero, not an error.
func (r *ClientRepository) updateFields(ctx context.Context, id string, fields bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	fields["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrClientExists
		}
		return 0, fmt.Errorf("update client: %w", err)
	}
	return res.MatchedCount, nil
}

// EnsureIndexes creates the unique email index the create path relies on.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
