package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

const (
	accountsCollection = "accounts"
	methodPassword     = "password"
)

// IdentityGateway is a password identity provider backed by the accounts
// collection. It issues uuid account ids and stores bcrypt hashes.
type IdentityGateway struct {
	coll    *mongo.Collection
	timeout time.Duration
	cost    int
}

func NewIdentityGateway(db *mongo.Database, timeout time.Duration) *IdentityGateway {
	return &IdentityGateway{
		coll:    db.Collection(accountsCollection),
		timeout: orDefault(timeout),
		cost:    bcrypt.DefaultCost,
	}
}

type mongoAccount struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Methods      []string  `bson:"methods"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (g *IdentityGateway) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if len([]rune(password)) < validation.MinPasswordLength {
		return "", &domain.GatewayError{Code: domain.CodeWeakPassword}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return "", &domain.GatewayError{Code: domain.CodeWeakPassword, Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	acc := mongoAccount{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Methods:      []string{methodPassword},
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := g.coll.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", &domain.GatewayError{Code: domain.CodeEmailInUse}
		}
		return "", &domain.GatewayError{Code: domain.CodeUnavailable, Cause: err}
	}
	return acc.ID, nil
}

func (g *IdentityGateway) SignIn(ctx context.Context, email, password string) (string, error) {
	acc, err := g.find(ctx, email)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", &domain.GatewayError{Code: domain.CodeInvalidCredential}
	}
	return acc.ID, nil
}

func (g *IdentityGateway) ListSignInMethods(ctx context.Context, email string) ([]string, error) {
	acc, err := g.find(ctx, email)
	if err != nil {
		var ge *domain.GatewayError
		if errors.As(err, &ge) && ge.Code == domain.CodeInvalidCredential {
			return []string{}, nil
		}
		return nil, err
	}
	return acc.Methods, nil
}

// EnsureIndexes makes the email unique so concurrent sign-ups cannot both succeed.
func (g *IdentityGateway) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := g.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (g *IdentityGateway) find(ctx context.Context, email string) (*mongoAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var acc mongoAccount
	if err := g.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domain.GatewayError{Code: domain.CodeInvalidCredential}
		}
		return nil, &domain.GatewayError{Code: domain.CodeUnavailable, Cause: err}
	}
	return &acc, nil
}

func normalizeEmail(email string) string {
	return domain.NormalizeEmail(email)
}
